package api

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"github.com/stolasapp/lectern/internal/storage/db"
)

// Variables available to a course filter expression.
const (
	filterID              = "id"
	filterTitle           = "title"
	filterDescription     = "description"
	filterEstimatedTime   = "estimatedTime"
	filterMaterialsNeeded = "materialsNeeded"
	filterUserID          = "userId"
)

// Bounds on client-supplied filters. The cost limit applies to each course
// the filter is evaluated against.
const (
	maxFilterLength      = 1024
	filterCostLimit      = 10_000
	filterInterruptCheck = 100
)

// courseFilters compiles CEL expressions that select courses.
type courseFilters struct {
	env *cel.Env
}

func newCourseFilters() (*courseFilters, error) {
	env, err := cel.NewEnv(
		cel.Variable(filterID, cel.IntType),
		cel.Variable(filterTitle, cel.StringType),
		cel.Variable(filterDescription, cel.StringType),
		cel.Variable(filterEstimatedTime, cel.StringType),
		cel.Variable(filterMaterialsNeeded, cel.StringType),
		cel.Variable(filterUserID, cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create course filter CEL environment: %w", err)
	}
	return &courseFilters{env: env}, nil
}

func (f *courseFilters) compile(filter string) (cel.Program, error) {
	if utf8.RuneCountInString(filter) > maxFilterLength {
		return nil, fmt.Errorf("filter must be at most %d characters", maxFilterLength)
	}
	ast, issues := f.env.Compile(filter)
	if err := issues.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile filter: %w", err)
	}
	if outType := ast.OutputType(); !outType.IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter expression must return bool but got %s", outType.String())
	}
	return f.env.Program(ast,
		cel.CostLimit(filterCostLimit),
		cel.InterruptCheckFrequency(filterInterruptCheck),
	)
}

// apply returns the courses for which the filter evaluates to true. An empty
// filter matches every course.
func (f *courseFilters) apply(ctx context.Context, filter string, courses []db.Course) ([]db.Course, error) {
	if filter == "" {
		return courses, nil
	}
	prog, err := f.compile(filter)
	if err != nil {
		return nil, newValidationError(err.Error())
	}
	out := make([]db.Course, 0, len(courses))
	for _, course := range courses {
		val, _, err := prog.ContextEval(ctx, map[string]any{
			filterID:              int64(course.ID), //nolint:gosec // snowflake IDs never set the sign bit
			filterTitle:           course.Title,
			filterDescription:     course.Description,
			filterEstimatedTime:   course.EstimatedTime.String,
			filterMaterialsNeeded: course.MaterialsNeeded.String,
			filterUserID:          int64(course.UserID), //nolint:gosec // see above
		})
		if err != nil {
			return nil, newValidationError(fmt.Sprintf("failed to evaluate filter: %v", err))
		}
		if val == types.True {
			out = append(out, course)
		}
	}
	return out, nil
}
