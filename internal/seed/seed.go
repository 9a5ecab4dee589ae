// Package seed populates a store with generated users and courses for
// development.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/stolasapp/lectern/internal/sec"
	"github.com/stolasapp/lectern/internal/storage"
	"github.com/stolasapp/lectern/internal/storage/db"
)

// Corpus generation constants.
const (
	minUsers            = 3
	maxExtraUsers       = 3 // 3-5 users total
	minCourses          = 1
	maxExtraCourses     = 4 // 1-4 courses per user
	minParagraphs       = 1
	maxExtraPara        = 3 // 1-3 paragraphs total
	minSentences        = 2
	maxExtraSent        = 4 // 2-5 sentences total
	minWords            = 6
	maxExtraWords       = 10 // 6-15 words total
	minMaterials        = 2
	maxExtraMaterials   = 4
	estimateProbability = 0.7
	materialProbability = 0.6
)

// Password is the password of every generated user.
const Password = "password"

// Seed returns the seed from the LECTERN_SEED environment variable, or a
// random value if not set.
func Seed() uint64 {
	if env := os.Getenv("LECTERN_SEED"); env != "" {
		if seed, err := strconv.ParseUint(env, 10, 64); err == nil {
			return seed
		}
	}
	return rand.Uint64() //nolint:gosec // intentionally weak random for test data
}

// Result lists what [Populate] created.
type Result struct {
	Users   []db.User
	Courses []db.Course
}

// Populate creates a reproducible set of users and courses from seed. Every
// user's password is [Password], hashed at the given bcrypt cost.
func Populate(ctx context.Context, store storage.Store, seed uint64, cost int) (Result, error) {
	var res Result
	hash, err := sec.HashPassword(Password, cost)
	if err != nil {
		return res, err
	}

	faker := gofakeit.New(seed)
	numUsers := minUsers + faker.IntN(maxExtraUsers)
	for i := range numUsers {
		first, last := faker.FirstName(), faker.LastName()
		user, err := store.CreateUser(ctx, db.User{
			FirstName:    first,
			LastName:     last,
			EmailAddress: fmt.Sprintf("%s.%s.%d.%d@example.com", slug(first), slug(last), seed%1000, i), //nolint:mnd // keep addresses short
			PasswordHash: hash,
		})
		if err != nil {
			return res, fmt.Errorf("failed to create user: %w", err)
		}
		res.Users = append(res.Users, user)

		numCourses := minCourses + faker.IntN(maxExtraCourses)
		for range numCourses {
			course, err := store.CreateCourse(ctx, generateCourse(faker, user.ID))
			if err != nil {
				return res, fmt.Errorf("failed to create course: %w", err)
			}
			res.Courses = append(res.Courses, course)
		}
	}
	return res, nil
}

func generateCourse(faker *gofakeit.Faker, ownerID uint64) db.Course {
	course := db.Course{
		UserID:      ownerID,
		Title:       generateTitle(faker),
		Description: generateDescription(faker),
	}
	if faker.Float64() < estimateProbability {
		course.EstimatedTime = sql.NullString{
			String: fmt.Sprintf("%d hours", 1+faker.IntN(40)), //nolint:mnd // up to a week of work
			Valid:  true,
		}
	}
	if faker.Float64() < materialProbability {
		course.MaterialsNeeded = sql.NullString{
			String: generateMaterials(faker),
			Valid:  true,
		}
	}
	return course
}

// generateDescription returns Markdown paragraphs.
func generateDescription(faker *gofakeit.Faker) string {
	numParagraphs := minParagraphs + faker.IntN(maxExtraPara)
	paragraphs := make([]string, numParagraphs)
	for i := range numParagraphs {
		numSentences := minSentences + faker.IntN(maxExtraSent)
		sentences := make([]string, numSentences)
		for j := range numSentences {
			sentences[j] = faker.Sentence(minWords + faker.IntN(maxExtraWords))
		}
		paragraphs[i] = strings.Join(sentences, " ")
	}
	return strings.Join(paragraphs, "\n\n")
}

// generateMaterials returns a Markdown bullet list.
func generateMaterials(faker *gofakeit.Faker) string {
	var builder strings.Builder
	numMaterials := minMaterials + faker.IntN(maxExtraMaterials)
	for range numMaterials {
		builder.WriteString("* ")
		builder.WriteString(titleCase(faker.Adjective()))
		builder.WriteString(" ")
		builder.WriteString(faker.Noun())
		builder.WriteString("\n")
	}
	return builder.String()
}

func generateTitle(faker *gofakeit.Faker) string {
	patterns := []func(*gofakeit.Faker) string{
		func(f *gofakeit.Faker) string { return "Introduction to " + titleCase(f.Noun()) },
		func(f *gofakeit.Faker) string { return fmt.Sprintf("Build a %s %s", titleCase(f.Adjective()), titleCase(f.Noun())) },
		func(f *gofakeit.Faker) string { return titleCase(f.Noun()) + " for Beginners" },
		func(f *gofakeit.Faker) string { return fmt.Sprintf("Advanced %s and %s", titleCase(f.Noun()), titleCase(f.Noun())) },
		func(f *gofakeit.Faker) string { return fmt.Sprintf("The %s %s Workshop", titleCase(f.Adjective()), titleCase(f.Noun())) },
	}
	return patterns[faker.IntN(len(patterns))](faker)
}

func titleCase(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func slug(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}
