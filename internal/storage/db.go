package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/influxdata/influxdb/pkg/snowflake"

	"github.com/stolasapp/lectern/internal/config"
	"github.com/stolasapp/lectern/internal/storage/db"
)

// DB is a [Store] backed by a SQLite database.
type DB struct {
	ids     *snowflake.Generator
	db      *sql.DB
	queries *db.Queries
}

// NewDB initializes a DB with the given config and logger.
func NewDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DB, error) {
	handle, err := db.Open(ctx, logger, cfg.DBFilepath)
	if err != nil {
		return nil, err
	}
	return &DB{
		ids:     newIDs(),
		db:      handle,
		queries: db.New(handle),
	}, nil
}

func newIDs() *snowflake.Generator {
	return snowflake.New(rand.IntN(1023)) //nolint:gosec,mnd // this isn't for crypto
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// GetUser satisfies the [Users] interface.
func (d *DB) GetUser(ctx context.Context, userID uint64) (db.User, error) {
	user, err := d.queries.GetUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrNotFound
	}
	return user, err
}

// GetUserByEmail satisfies the [Users] interface.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (db.User, error) {
	user, err := d.queries.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrNotFound
	}
	return user, err
}

// CreateUser satisfies the [Users] interface.
func (d *DB) CreateUser(ctx context.Context, user db.User) (db.User, error) {
	user.ID = d.ids.Next()
	user.CreatedAt = now()
	switch _, err := d.queries.CreateUser(ctx, db.CreateUserParams(user)); {
	case errors.Is(err, sql.ErrNoRows):
		return db.User{}, ErrAlreadyExists
	case err != nil:
		return db.User{}, err
	default:
		return user, nil
	}
}

// DeleteUser satisfies the [Users] interface.
func (d *DB) DeleteUser(ctx context.Context, userID uint64) error {
	return d.queries.DeleteUser(ctx, userID)
}

// ListCourses satisfies the [Courses] interface.
func (d *DB) ListCourses(ctx context.Context) ([]db.Course, error) {
	return d.queries.ListCourses(ctx)
}

// GetCourse satisfies the [Courses] interface.
func (d *DB) GetCourse(ctx context.Context, courseID uint64) (db.Course, error) {
	course, err := d.queries.GetCourse(ctx, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return course, ErrNotFound
	}
	return course, err
}

// CreateCourse satisfies the [Courses] interface.
func (d *DB) CreateCourse(ctx context.Context, course db.Course) (db.Course, error) {
	course.ID = d.ids.Next()
	course.CreatedAt = now()
	course.UpdatedAt = course.CreatedAt
	if err := d.queries.CreateCourse(ctx, db.CreateCourseParams(course)); err != nil {
		return db.Course{}, err
	}
	return course, nil
}

// UpdateCourse satisfies the [Courses] interface.
func (d *DB) UpdateCourse(ctx context.Context, course db.Course) error {
	rows, err := d.queries.UpdateCourse(ctx, db.UpdateCourseParams{
		Title:           course.Title,
		Description:     course.Description,
		EstimatedTime:   course.EstimatedTime,
		MaterialsNeeded: course.MaterialsNeeded,
		UpdatedAt:       now(),
		ID:              course.ID,
	})
	return affected(rows, err)
}

// DeleteCourse satisfies the [Courses] interface.
func (d *DB) DeleteCourse(ctx context.Context, courseID uint64) error {
	return affected(d.queries.DeleteCourse(ctx, courseID))
}

func affected(rows int64, err error) error {
	switch {
	case err != nil:
		return err
	case rows == 0:
		return ErrNotFound
	default:
		return nil
	}
}

var _ Store = (*DB)(nil)
