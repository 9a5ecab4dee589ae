// Package storage provides the state management for users and courses.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stolasapp/lectern/internal/config"
	"github.com/stolasapp/lectern/internal/storage/db"
)

const (
	// ErrNotFound is returned when a user or course cannot be found.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned if a user's email address is already in use.
	ErrAlreadyExists Error = "already exists"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Users are the methods on a storage implementation that are responsible for
// accessing and modifying users.
type Users interface {
	// GetUser returns a single user with the specified ID. An [ErrNotFound] is
	// returned if the user ID does not exist.
	GetUser(ctx context.Context, userID uint64) (db.User, error)
	// GetUserByEmail returns the single user whose email address exactly
	// matches email. An [ErrNotFound] is returned if there is no such user.
	GetUserByEmail(ctx context.Context, email string) (db.User, error)
	// CreateUser inserts a new user, assigning its ID and creation time. An
	// [ErrAlreadyExists] error is returned if the email address is in use.
	CreateUser(ctx context.Context, user db.User) (db.User, error)
	// DeleteUser removes a user and all the courses they own. Note that this is
	// a hard delete; data is not recoverable.
	DeleteUser(ctx context.Context, userID uint64) error
}

// Courses are the methods on a storage implementation that are responsible
// for accessing and modifying courses.
type Courses interface {
	// ListCourses returns every course ordered by ID.
	ListCourses(ctx context.Context) ([]db.Course, error)
	// GetCourse returns a single course. An [ErrNotFound] is returned if the
	// course does not exist.
	GetCourse(ctx context.Context, courseID uint64) (db.Course, error)
	// CreateCourse inserts a new course, assigning its ID and timestamps.
	CreateCourse(ctx context.Context, course db.Course) (db.Course, error)
	// UpdateCourse replaces the mutable fields of a course. The owner is never
	// changed. An [ErrNotFound] is returned if the course does not exist.
	UpdateCourse(ctx context.Context, course db.Course) error
	// DeleteCourse removes a course. An [ErrNotFound] is returned if the course
	// does not exist.
	DeleteCourse(ctx context.Context, courseID uint64) error
}

// Store is the combination interface for [Users] and [Courses].
type Store interface {
	Users
	Courses
	// Close releases any resources held by the store. An error is returned if
	// the store cannot be cleanly closed.
	Close() error
}

// Open returns the [Store] selected by the configured driver.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return NewPostgres(ctx, cfg, logger)
	case config.DriverSQLite, "":
		return NewDB(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}
