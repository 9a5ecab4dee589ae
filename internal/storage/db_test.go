package storage

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/lectern/internal/config"
	"github.com/stolasapp/lectern/internal/storage/db"
)

func TestDB(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.DBFilepath = filepath.Join(t.TempDir(), "db.sqlite")
	store, err := Open(t.Context(), cfg, slog.Default())
	require.NoError(t, err)
	require.IsType(t, &DB{}, store)
	t.Cleanup(func() { _ = store.Close() })

	testStore(t, store)
}

func TestPostgres(t *testing.T) {
	t.Parallel()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	cfg := config.Default()
	cfg.DBDriver = config.DriverPostgres
	cfg.DBDSN = dsn
	store, err := Open(t.Context(), cfg, slog.Default())
	require.NoError(t, err)
	require.IsType(t, &Postgres{}, store)
	t.Cleanup(func() { _ = store.Close() })

	testStore(t, store)
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.DBDriver = "mysql"
	_, err := Open(t.Context(), cfg, slog.Default())
	require.ErrorContains(t, err, "unsupported db driver")
}

func fakeUser() db.User {
	return db.User{
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		EmailAddress: gofakeit.UUID() + "@example.com",
		PasswordHash: []byte("not-a-real-hash"),
	}
}

func testStore(t *testing.T, store Store) {
	t.Helper()

	owner, err := store.CreateUser(t.Context(), fakeUser())
	require.NoError(t, err)
	require.NotZero(t, owner.ID)
	require.False(t, owner.CreatedAt.IsZero())

	// These operations are tested together since deleting a user cascades to
	// their courses.
	t.Run("UserCRUD", func(t *testing.T) {
		t.Parallel()

		user, err := store.CreateUser(t.Context(), fakeUser())
		require.NoError(t, err)

		actual, err := store.GetUser(t.Context(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.EmailAddress, actual.EmailAddress)
		assert.Equal(t, user.FirstName, actual.FirstName)
		assert.Equal(t, user.LastName, actual.LastName)
		assert.Equal(t, user.PasswordHash, actual.PasswordHash)

		actual, err = store.GetUserByEmail(t.Context(), user.EmailAddress)
		require.NoError(t, err)
		assert.Equal(t, user.ID, actual.ID)

		_, err = store.GetUser(t.Context(), 0)
		require.ErrorIs(t, err, ErrNotFound)

		_, err = store.GetUserByEmail(t.Context(), "nobody@example.com")
		require.ErrorIs(t, err, ErrNotFound)

		dup := fakeUser()
		dup.EmailAddress = user.EmailAddress
		_, err = store.CreateUser(t.Context(), dup)
		require.ErrorIs(t, err, ErrAlreadyExists)

		course, err := store.CreateCourse(t.Context(), db.Course{
			UserID:      user.ID,
			Title:       gofakeit.Sentence(3),
			Description: gofakeit.Sentence(12),
		})
		require.NoError(t, err)

		err = store.DeleteUser(t.Context(), user.ID)
		require.NoError(t, err)
		_, err = store.GetUserByEmail(t.Context(), user.EmailAddress)
		require.ErrorIs(t, err, ErrNotFound)
		_, err = store.GetCourse(t.Context(), course.ID)
		require.ErrorIs(t, err, ErrNotFound)

		err = store.DeleteUser(t.Context(), user.ID)
		require.NoError(t, err)
	})

	t.Run("EmailExactMatch", func(t *testing.T) {
		t.Parallel()

		user := fakeUser()
		user.EmailAddress = "Mixed." + user.EmailAddress
		_, err := store.CreateUser(t.Context(), user)
		require.NoError(t, err)

		_, err = store.GetUserByEmail(t.Context(), strings.ToLower(user.EmailAddress))
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CourseCRUD", func(t *testing.T) {
		t.Parallel()

		course, err := store.CreateCourse(t.Context(), db.Course{
			UserID:        owner.ID,
			Title:         "Learn How to Program",
			Description:   "In this course, you'll learn how to write code.",
			EstimatedTime: sql.NullString{String: "12 hours", Valid: true},
		})
		require.NoError(t, err)
		require.NotZero(t, course.ID)
		assert.Equal(t, "/courses/", course.Location()[:len("/courses/")])

		actual, err := store.GetCourse(t.Context(), course.ID)
		require.NoError(t, err)
		assert.Equal(t, course.Title, actual.Title)
		assert.Equal(t, owner.ID, actual.UserID)
		assert.Equal(t, course.EstimatedTime, actual.EstimatedTime)
		assert.False(t, actual.MaterialsNeeded.Valid)

		course.Title = "Learn How to Test Programs"
		course.MaterialsNeeded = sql.NullString{String: "* Notebook", Valid: true}
		course.UserID = 0
		err = store.UpdateCourse(t.Context(), course)
		require.NoError(t, err)

		actual, err = store.GetCourse(t.Context(), course.ID)
		require.NoError(t, err)
		assert.Equal(t, "Learn How to Test Programs", actual.Title)
		assert.Equal(t, course.MaterialsNeeded, actual.MaterialsNeeded)
		assert.Equal(t, owner.ID, actual.UserID, "owner is never reassigned")

		err = store.DeleteCourse(t.Context(), course.ID)
		require.NoError(t, err)
		_, err = store.GetCourse(t.Context(), course.ID)
		require.ErrorIs(t, err, ErrNotFound)

		err = store.DeleteCourse(t.Context(), course.ID)
		require.ErrorIs(t, err, ErrNotFound)
		err = store.UpdateCourse(t.Context(), course)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ListCourses", func(t *testing.T) {
		t.Parallel()

		first, err := store.CreateCourse(t.Context(), db.Course{
			UserID:      owner.ID,
			Title:       gofakeit.Sentence(3),
			Description: gofakeit.Sentence(6),
		})
		require.NoError(t, err)
		second, err := store.CreateCourse(t.Context(), db.Course{
			UserID:      owner.ID,
			Title:       gofakeit.Sentence(3),
			Description: gofakeit.Sentence(6),
		})
		require.NoError(t, err)

		courses, err := store.ListCourses(t.Context())
		require.NoError(t, err)
		ids := make([]uint64, 0, len(courses))
		for _, c := range courses {
			ids = append(ids, c.ID)
		}
		assert.Contains(t, ids, first.ID)
		assert.Contains(t, ids, second.ID)
		assert.IsNonDecreasing(t, ids)
	})
}
