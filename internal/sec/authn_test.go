package sec

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stolasapp/lectern/internal/config"
	"github.com/stolasapp/lectern/internal/storage"
	"github.com/stolasapp/lectern/internal/storage/db"
)

var errDiskIO = errors.New("disk I/O error")

type fakeUsers struct {
	storage.Users
	users map[string]db.User
	err   error
}

func (f fakeUsers) GetUserByEmail(ctx context.Context, email string) (db.User, error) {
	if err := ctx.Err(); err != nil {
		return db.User{}, err
	}
	if f.err != nil {
		return db.User{}, f.err
	}
	user, ok := f.users[email]
	if !ok {
		return db.User{}, storage.ErrNotFound
	}
	return user, nil
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("joepassword", bcrypt.MinCost)
	require.NoError(t, err)
	joe := db.User{
		ID:           1,
		FirstName:    "Joe",
		LastName:     "Smith",
		EmailAddress: "joe@smith.com",
		PasswordHash: hash,
	}
	users := fakeUsers{users: map[string]db.User{joe.EmailAddress: joe}}

	tests := []struct {
		name       string
		header     string
		users      storage.Users
		wantReason string
		wantErr    error
	}{
		{
			name:   "success",
			header: BasicAuthHeader(Credentials{Username: "joe@smith.com", Password: "joepassword"}),
			users:  users,
		},
		{
			name:       "missing header",
			header:     "",
			users:      users,
			wantReason: "Auth header not found",
			wantErr:    ErrUnauthenticated,
		},
		{
			name:       "malformed header",
			header:     "Bearer abc",
			users:      users,
			wantReason: "Auth header not found",
			wantErr:    ErrUnauthenticated,
		},
		{
			name:       "unknown user",
			header:     BasicAuthHeader(Credentials{Username: "sally@jones.com", Password: "joepassword"}),
			users:      users,
			wantReason: "User not found for username: sally@jones.com",
			wantErr:    ErrUnauthenticated,
		},
		{
			name:       "email is matched exactly",
			header:     BasicAuthHeader(Credentials{Username: "JOE@smith.com", Password: "joepassword"}),
			users:      users,
			wantReason: "User not found for username: JOE@smith.com",
			wantErr:    ErrUnauthenticated,
		},
		{
			name:       "wrong password",
			header:     BasicAuthHeader(Credentials{Username: "joe@smith.com", Password: "Joepassword"}),
			users:      users,
			wantReason: "Authentication failure for username: joe@smith.com",
			wantErr:    ErrUnauthenticated,
		},
		{
			name:    "store fault",
			header:  BasicAuthHeader(Credentials{Username: "joe@smith.com", Password: "joepassword"}),
			users:   fakeUsers{err: errDiskIO},
			wantErr: errDiskIO,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			user, err := Authenticate(t.Context(), test.header, test.users)
			if test.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, joe, user)
				return
			}

			require.ErrorIs(t, err, test.wantErr)
			assert.Zero(t, user)

			var authErr *AuthError
			if test.wantReason == "" {
				assert.False(t, errors.As(err, &authErr))
				assert.NotErrorIs(t, err, ErrUnauthenticated)
				return
			}
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, test.wantReason, authErr.Reason)
			assert.NotContains(t, authErr.Error(), "joepassword")
		})
	}

	t.Run("canceled request", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := Authenticate(ctx, BasicAuthHeader(Credentials{Username: "joe@smith.com", Password: "joepassword"}), users)
		require.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestAuthenticate_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.DBFilepath = filepath.Join(t.TempDir(), "db.sqlite")
	store, err := storage.NewDB(t.Context(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	hash, err := HashPassword("Secret123!", bcrypt.MinCost)
	require.NoError(t, err)
	created, err := store.CreateUser(t.Context(), db.User{
		FirstName:    "Sally",
		LastName:     "Jones",
		EmailAddress: "sally@jones.com",
		PasswordHash: hash,
	})
	require.NoError(t, err)

	user, err := Authenticate(t.Context(), BasicAuthHeader(Credentials{
		Username: "sally@jones.com",
		Password: "Secret123!",
	}), store)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = Authenticate(t.Context(), BasicAuthHeader(Credentials{
		Username: "sally@jones.com",
		Password: "secret123!",
	}), store)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticatedUser(t *testing.T) {
	t.Parallel()

	assert.Zero(t, GetAuthenticatedUser(t.Context()))

	user := db.User{ID: 99, EmailAddress: "joe@smith.com"}
	ctx := SetAuthenticatedUser(t.Context(), user)
	assert.Equal(t, user, GetAuthenticatedUser(ctx))
	assert.Zero(t, GetAuthenticatedUser(t.Context()), "parent context is unchanged")
}
