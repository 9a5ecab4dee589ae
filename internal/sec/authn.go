package sec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/authn"

	"github.com/stolasapp/lectern/internal/storage"
	"github.com/stolasapp/lectern/internal/storage/db"
)

// ErrUnauthenticated is matched by every error [Authenticate] returns when the
// client failed to prove its identity.
var ErrUnauthenticated = errors.New("unauthenticated")

// AuthError describes why a request failed authentication. The reason is only
// meant for server-side logs; clients receive a generic response.
type AuthError struct {
	Reason   string
	Username string
}

// Error satisfies [error].
func (e *AuthError) Error() string { return e.Reason }

// Unwrap allows matching against [ErrUnauthenticated].
func (e *AuthError) Unwrap() error { return ErrUnauthenticated }

// LogValue satisfies [slog.LogValuer].
func (e *AuthError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("reason", e.Reason),
		slog.String("username", e.Username),
	)
}

// Authenticate resolves the user presenting the Authorization header value.
// Failures to authenticate return an [*AuthError]; any other error is a fault
// in the user store.
func Authenticate(ctx context.Context, header string, users storage.Users) (db.User, error) {
	creds, ok := ParseBasicAuth(header)
	if !ok {
		return db.User{}, &AuthError{Reason: "Auth header not found"}
	}
	user, err := users.GetUserByEmail(ctx, creds.Username)
	if errors.Is(err, storage.ErrNotFound) {
		return db.User{}, &AuthError{
			Reason:   "User not found for username: " + creds.Username,
			Username: creds.Username,
		}
	} else if err != nil {
		return db.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if err = ComparePassword(creds.Password, user.PasswordHash); err != nil {
		return db.User{}, &AuthError{
			Reason:   "Authentication failure for username: " + user.EmailAddress,
			Username: user.EmailAddress,
		}
	}
	return user, nil
}

// GetAuthenticatedUser returns the user information for the authenticated user.
// Returns a zero-value User if the context has no authenticated user.
func GetAuthenticatedUser(ctx context.Context) db.User {
	if user, ok := authn.GetInfo(ctx).(db.User); ok {
		return user
	}
	return db.User{}
}

// SetAuthenticatedUser attaches the authenticated user to ctx.
func SetAuthenticatedUser(ctx context.Context, user db.User) context.Context {
	return authn.SetInfo(ctx, user)
}
