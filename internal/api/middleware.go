package api

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/stolasapp/lectern/internal/sec"
	"github.com/stolasapp/lectern/internal/storage"
)

const bodyKey = "body"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// bcrypt limits passwords by bytes while max counts runes
	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= sec.MaxPasswordBytes
	}); err != nil {
		panic(err)
	}
	return v
}

// authenticate rejects requests that do not carry the Basic credentials of a
// known user. The resolved user is attached to the request context.
func authenticate(logger *slog.Logger, users storage.Users) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := req.Context()
			user, err := sec.Authenticate(ctx, req.Header.Get(echo.HeaderAuthorization), users)
			var authErr *sec.AuthError
			if errors.As(err, &authErr) {
				logger.WarnContext(ctx, authErr.Reason, slog.Any("auth", authErr))
				return err
			} else if err != nil {
				return err
			}
			logger.DebugContext(ctx,
				"Authentication successful for username: "+user.EmailAddress,
				slog.Uint64("user_id", user.ID),
			)
			c.SetRequest(req.WithContext(sec.SetAuthenticatedUser(ctx, user)))
			return next(c)
		}
	}
}

// bindBody decodes and validates the JSON request body into a T before the
// rest of the chain runs. The handler reads it back with [boundBody].
func bindBody[T any]() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			body := new(T)
			if err := (&echo.DefaultBinder{}).BindBody(c, body); err != nil {
				return newValidationError(msgInvalidBody)
			}
			if err := validate.Struct(body); err != nil {
				return toValidationError(err)
			}
			c.Set(bodyKey, body)
			return next(c)
		}
	}
}

func boundBody[T any](c echo.Context) *T {
	body, _ := c.Get(bodyKey).(*T)
	return body
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		if fieldErr.Tag() == "required" {
			messages = append(messages, `Please provide a value for "`+fieldErr.Field()+`"`)
		} else {
			messages = append(messages, `Please provide valid "`+fieldErr.Field()+`"`)
		}
	}
	return newValidationError(messages...)
}
