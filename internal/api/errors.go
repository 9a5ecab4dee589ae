package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/lectern/internal/pagination"
	"github.com/stolasapp/lectern/internal/sec"
)

// Client-visible messages.
const (
	msgAccessDenied   = "Access Denied"
	msgForbidden      = "Sorry! You cannot make changes in other users courses"
	msgCourseNotFound = "Course Not Found"
	msgRouteNotFound  = "Route Not Found"
	msgWelcome        = "Welcome to the REST API project!"
	msgDuplicateEmail = "The email address you entered already exists"
	msgInvalidBody    = "Please provide a valid JSON request body"
)

var (
	errCourseNotFound = echo.NewHTTPError(http.StatusNotFound, msgCourseNotFound)
	errForbidden      = echo.NewHTTPError(http.StatusForbidden, msgForbidden)
)

// validationError lists every problem found with a request's input.
type validationError struct {
	messages []string
}

func (v *validationError) Error() string {
	return fmt.Sprintf("validation failed: %q", v.messages)
}

func newValidationError(messages ...string) *validationError {
	return &validationError{messages: messages}
}

type messageBody struct {
	Message string `json:"message"`
}

type errorsBody struct {
	Errors []string `json:"errors"`
}

type internalBody struct {
	Message string   `json:"message"`
	Error   struct{} `json:"error"`
}

// errorHandler maps handler errors to their JSON response. Errors that are not
// part of the API's documented failures are treated as internal faults.
func errorHandler(logger *slog.Logger, logErrors bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := toResponse(err)
		if status == http.StatusInternalServerError && logErrors {
			logger.ErrorContext(c.Request().Context(),
				"global error handler",
				slog.Any("error", err),
				slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			logger.WarnContext(c.Request().Context(), "failed to write error response", slog.Any("error", werr))
		}
	}
}

func toResponse(err error) (int, any) {
	var (
		verr     *validationError
		tokenErr pagination.TokenError
		httpErr  *echo.HTTPError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, errorsBody{Errors: verr.messages}
	case errors.As(err, &tokenErr):
		return http.StatusBadRequest, errorsBody{Errors: []string{tokenErr.Error()}}
	case errors.Is(err, sec.ErrUnauthenticated):
		return http.StatusUnauthorized, messageBody{Message: msgAccessDenied}
	case errors.Is(err, echo.ErrNotFound), errors.Is(err, echo.ErrMethodNotAllowed):
		return http.StatusNotFound, messageBody{Message: msgRouteNotFound}
	case errors.As(err, &httpErr):
		if httpErr.Code == http.StatusInternalServerError {
			return http.StatusInternalServerError, internalBody{Message: fmt.Sprint(httpErr.Message)}
		}
		return httpErr.Code, messageBody{Message: fmt.Sprint(httpErr.Message)}
	default:
		return http.StatusInternalServerError, internalBody{Message: err.Error()}
	}
}
