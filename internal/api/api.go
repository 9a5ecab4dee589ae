// Package api contains the users and courses REST API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/stolasapp/lectern/internal/config"
	"github.com/stolasapp/lectern/internal/storage"
)

const maxBodySize = "1M"

// New creates the REST API server. The returned server's middleware and
// routes are fully configured.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	store storage.Store,
) (*echo.Echo, error) {
	filters, err := newCourseFilters()
	if err != nil {
		return nil, err
	}

	srv := echo.New()

	srv.HideBanner = true
	srv.HidePort = true
	srv.Logger.SetLevel(log.OFF)
	srv.Debug = cfg.DevMode
	srv.HTTPErrorHandler = errorHandler(logger, cfg.LogErrors)

	srv.Use(
		middleware.RequestID(),
		logRequests(logger),
		middleware.RecoverWithConfig(middleware.RecoverConfig{
			DisablePrintStack:   true,
			DisableErrorHandler: true,
			LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
				if cfg.LogErrors {
					logger.ErrorContext(c.Request().Context(),
						"recovered from panic",
						slog.Any("error", err),
						slog.String("stack", string(stack)),
					)
				}
				return err
			},
		}),
		middleware.Secure(),
		middleware.BodyLimit(maxBodySize),
	)

	handler{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		filters: filters,
	}.register(srv)
	return srv, nil
}

func logRequests(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.String("route", c.Path()),
				slog.Duration("latency", latency),
				slog.Int("status", res.Status),
				slog.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			level := slog.LevelDebug
			if res.Status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			logger.LogAttrs(
				req.Context(),
				level,
				"request handled",
				attrs...,
			)
			return err
		}
	}
}
