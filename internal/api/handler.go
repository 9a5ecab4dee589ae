package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/stolasapp/lectern/internal/config"
	"github.com/stolasapp/lectern/internal/content"
	"github.com/stolasapp/lectern/internal/pagination"
	"github.com/stolasapp/lectern/internal/sec"
	"github.com/stolasapp/lectern/internal/storage"
	"github.com/stolasapp/lectern/internal/storage/db"
)

// HeaderNextPageToken carries the token for the next page of a course listing.
const HeaderNextPageToken = "X-Next-Page-Token"

type handler struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   storage.Store
	filters *courseFilters
}

// Middleware order matters: the request body is validated before the caller
// is authenticated.
func (h handler) register(e *echo.Echo) {
	auth := authenticate(h.logger, h.store)

	e.GET("/", h.welcome)

	api := e.Group("/api")
	api.GET("/users", h.getUser, auth)
	api.POST("/users", h.createUser, bindBody[createUserRequest]())

	api.GET("/courses", h.listCourses)
	api.GET("/courses/:id", h.getCourse)
	api.POST("/courses", h.createCourse, bindBody[courseRequest](), auth)
	api.PUT("/courses/:id", h.updateCourse, bindBody[courseRequest](), auth)
	api.DELETE("/courses/:id", h.deleteCourse, auth)
}

func (h handler) welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, messageBody{Message: msgWelcome})
}

func (h handler) getUser(c echo.Context) error {
	user := sec.GetAuthenticatedUser(c.Request().Context())
	return c.JSON(http.StatusOK, newUserView(user))
}

func (h handler) createUser(c echo.Context) error {
	req := boundBody[createUserRequest](c)
	hash, err := sec.HashPassword(req.Password, h.cfg.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return newValidationError(`Please provide valid "password"`)
	} else if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	_, err = h.store.CreateUser(c.Request().Context(), db.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		PasswordHash: hash,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return newValidationError(msgDuplicateEmail)
	} else if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, "/")
	return c.NoContent(http.StatusCreated)
}

func (h handler) listCourses(c echo.Context) error {
	var req listCoursesRequest
	err := echo.QueryParamsBinder(c).
		String("filter", &req.Filter).
		Int("page_size", &req.PageSize).
		String("page_token", &req.PageToken).
		BindError()
	if err != nil {
		return newValidationError(`Please provide valid "page_size"`)
	}
	if err = validate.Struct(req); err != nil {
		return toValidationError(err)
	}

	ctx := c.Request().Context()
	courses, err := h.store.ListCourses(ctx)
	if err != nil {
		return err
	}

	if req.PageToken != "" {
		cursor, err := pagination.FromToken[courseCursor](req.PageToken)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(courses, func(course db.Course) bool {
			return course.ID > cursor.AfterID
		})
		if idx == -1 {
			idx = len(courses)
		}
		courses = courses[idx:]
	}

	if courses, err = h.filters.apply(ctx, req.Filter, courses); err != nil {
		return err
	}

	if req.PageSize > 0 && len(courses) > req.PageSize {
		courses = courses[:req.PageSize]
		tkn, err := pagination.ToToken(courseCursor{AfterID: courses[len(courses)-1].ID})
		if err != nil {
			return err
		}
		c.Response().Header().Set(HeaderNextPageToken, tkn)
	}

	views := make([]courseSummaryView, len(courses))
	for i, course := range courses {
		views[i] = newCourseSummaryView(course)
	}
	return c.JSON(http.StatusOK, views)
}

func (h handler) getCourse(c echo.Context) error {
	ctx := c.Request().Context()
	course, err := h.findCourse(c)
	if err != nil {
		return err
	}

	view := courseDetailView{
		courseView: newCourseView(course),
		CreatedAt:  course.CreatedAt,
		UpdatedAt:  course.UpdatedAt,
	}
	switch owner, err := h.store.GetUser(ctx, course.UserID); {
	case err == nil:
		ownerView := newUserView(owner)
		view.Owner = &ownerView
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	if c.QueryParam("format") == "html" {
		if view.DescriptionHTML, err = content.RenderMarkdown(course.Description); err != nil {
			return err
		}
		if view.MaterialsNeededHTML, err = content.RenderMarkdown(course.MaterialsNeeded.String); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, view)
}

func (h handler) createCourse(c echo.Context) error {
	ctx := c.Request().Context()
	req := boundBody[courseRequest](c)
	user := sec.GetAuthenticatedUser(ctx)
	course, err := h.store.CreateCourse(ctx, db.Course{
		UserID:          user.ID,
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   toNullString(req.EstimatedTime),
		MaterialsNeeded: toNullString(req.MaterialsNeeded),
	})
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, course.Location())
	return c.NoContent(http.StatusCreated)
}

func (h handler) updateCourse(c echo.Context) error {
	ctx := c.Request().Context()
	course, err := h.ownedCourse(c)
	if err != nil {
		return err
	}
	req := boundBody[courseRequest](c)
	course.Title = req.Title
	course.Description = req.Description
	course.EstimatedTime = toNullString(req.EstimatedTime)
	course.MaterialsNeeded = toNullString(req.MaterialsNeeded)
	if err = h.store.UpdateCourse(ctx, course); errors.Is(err, storage.ErrNotFound) {
		return errCourseNotFound
	} else if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h handler) deleteCourse(c echo.Context) error {
	course, err := h.ownedCourse(c)
	if err != nil {
		return err
	}
	if err = h.store.DeleteCourse(c.Request().Context(), course.ID); errors.Is(err, storage.ErrNotFound) {
		return errCourseNotFound
	} else if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// findCourse loads the course named by the id path parameter. An id that is
// not a number cannot match a course.
func (h handler) findCourse(c echo.Context) (db.Course, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return db.Course{}, errCourseNotFound
	}
	course, err := h.store.GetCourse(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return db.Course{}, errCourseNotFound
	}
	return course, err
}

// ownedCourse loads the course named by the id path parameter, ensuring the
// authenticated user owns it.
func (h handler) ownedCourse(c echo.Context) (db.Course, error) {
	course, err := h.findCourse(c)
	if err != nil {
		return course, err
	}
	user := sec.GetAuthenticatedUser(c.Request().Context())
	if !sec.CanModify(user.ID, course.UserID) {
		h.logger.InfoContext(c.Request().Context(),
			"denied change to another user's course",
			slog.Uint64("user_id", user.ID),
			slog.Uint64("course_id", course.ID),
		)
		return db.Course{}, errForbidden
	}
	return course, nil
}
