package api

import (
	"database/sql"
	"time"

	"github.com/stolasapp/lectern/internal/storage/db"
)

type createUserRequest struct {
	FirstName    string `json:"firstName"    validate:"required"`
	LastName     string `json:"lastName"     validate:"required"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password"     validate:"required,password"`
}

// courseRequest is the body of both course creation and update. The owner is
// never read from the body.
type courseRequest struct {
	Title           string  `json:"title"           validate:"required"`
	Description     string  `json:"description"     validate:"required"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

type listCoursesRequest struct {
	Filter    string `json:"filter"`
	PageSize  int    `json:"page_size"  validate:"omitempty,min=1,max=100"`
	PageToken string `json:"page_token"`
}

type courseCursor struct {
	AfterID uint64 `json:"after_id" validate:"required"`
}

type userView struct {
	ID           uint64 `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

func newUserView(user db.User) userView {
	return userView{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		EmailAddress: user.EmailAddress,
	}
}

// courseSummaryView is a course as it appears in a listing.
type courseSummaryView struct {
	ID            uint64  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	EstimatedTime *string `json:"estimatedTime"`
}

func newCourseSummaryView(course db.Course) courseSummaryView {
	return courseSummaryView{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		EstimatedTime: fromNullString(course.EstimatedTime),
	}
}

type courseView struct {
	ID              uint64  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
	UserID          uint64  `json:"userId"`
}

func newCourseView(course db.Course) courseView {
	return courseView{
		ID:              course.ID,
		Title:           course.Title,
		Description:     course.Description,
		EstimatedTime:   fromNullString(course.EstimatedTime),
		MaterialsNeeded: fromNullString(course.MaterialsNeeded),
		UserID:          course.UserID,
	}
}

type courseDetailView struct {
	courseView

	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	Owner               *userView `json:"owner,omitempty"`
	DescriptionHTML     string    `json:"descriptionHtml,omitempty"`
	MaterialsNeededHTML string    `json:"materialsNeededHtml,omitempty"`
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
