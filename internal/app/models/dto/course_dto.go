package dto

import (
	"time"

	"github.com/campusgrid/campusgrid/internal/app/models"
)

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	CourseID    string    `json:"courseId" binding:"required,max=32"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Credit      int       `json:"credit" binding:"required,min=1,max=30"`
	Instructor  string    `json:"instructor" binding:"required"`
	Department  string    `json:"department" binding:"required"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
	Schedule    string    `json:"schedule"`
}

// UpdateCourseRequest represents a course update request
type UpdateCourseRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Credit      int       `json:"credit" binding:"required,min=1,max=30"`
	Instructor  string    `json:"instructor" binding:"required"`
	Department  string    `json:"department" binding:"required"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
	Schedule    string    `json:"schedule"`
}

// CourseResponse represents a course in API responses
type CourseResponse struct {
	CourseID    string    `json:"courseId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Credit      int       `json:"credit"`
	Instructor  string    `json:"instructor"`
	Department  string    `json:"department"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Schedule    string    `json:"schedule"`
}

// ToCourse maps a creation request to the course model.
func (r *CreateCourseRequest) ToCourse() *models.Course {
	return &models.Course{
		CourseID:    r.CourseID,
		Name:        r.Name,
		Description: r.Description,
		Credit:      r.Credit,
		Instructor:  r.Instructor,
		Department:  r.Department,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Schedule:    r.Schedule,
	}
}

// ApplyTo copies updatable fields onto an existing course.
func (r *UpdateCourseRequest) ApplyTo(course *models.Course) {
	course.Name = r.Name
	course.Description = r.Description
	course.Credit = r.Credit
	course.Instructor = r.Instructor
	course.Department = r.Department
	course.StartDate = r.StartDate
	course.EndDate = r.EndDate
	course.Schedule = r.Schedule
}

// ToCourseResponse maps a course model to its response DTO.
func ToCourseResponse(course *models.Course) CourseResponse {
	return CourseResponse{
		CourseID:    course.CourseID,
		Name:        course.Name,
		Description: course.Description,
		Credit:      course.Credit,
		Instructor:  course.Instructor,
		Department:  course.Department,
		StartDate:   course.StartDate,
		EndDate:     course.EndDate,
		Schedule:    course.Schedule,
	}
}

// ToCourseResponses maps a slice of course models.
func ToCourseResponses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, ToCourseResponse(c))
	}
	return out
}
