package dto

import (
	"time"

	"github.com/campusgrid/campusgrid/internal/app/models"
)

// CreateEnrollmentRequest represents an enrollment creation request
type CreateEnrollmentRequest struct {
	CourseID  string `json:"courseId" binding:"required"`
	StudentID int64  `json:"studentId" binding:"required,min=1"`
}

// EnrollmentResponse represents an enrollment in API responses
type EnrollmentResponse struct {
	ID         int64     `json:"id"`
	CourseID   string    `json:"courseId"`
	StudentID  int64     `json:"studentId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// ToEnrollmentResponse maps an enrollment model to its response DTO.
func ToEnrollmentResponse(enrollment *models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:         enrollment.ID,
		CourseID:   enrollment.CourseID,
		StudentID:  enrollment.StudentID,
		EnrolledAt: enrollment.EnrolledAt,
	}
}

// ToEnrollmentResponses maps a slice of enrollment models.
func ToEnrollmentResponses(enrollments []*models.Enrollment) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, ToEnrollmentResponse(e))
	}
	return out
}
