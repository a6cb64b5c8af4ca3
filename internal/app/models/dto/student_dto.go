package dto

import (
	"github.com/campusgrid/campusgrid/internal/app/models"
)

// CreateStudentRequest represents a student creation request
type CreateStudentRequest struct {
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Department     string `json:"department" binding:"required"`
	EnrollmentYear int    `json:"enrollmentYear" binding:"required,min=1900"`
}

// UpdateStudentRequest represents a student update request
type UpdateStudentRequest struct {
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Department     string `json:"department" binding:"required"`
	EnrollmentYear int    `json:"enrollmentYear" binding:"required,min=1900"`
}

// StudentResponse represents a student in API responses
type StudentResponse struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	EnrollmentYear int    `json:"enrollmentYear"`
}

// ToStudent maps a creation request to the student model.
func (r *CreateStudentRequest) ToStudent() *models.Student {
	return &models.Student{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Department:     r.Department,
		EnrollmentYear: r.EnrollmentYear,
	}
}

// ApplyTo copies updatable fields onto an existing student.
func (r *UpdateStudentRequest) ApplyTo(student *models.Student) {
	student.FirstName = r.FirstName
	student.LastName = r.LastName
	student.Email = r.Email
	student.Department = r.Department
	student.EnrollmentYear = r.EnrollmentYear
}

// ToStudentResponse maps a student model to its response DTO.
func ToStudentResponse(student *models.Student) StudentResponse {
	return StudentResponse{
		ID:             student.ID,
		FirstName:      student.FirstName,
		LastName:       student.LastName,
		Email:          student.Email,
		Department:     student.Department,
		EnrollmentYear: student.EnrollmentYear,
	}
}

// ToStudentResponses maps a slice of student models.
func ToStudentResponses(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, ToStudentResponse(s))
	}
	return out
}
