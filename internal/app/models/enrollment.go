package models

import (
	"time"
)

// Enrollment defines the enrollment model based on the 'enrollments' table.
// A (student_id, course_id) pair is unique; the student id is trusted at
// creation time and not verified against the student service.
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   string    `json:"courseId" db:"course_id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
}
