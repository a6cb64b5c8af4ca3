package models

import (
	"time"
)

// Course defines the course model based on the 'courses' table. The course id
// is a caller-supplied string key (e.g. "CS101").
type Course struct {
	CourseID    string    `json:"courseId" db:"course_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Credit      int       `json:"credit" db:"credit"`
	Instructor  string    `json:"instructor" db:"instructor"`
	Department  string    `json:"department" db:"department"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	Schedule    string    `json:"schedule" db:"schedule"`
}
