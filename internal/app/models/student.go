package models

// Student defines the student model based on the 'students' table, owned by
// the student service. Other services reference students by numeric id only;
// there is no foreign key across the service boundary.
type Student struct {
	ID             int64  `json:"id" db:"id"`
	FirstName      string `json:"firstName" db:"first_name"`
	LastName       string `json:"lastName" db:"last_name"`
	Email          string `json:"email" db:"email"`
	Department     string `json:"department" db:"department"`
	EnrollmentYear int    `json:"enrollmentYear" db:"enrollment_year"`
}
