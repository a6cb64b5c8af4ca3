package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
	"github.com/campusgrid/campusgrid/internal/pkg/dberrors"
)

// Unique constraint from migrations/001_init.sql. Concurrent duplicate
// enrollment attempts that race past the service pre-check land here.
const enrollmentsStudentCourseKey = "enrollments_student_course_key"

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts a new enrollment and fills in its generated id. A duplicate
// (student, course) pair returns apperrors.ErrAlreadyEnrolled regardless of
// whether the pre-check saw it.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (course_id, student_id, enrolled_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now()
	}

	err := r.db.QueryRow(ctx, query,
		enrollment.CourseID, enrollment.StudentID, enrollment.EnrolledAt,
	).Scan(&enrollment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, enrollmentsStudentCourseKey) {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByID retrieves an enrollment by id.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT id, course_id, student_id, enrolled_at
		FROM enrollments
		WHERE id = $1
	`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&enrollment.ID, &enrollment.CourseID, &enrollment.StudentID, &enrollment.EnrolledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// GetAll retrieves a page of enrollments plus the total count.
func (r *EnrollmentRepository) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Enrollment, int64, error) {
	query := `
		SELECT id, course_id, student_id, enrolled_at
		FROM enrollments
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	enrollments, err := scanEnrollments(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	return enrollments, total, nil
}

// GetByStudentID retrieves all enrollments for a student across courses.
func (r *EnrollmentRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT id, course_id, student_id, enrolled_at
		FROM enrollments
		WHERE student_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments by student: %w", err)
	}
	defer rows.Close()

	return scanEnrollments(rows)
}

// ExistsForStudentCourse reports whether the student is already enrolled in
// the course. This is the racy pre-check; the unique constraint is the
// authority.
func (r *EnrollmentRepository) ExistsForStudentCourse(ctx context.Context, studentID int64, courseID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}
	return exists, nil
}

// ExistsForCourse reports whether any enrollment references the course.
func (r *EnrollmentRepository) ExistsForCourse(ctx context.Context, courseID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1)`, courseID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollments for course: %w", err)
	}
	return exists, nil
}

// DistinctStudentIDsForCourse returns the distinct student ids enrolled in
// the course, for batch resolution against the student service.
func (r *EnrollmentRepository) DistinctStudentIDsForCourse(ctx context.Context, courseID string) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT student_id FROM enrollments WHERE course_id = $1 ORDER BY student_id`, courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student ids for course: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning student id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// Delete removes an enrollment.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

func scanEnrollments(rows pgx.Rows) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID, &enrollment.CourseID, &enrollment.StudentID, &enrollment.EnrolledAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, &enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}
