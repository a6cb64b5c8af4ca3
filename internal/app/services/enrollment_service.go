package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
)

// EnrollmentStore is the slice of the enrollment repository the service needs.
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Enrollment, int64, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	ExistsForStudentCourse(ctx context.Context, studentID int64, courseID string) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// CourseChecker verifies that a course exists.
type CourseChecker interface {
	GetByID(ctx context.Context, courseID string) (*models.Course, error)
}

// EnrollmentService implements enrollment business logic. Enrollments are
// created against the local course table only; the student id is taken at
// face value and never checked against the student service.
type EnrollmentService struct {
	enrollments EnrollmentStore
	courses     CourseChecker
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollments EnrollmentStore, courses CourseChecker, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		logger:      logger,
	}
}

// CreateEnrollment enrolls a student in a course. Enrolling the same student
// in the same course twice fails with apperrors.ErrAlreadyEnrolled.
func (s *EnrollmentService) CreateEnrollment(ctx context.Context, req *dto.CreateEnrollmentRequest) (*models.Enrollment, error) {
	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	exists, err := s.enrollments.ExistsForStudentCourse(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing enrollment: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		CourseID:  req.CourseID,
		StudentID: req.StudentID,
	}
	// The pre-check can race; the unique constraint settles it.
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		return nil, err
	}

	s.logger.Info().
		Int64("enrollmentID", enrollment.ID).
		Str("courseID", enrollment.CourseID).
		Int64("studentID", enrollment.StudentID).
		Msg("enrollment created")

	return enrollment, nil
}

// GetEnrollment returns an enrollment by id.
func (s *EnrollmentService) GetEnrollment(ctx context.Context, id int64) (*models.Enrollment, error) {
	return s.enrollments.GetByID(ctx, id)
}

// ListEnrollments returns a page of enrollments with the total count.
func (s *EnrollmentService) ListEnrollments(ctx context.Context, offset uint64, limit int) ([]*models.Enrollment, int64, error) {
	return s.enrollments.GetAll(ctx, offset, limit)
}

// GetStudentEnrollments returns the enrollments of a student. A student with
// no enrollments is reported as not found, so callers can distinguish "no
// enrollments" from "some" by the status alone.
func (s *EnrollmentService) GetStudentEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	enrollments, err := s.enrollments.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no enrollments for student %d", studentID))
	}
	return enrollments, nil
}

// DeleteEnrollment removes an enrollment by id.
func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, id int64) error {
	if err := s.enrollments.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("enrollmentID", id).Msg("enrollment deleted")
	return nil
}
