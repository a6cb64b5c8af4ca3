package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
)

// StudentStore is the slice of the student repository the service needs.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentProbe asks the course service whether a student has enrollments.
type EnrollmentProbe interface {
	HasEnrollments(ctx context.Context, studentID int64) (bool, error)
}

// StudentService implements student business logic. Deletion is guarded by a
// probe against the course service; when the probe cannot answer, the delete
// is refused rather than risking orphaned enrollments.
type StudentService struct {
	students    StudentStore
	enrollments EnrollmentProbe
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(students StudentStore, enrollments EnrollmentProbe, logger zerolog.Logger) *StudentService {
	return &StudentService{
		students:    students,
		enrollments: enrollments,
		logger:      logger,
	}
}

// CreateStudent creates a student.
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := req.ToStudent()
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("student created")
	return student, nil
}

// GetStudent returns a student by id.
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// ListStudents returns a page of students with the total count.
func (s *StudentService) ListStudents(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error) {
	return s.students.GetAll(ctx, offset, limit)
}

// UpdateStudent replaces the mutable fields of an existing student.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(student)
	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent removes a student unless the course service reports active
// enrollments. A probe failure refuses the delete with
// apperrors.ErrUpstreamUnavailable.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if _, err := s.students.GetByID(ctx, id); err != nil {
		return err
	}

	hasEnrollments, err := s.enrollments.HasEnrollments(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("studentID", id).Msg("enrollment probe failed, refusing delete")
		return apperrors.NewUpstreamError("could not verify enrollments", err)
	}
	if hasEnrollments {
		return apperrors.NewCustomError(apperrors.ErrStudentHasEnrollments, fmt.Sprintf("student %d has active enrollments", id))
	}

	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", id).Msg("student deleted")
	return nil
}
