package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/app/repositories"
	"github.com/campusgrid/campusgrid/internal/grpc/studentpb"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
)

// CourseStore is the slice of the course repository the service needs.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, courseID string) (*models.Course, error)
	GetAll(ctx context.Context, filter repositories.CourseFilter, offset uint64, limit int) ([]*models.Course, int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, courseID string) error
}

// CourseEnrollmentStore is the subset of the enrollment repository the course
// service consults.
type CourseEnrollmentStore interface {
	ExistsForCourse(ctx context.Context, courseID string) (bool, error)
	DistinctStudentIDsForCourse(ctx context.Context, courseID string) ([]int64, error)
}

// StudentResolver resolves student ids into student records over the wire.
type StudentResolver interface {
	ResolveStudents(ctx context.Context, ids []int64) ([]*studentpb.Student, error)
}

// CourseService implements course business logic.
type CourseService struct {
	courses     CourseStore
	enrollments CourseEnrollmentStore
	students    StudentResolver
	logger      zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, enrollments CourseEnrollmentStore, students StudentResolver, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courses:     courses,
		enrollments: enrollments,
		students:    students,
		logger:      logger,
	}
}

// CreateCourse creates a course with a caller-supplied id. A duplicate id
// fails with apperrors.ErrCourseAlreadyExists.
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := req.ToCourse()
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseID", course.CourseID).Msg("course created")
	return course, nil
}

// GetCourse returns a course by id.
func (s *CourseService) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	return s.courses.GetByID(ctx, courseID)
}

// ListCourses returns a page of courses matching the filter, with the total
// number of matches.
func (s *CourseService) ListCourses(ctx context.Context, filter repositories.CourseFilter, offset uint64, limit int) ([]*models.Course, int64, error) {
	return s.courses.GetAll(ctx, filter, offset, limit)
}

// UpdateCourse replaces the mutable fields of an existing course.
func (s *CourseService) UpdateCourse(ctx context.Context, courseID string, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(course)
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// DeleteCourse removes a course. A course with enrollments is not deletable;
// the foreign key in the enrollments table backs the pre-check up.
func (s *CourseService) DeleteCourse(ctx context.Context, courseID string) error {
	hasEnrollments, err := s.enrollments.ExistsForCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to check course enrollments: %w", err)
	}
	if hasEnrollments {
		return apperrors.ErrCourseHasEnrollments
	}

	if err := s.courses.Delete(ctx, courseID); err != nil {
		return err
	}

	s.logger.Info().Str("courseID", courseID).Msg("course deleted")
	return nil
}

// GetCourseStudents returns the students enrolled in a course, resolved from
// the student service. Ids the student service cannot resolve are dropped
// from the result, so the roster can be shorter than the enrollment count.
func (s *CourseService) GetCourseStudents(ctx context.Context, courseID string) ([]dto.StudentResponse, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	studentIDs, err := s.enrollments.DistinctStudentIDsForCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course enrollments: %w", err)
	}
	if len(studentIDs) == 0 {
		return []dto.StudentResponse{}, nil
	}

	resolved, err := s.students.ResolveStudents(ctx, studentIDs)
	if err != nil {
		return nil, apperrors.NewUpstreamError("student service unavailable", err)
	}

	out := make([]dto.StudentResponse, 0, len(resolved))
	for _, st := range resolved {
		out = append(out, dto.StudentResponse{
			ID:             st.Id,
			FirstName:      st.FirstName,
			LastName:       st.LastName,
			Email:          st.Email,
			Department:     st.Department,
			EnrollmentYear: st.EnrollmentYear,
		})
	}
	return out, nil
}
