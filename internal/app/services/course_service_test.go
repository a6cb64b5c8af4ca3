package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/app/repositories"
	"github.com/campusgrid/campusgrid/internal/grpc/studentpb"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
)

type fakeCourseStore struct {
	courses map[string]*models.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[string]*models.Course)}
}

func (s *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	if _, ok := s.courses[course.CourseID]; ok {
		return apperrors.ErrCourseAlreadyExists
	}
	s.courses[course.CourseID] = course
	return nil
}

func (s *fakeCourseStore) GetByID(_ context.Context, courseID string) (*models.Course, error) {
	course, ok := s.courses[courseID]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (s *fakeCourseStore) GetAll(_ context.Context, filter repositories.CourseFilter, offset uint64, limit int) ([]*models.Course, int64, error) {
	var all []*models.Course
	for _, c := range s.courses {
		if filter.Department != "" && c.Department != filter.Department {
			continue
		}
		if filter.Instructor != "" && c.Instructor != filter.Instructor {
			continue
		}
		all = append(all, c)
	}
	return all, int64(len(all)), nil
}

func (s *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := s.courses[course.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	s.courses[course.CourseID] = course
	return nil
}

func (s *fakeCourseStore) Delete(_ context.Context, courseID string) error {
	if _, ok := s.courses[courseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(s.courses, courseID)
	return nil
}

type fakeCourseEnrollments struct {
	studentsByCourse map[string][]int64
}

func newFakeCourseEnrollments() *fakeCourseEnrollments {
	return &fakeCourseEnrollments{studentsByCourse: make(map[string][]int64)}
}

func (s *fakeCourseEnrollments) ExistsForCourse(_ context.Context, courseID string) (bool, error) {
	return len(s.studentsByCourse[courseID]) > 0, nil
}

func (s *fakeCourseEnrollments) DistinctStudentIDsForCourse(_ context.Context, courseID string) ([]int64, error) {
	return s.studentsByCourse[courseID], nil
}

type fakeStudentResolver struct {
	students map[int64]*studentpb.Student
	err      error
	calls    int
}

func (r *fakeStudentResolver) ResolveStudents(_ context.Context, ids []int64) ([]*studentpb.Student, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	var out []*studentpb.Student
	for _, id := range ids {
		if st, ok := r.students[id]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

func newTestCourseService() (*CourseService, *fakeCourseStore, *fakeCourseEnrollments, *fakeStudentResolver) {
	courses := newFakeCourseStore()
	enrollments := newFakeCourseEnrollments()
	resolver := &fakeStudentResolver{students: make(map[int64]*studentpb.Student)}
	svc := NewCourseService(courses, enrollments, resolver, zerolog.Nop())
	return svc, courses, enrollments, resolver
}

func courseRequest(id string) *dto.CreateCourseRequest {
	return &dto.CreateCourseRequest{
		CourseID:   id,
		Name:       "Algorithms",
		Credit:     6,
		Instructor: "Knuth",
		Department: "CS",
		StartDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateCourse_DuplicateID(t *testing.T) {
	svc, _, _, _ := newTestCourseService()
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, courseRequest("CS101"))
	require.NoError(t, err)

	_, err = svc.CreateCourse(ctx, courseRequest("CS101"))
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)
}

func TestUpdateCourse_NotFound(t *testing.T) {
	svc, _, _, _ := newTestCourseService()

	_, err := svc.UpdateCourse(context.Background(), "NOPE", &dto.UpdateCourseRequest{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestDeleteCourse_WithoutEnrollments(t *testing.T) {
	svc, _, _, _ := newTestCourseService()
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, courseRequest("CS101"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(ctx, "CS101"))

	_, err = svc.GetCourse(ctx, "CS101")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestDeleteCourse_WithEnrollmentsConflicts(t *testing.T) {
	svc, _, enrollments, _ := newTestCourseService()
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, courseRequest("CS101"))
	require.NoError(t, err)
	enrollments.studentsByCourse["CS101"] = []int64{7}

	err = svc.DeleteCourse(ctx, "CS101")
	assert.ErrorIs(t, err, apperrors.ErrCourseHasEnrollments)

	// The course survives the refused delete.
	_, err = svc.GetCourse(ctx, "CS101")
	assert.NoError(t, err)
}

func TestGetCourseStudents_ResolvesRoster(t *testing.T) {
	svc, _, enrollments, resolver := newTestCourseService()
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, courseRequest("CS101"))
	require.NoError(t, err)
	enrollments.studentsByCourse["CS101"] = []int64{1, 2}
	resolver.students[1] = &studentpb.Student{Id: 1, FirstName: "Alice"}
	resolver.students[2] = &studentpb.Student{Id: 2, FirstName: "Bob"}

	roster, err := svc.GetCourseStudents(ctx, "CS101")
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}

func TestGetCourseStudents_DropsUnresolvableIDs(t *testing.T) {
	svc, _, enrollments, resolver := newTestCourseService()
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, courseRequest("CS101"))
	require.NoError(t, err)
	enrollments.studentsByCourse["CS101"] = []int64{1, 99}
	resolver.students[1] = &studentpb.Student{Id: 1, FirstName: "Alice"}

	roster, err := svc.GetCourseStudents(ctx, "CS101")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, int64(1), roster[0].ID)
}

func TestGetCourseStudents_EmptyCourseSkipsResolver(t *testing.T) {
	svc, _, _, resolver := newTestCourseService()
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, courseRequest("CS101"))
	require.NoError(t, err)

	roster, err := svc.GetCourseStudents(ctx, "CS101")
	require.NoError(t, err)
	assert.Empty(t, roster)
	assert.Zero(t, resolver.calls)
}

func TestGetCourseStudents_ResolverFailureIsUpstream(t *testing.T) {
	svc, _, enrollments, resolver := newTestCourseService()
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, courseRequest("CS101"))
	require.NoError(t, err)
	enrollments.studentsByCourse["CS101"] = []int64{1}
	resolver.err = apperrors.NewUpstreamError("dial failed", nil)

	_, err = svc.GetCourseStudents(ctx, "CS101")
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestGetCourseStudents_UnknownCourse(t *testing.T) {
	svc, _, _, _ := newTestCourseService()

	_, err := svc.GetCourseStudents(context.Background(), "NOPE")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
