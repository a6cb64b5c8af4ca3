package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/app/services"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
)

type stubEnrollmentStore struct {
	byStudent map[int64][]*models.Enrollment
}

func (s *stubEnrollmentStore) Create(_ context.Context, _ *models.Enrollment) error {
	return nil
}

func (s *stubEnrollmentStore) GetByID(_ context.Context, _ int64) (*models.Enrollment, error) {
	return nil, apperrors.ErrEnrollmentNotFound
}

func (s *stubEnrollmentStore) GetAll(_ context.Context, _ uint64, _ int) ([]*models.Enrollment, int64, error) {
	return nil, 0, nil
}

func (s *stubEnrollmentStore) GetByStudentID(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	return s.byStudent[studentID], nil
}

func (s *stubEnrollmentStore) ExistsForStudentCourse(_ context.Context, _ int64, _ string) (bool, error) {
	return false, nil
}

func (s *stubEnrollmentStore) Delete(_ context.Context, _ int64) error {
	return nil
}

type stubCourseChecker struct{}

func (stubCourseChecker) GetByID(_ context.Context, courseID string) (*models.Course, error) {
	return &models.Course{CourseID: courseID}, nil
}

func newProbeRouter(store *stubEnrollmentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewEnrollmentService(store, stubCourseChecker{}, zerolog.Nop())
	ctrl := NewEnrollmentController(svc, nil)

	router := gin.New()
	router.GET("/api/v1/enrollments/students/:id", ctrl.GetStudentEnrollments)
	return router
}

// The student service decides deletions from this endpoint's status code, so
// "no enrollments" must be a 404, not an empty 200.
func TestGetStudentEnrollments_EmptyAnswers404(t *testing.T) {
	router := newProbeRouter(&stubEnrollmentStore{byStudent: map[int64][]*models.Enrollment{}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/enrollments/students/7", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStudentEnrollments_ReturnsData(t *testing.T) {
	store := &stubEnrollmentStore{byStudent: map[int64][]*models.Enrollment{
		7: {{ID: 1, CourseID: "CS101", StudentID: 7}},
	}}
	router := newProbeRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/enrollments/students/7", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string                   `json:"status"`
		Data   []dto.EnrollmentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.StatusSuccess, body.Status)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "CS101", body.Data[0].CourseID)
}

func TestGetStudentEnrollments_BadID(t *testing.T) {
	router := newProbeRouter(&stubEnrollmentStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/enrollments/students/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
