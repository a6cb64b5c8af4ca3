package enrollmentclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
)

func newProbeServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, time.Second)
}

func TestHasEnrollments_NotFoundMeansNone(t *testing.T) {
	client := newProbeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/enrollments/students/7", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	has, err := client.HasEnrollments(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestHasEnrollments_DataMeansEnrolled(t *testing.T) {
	client := newProbeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":[{"id":1,"courseId":"CS101","studentId":7}]}`))
	})

	has, err := client.HasEnrollments(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestHasEnrollments_EmptyDataMeansNone(t *testing.T) {
	client := newProbeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":[]}`))
	})

	has, err := client.HasEnrollments(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestHasEnrollments_ServerErrorFailsClosed(t *testing.T) {
	client := newProbeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.HasEnrollments(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestHasEnrollments_UndecodableBodyFailsClosed(t *testing.T) {
	client := newProbeServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	})

	_, err := client.HasEnrollments(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestHasEnrollments_TimeoutFailsClosed(t *testing.T) {
	client := newProbeServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusNotFound)
	})
	client.callTimeout = 20 * time.Millisecond

	_, err := client.HasEnrollments(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestHasEnrollments_ConnectionRefusedFailsClosed(t *testing.T) {
	client := New("http://127.0.0.1:1", 100*time.Millisecond)

	_, err := client.HasEnrollments(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}
