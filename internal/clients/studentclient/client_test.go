package studentclient

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/grpc/studentpb"
	"github.com/campusgrid/campusgrid/internal/grpc/studentserver"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
)

type staticStudentReader struct {
	students map[int64]*models.Student
}

func (r *staticStudentReader) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (r *staticStudentReader) GetByIDs(_ context.Context, ids []int64) ([]*models.Student, error) {
	out := make([]*models.Student, 0, len(ids))
	for _, id := range ids {
		if student, ok := r.students[id]; ok {
			out = append(out, student)
		}
	}
	return out, nil
}

// startStudentService runs a real gRPC server on a loopback port so the test
// covers the JSON codec and hand-rolled service descriptor end to end.
func startStudentService(t *testing.T, reader studentserver.StudentReader) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	studentpb.RegisterStudentServiceServer(srv, studentserver.New(reader, zerolog.Nop()))

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	return lis.Addr().String()
}

func newTestClient(t *testing.T, addr string) *Client {
	t.Helper()

	client, err := New(addr, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestResolveStudents_RoundTrip(t *testing.T) {
	addr := startStudentService(t, &staticStudentReader{
		students: map[int64]*models.Student{
			1: {ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.edu", Department: "CS", EnrollmentYear: 2024},
		},
	})
	client := newTestClient(t, addr)

	students, err := client.ResolveStudents(context.Background(), []int64{1})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, int64(1), students[0].Id)
	assert.Equal(t, "Ada", students[0].FirstName)
	assert.Equal(t, "ada@example.edu", students[0].Email)
	assert.Equal(t, 2024, students[0].EnrollmentYear)
}

func TestResolveStudents_BestEffortBatch(t *testing.T) {
	addr := startStudentService(t, &staticStudentReader{
		students: map[int64]*models.Student{
			1: {ID: 1, FirstName: "Ada"},
			3: {ID: 3, FirstName: "Grace"},
		},
	})
	client := newTestClient(t, addr)

	students, err := client.ResolveStudents(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, int64(1), students[0].Id)
	assert.Equal(t, int64(3), students[1].Id)
}

func TestResolveStudents_EmptyInputSkipsCall(t *testing.T) {
	// No server at this address; an empty batch must not touch the wire.
	client := newTestClient(t, "127.0.0.1:1")

	students, err := client.ResolveStudents(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, students)
}

func TestResolveStudents_ServerDown(t *testing.T) {
	// Nothing listens on this address; the call fails at the transport and
	// must classify as an upstream outage, never a NotFound.
	client, err := New("127.0.0.1:1", 500*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	_, err = client.ResolveStudents(context.Background(), []int64{1})
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	assert.False(t, errors.Is(err, apperrors.ErrStudentNotFound))
}
