// Package studentserver exposes the student dataset over gRPC for the course
// service's batch resolution calls.
package studentserver

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/grpc/studentpb"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
)

// StudentReader is the slice of the student repository the gRPC surface needs.
type StudentReader interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Student, error)
}

// Server implements studentpb.StudentServiceServer.
type Server struct {
	students StudentReader
	logger   zerolog.Logger
}

// New creates a student gRPC server over the given repository.
func New(students StudentReader, logger zerolog.Logger) *Server {
	return &Server{
		students: students,
		logger:   logger,
	}
}

// GetStudentById resolves one student. A missing student maps to the gRPC
// NotFound code so callers can tell it apart from transport failures.
func (s *Server) GetStudentById(ctx context.Context, in *studentpb.GetStudentByIdRequest) (*studentpb.GetStudentByIdResponse, error) {
	student, err := s.students.GetByID(ctx, in.Id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, status.Error(codes.NotFound, "student not found")
		}
		s.logger.Error().Err(err).Int64("studentID", in.Id).Msg("get student failed")
		return nil, status.Error(codes.Internal, "failed to retrieve student")
	}

	return &studentpb.GetStudentByIdResponse{Student: toWire(student)}, nil
}

// GetStudentsByIds resolves a batch of students best-effort: ids without a
// matching row are left out of the response, never an error.
func (s *Server) GetStudentsByIds(ctx context.Context, in *studentpb.GetStudentsByIdsRequest) (*studentpb.GetStudentsByIdsResponse, error) {
	students, err := s.students.GetByIDs(ctx, in.Ids)
	if err != nil {
		s.logger.Error().Err(err).Int("requested", len(in.Ids)).Msg("batch student lookup failed")
		return nil, status.Error(codes.Internal, "failed to retrieve students")
	}

	resp := &studentpb.GetStudentsByIdsResponse{
		Students: make([]*studentpb.Student, 0, len(students)),
	}
	for _, student := range students {
		resp.Students = append(resp.Students, toWire(student))
	}

	return resp, nil
}

func toWire(student *models.Student) *studentpb.Student {
	return &studentpb.Student{
		Id:             student.ID,
		FirstName:      student.FirstName,
		LastName:       student.LastName,
		Email:          student.Email,
		Department:     student.Department,
		EnrollmentYear: student.EnrollmentYear,
	}
}
