// Package studentpb defines the wire contract of the student gRPC service:
// message types, the client and server interfaces, and the service
// descriptor. Messages travel as JSON frames (see codec.go).
package studentpb

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "campusgrid.StudentService"

// Student is the wire representation of a student.
type Student struct {
	Id             int64  `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	EnrollmentYear int    `json:"enrollmentYear"`
}

// GetStudentByIdRequest asks for a single student.
type GetStudentByIdRequest struct {
	Id int64 `json:"id"`
}

// GetStudentByIdResponse carries a single student.
type GetStudentByIdResponse struct {
	Student *Student `json:"student"`
}

// GetStudentsByIdsRequest asks for a batch of students. Ids that resolve to
// no student are omitted from the response rather than failing the call.
type GetStudentsByIdsRequest struct {
	Ids []int64 `json:"ids"`
}

// GetStudentsByIdsResponse carries the resolved subset of the requested ids.
type GetStudentsByIdsResponse struct {
	Students []*Student `json:"students"`
}

// StudentServiceClient is the client API for the student service.
type StudentServiceClient interface {
	GetStudentById(ctx context.Context, in *GetStudentByIdRequest, opts ...grpc.CallOption) (*GetStudentByIdResponse, error)
	GetStudentsByIds(ctx context.Context, in *GetStudentsByIdsRequest, opts ...grpc.CallOption) (*GetStudentsByIdsResponse, error)
}

type studentServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStudentServiceClient creates a client over an established connection.
func NewStudentServiceClient(cc grpc.ClientConnInterface) StudentServiceClient {
	return &studentServiceClient{cc: cc}
}

func (c *studentServiceClient) GetStudentById(ctx context.Context, in *GetStudentByIdRequest, opts ...grpc.CallOption) (*GetStudentByIdResponse, error) {
	out := new(GetStudentByIdResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetStudentById", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *studentServiceClient) GetStudentsByIds(ctx context.Context, in *GetStudentsByIdsRequest, opts ...grpc.CallOption) (*GetStudentsByIdsResponse, error) {
	out := new(GetStudentsByIdsResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetStudentsByIds", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentServiceServer is the server API for the student service.
type StudentServiceServer interface {
	GetStudentById(ctx context.Context, in *GetStudentByIdRequest) (*GetStudentByIdResponse, error)
	GetStudentsByIds(ctx context.Context, in *GetStudentsByIdsRequest) (*GetStudentsByIdsResponse, error)
}

// RegisterStudentServiceServer registers the implementation with the gRPC
// server.
func RegisterStudentServiceServer(s grpc.ServiceRegistrar, srv StudentServiceServer) {
	s.RegisterService(&StudentService_ServiceDesc, srv)
}

func _StudentService_GetStudentById_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetStudentByIdRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StudentServiceServer).GetStudentById(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/GetStudentById",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StudentServiceServer).GetStudentById(ctx, req.(*GetStudentByIdRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StudentService_GetStudentsByIds_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetStudentsByIdsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StudentServiceServer).GetStudentsByIds(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/GetStudentsByIds",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StudentServiceServer).GetStudentsByIds(ctx, req.(*GetStudentsByIdsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// StudentService_ServiceDesc is the grpc.ServiceDesc for the student service.
var StudentService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StudentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetStudentById",
			Handler:    _StudentService_GetStudentById_Handler,
		},
		{
			MethodName: "GetStudentsByIds",
			Handler:    _StudentService_GetStudentsByIds_Handler,
		},
	},
	Streams: []grpc.StreamDesc{},
}
