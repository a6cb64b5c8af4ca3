// Package studentclient is the course service's gRPC client for resolving
// students owned by the student service.
package studentclient

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/campusgrid/campusgrid/internal/grpc/studentpb"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
)

// Client wraps the student service gRPC API. Batch resolution is best-effort
// (missing ids are simply absent), so any call error classifies as
// ErrUpstreamUnavailable for the caller to retry.
type Client struct {
	conn        *grpc.ClientConn
	api         studentpb.StudentServiceClient
	callTimeout time.Duration
}

// New dials the student service. The connection is lazy; failures surface on
// the first call.
func New(addr string, callTimeout time.Duration) (*Client, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(studentpb.CodecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create student service connection: %w", err)
	}

	return &Client{
		conn:        conn,
		api:         studentpb.NewStudentServiceClient(conn),
		callTimeout: callTimeout,
	}, nil
}

// ResolveStudents resolves a batch of ids. The response may cover fewer
// students than requested; missing ids are simply absent (best-effort).
func (c *Client) ResolveStudents(ctx context.Context, ids []int64) ([]*studentpb.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.GetStudentsByIds(ctx, &studentpb.GetStudentsByIdsRequest{Ids: ids})
	if err != nil {
		return nil, apperrors.NewUpstreamError("student service call failed", err)
	}

	return resp.Students, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// withTimeout layers the per-call budget onto the inbound context, so caller
// cancellation still propagates to the outbound call.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.callTimeout)
}
