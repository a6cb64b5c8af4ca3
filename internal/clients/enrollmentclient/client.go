// Package enrollmentclient is the student service's REST client for the
// course service's enrollments-by-student endpoint. It exists to guard
// student deletion: a student with enrollments anywhere must not be deleted.
package enrollmentclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
)

// Client probes the course service for a student's enrollments.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	callTimeout time.Duration
}

// New creates an enrollment probe client against the course service base URL
// (e.g. "http://course:8082").
func New(baseURL string, callTimeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{},
		callTimeout: callTimeout,
	}
}

// HasEnrollments reports whether the student has any enrollment.
//
// Classification is strict because the caller is about to delete data:
//   - 404 means "no enrollments", safe to proceed;
//   - 2xx with a decodable body answers from the data;
//   - anything else (timeout, network error, 5xx, undecodable body) is
//     ErrUpstreamUnavailable and the caller must fail closed.
func (c *Client) HasEnrollments(ctx context.Context, studentID int64) (bool, error) {
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	url := fmt.Sprintf("%s/api/v1/enrollments/students/%d", c.baseURL, studentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, apperrors.NewUpstreamError("failed to build enrollment probe request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, apperrors.NewUpstreamError("enrollment probe failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var envelope struct {
			Status string                   `json:"status"`
			Data   []dto.EnrollmentResponse `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return false, apperrors.NewUpstreamError("undecodable enrollment probe response", err)
		}
		return len(envelope.Data) > 0, nil
	default:
		return false, apperrors.NewUpstreamError(
			fmt.Sprintf("enrollment probe returned status %d", resp.StatusCode), nil)
	}
}
