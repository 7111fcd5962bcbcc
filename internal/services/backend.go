// File: internal/services/backend.go

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JingYiJun/ClassicIndex/internal/log"
)

const DefaultTimeout = 30 * time.Second

// BackendService relays requests to the upstream semantic-search service.
// It holds no per-request state and is safe for concurrent use.
type BackendService struct {
	BaseURL    string
	Timeout    time.Duration
	httpClient *http.Client
	logger     *log.Logger
}

// UpstreamResponse is what the backend answered with, for statuses the proxy relays
type UpstreamResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the status is in the 2xx range
func (r *UpstreamResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewBackendService creates a backend client for baseURL. Trailing slashes are
// dropped so paths can be appended directly.
func NewBackendService(baseURL string, timeout time.Duration) *BackendService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &BackendService{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.ForService("backend"),
	}
}

// Search posts payload, re-encoded as JSON, to {BaseURL}/search.
//
// A non-2xx answer is not an error: it comes back as an UpstreamResponse so the
// caller can relay it untouched. A 2xx body is checked to be valid JSON.
func (s *BackendService) Search(ctx context.Context, payload any) (*UpstreamResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &BackendError{Kind: KindFailed, Op: "search", Err: ErrInvalidPayload}
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, &BackendError{Kind: KindFailed, Op: "search", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	s.logger.Debugf("POST %s (%d bytes)", req.URL, len(body))
	startTime := time.Now()

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &BackendError{Kind: classify(err), Op: "search", Err: err}
	}
	defer resp.Body.Close()

	upstream := &UpstreamResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	respBody, readErr := io.ReadAll(resp.Body)
	if !upstream.OK() {
		// An unreadable error body is relayed as empty; the caller falls back to the reason text
		if readErr == nil {
			upstream.Body = respBody
		}
		s.logger.Debugf("backend answered %d after %s", resp.StatusCode, time.Since(startTime))
		return upstream, nil
	}

	if readErr != nil {
		return nil, &BackendError{Kind: KindFailed, Op: "search", Err: readErr}
	}
	if !json.Valid(respBody) {
		return nil, &BackendError{Kind: KindFailed, Op: "search", Err: ErrInvalidJSON}
	}

	upstream.Body = respBody
	s.logger.Debugf("backend answered %d after %s", resp.StatusCode, time.Since(startTime))
	return upstream, nil
}

// Health probes {BaseURL}/health. A reachable backend answering non-2xx is
// reported as a KindFailed error.
func (s *BackendService) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/health", nil)
	if err != nil {
		return &BackendError{Kind: KindFailed, Op: "health", Err: err}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &BackendError{Kind: classify(err), Op: "health", Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &BackendError{Kind: KindFailed, Op: "health", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return nil
}
