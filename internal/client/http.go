package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JingYiJun/ClassicIndex/internal/models"
)

// SearchPath is the proxy route searches are posted to
const SearchPath = "/api/search"

// HTTPSearcher talks to the search proxy over HTTP. It sets no timeout of its
// own; the proxy bounds its upstream wait.
type HTTPSearcher struct {
	BaseURL    string
	httpClient *http.Client
}

var _ Searcher = (*HTTPSearcher)(nil)

// NewHTTPSearcher creates a searcher for the proxy at baseURL. A nil
// httpClient gets a fresh client without a timeout.
func NewHTTPSearcher(baseURL string, httpClient *http.Client) *HTTPSearcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPSearcher{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Search posts req to the proxy. Non-2xx answers come back as *APIError.
func (s *HTTPSearcher) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+SearchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload models.ErrorResponse
		if data, err := io.ReadAll(resp.Body); err == nil && json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return nil, apiErr
	}

	var out models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return &out, nil
}
