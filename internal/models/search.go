// File: internal/models/search.go

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SearchRequest is the body the client posts to /api/search
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// SearchResult is a single ranked passage
type SearchResult struct {
	Book    string  `json:"book"`
	Page    Page    `json:"page"`
	Content string  `json:"content"`
	Score   float64 `json:"score"` // relevance in [0,1]
}

// SearchResponse keeps the upstream relevance order; results are never re-sorted
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// ErrorResponse is the structured error payload returned by the proxy
type ErrorResponse struct {
	Error string `json:"error"`
}

// Page is a 1-based page number. The search backend emits it as a string,
// so both 12 and "12" decode.
type Page int

func (p *Page) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid page %q: %w", s, err)
		}
		*p = Page(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid page %s: %w", data, err)
	}
	*p = Page(n)
	return nil
}
