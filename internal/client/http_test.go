package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JingYiJun/ClassicIndex/internal/models"
)

func TestHTTPSearcherSuccess(t *testing.T) {
	var got models.SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, SearchPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"results":[{"book":"Das Kapital","page":"12","content":"...","score":0.93}]}`)
	}))
	defer srv.Close()

	resp, err := NewHTTPSearcher(srv.URL+"/", nil).Search(context.Background(), models.SearchRequest{Query: "capitalism", TopK: 5})
	require.NoError(t, err)

	assert.Equal(t, models.SearchRequest{Query: "capitalism", TopK: 5}, got)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, models.Page(12), resp.Results[0].Page)
}

func TestHTTPSearcherErrors(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "proxy error payload", status: http.StatusBadGateway, body: `{"error":"cannot reach backend service"}`, wantMsg: "cannot reach backend service"},
		{name: "pass-through text", status: http.StatusServiceUnavailable, body: "service overloaded", wantMsg: "request failed: 503"},
		{name: "empty body", status: http.StatusNotFound, body: "", wantMsg: "request failed: 404"},
		{name: "json without error field", status: http.StatusUnprocessableEntity, body: `{"detail":"bad"}`, wantMsg: "request failed: 422"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			_, err := NewHTTPSearcher(srv.URL, nil).Search(context.Background(), models.SearchRequest{Query: "q", TopK: 1})

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "expected *APIError, got %v", err)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.wantMsg, failureMessage(err))
		})
	}
}

func TestHTTPSearcherTransportFailureIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSearcher(url, nil).Search(context.Background(), models.SearchRequest{Query: "q", TopK: 1})
	require.Error(t, err)
	assert.Equal(t, UnknownErrorMessage, failureMessage(err))
}

func TestHTTPSearcherMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	}))
	defer srv.Close()

	_, err := NewHTTPSearcher(srv.URL, nil).Search(context.Background(), models.SearchRequest{Query: "q", TopK: 1})
	require.Error(t, err)
	assert.Equal(t, UnknownErrorMessage, failureMessage(err))
}
