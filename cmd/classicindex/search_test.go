package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/JingYiJun/ClassicIndex/internal/client"
	"github.com/JingYiJun/ClassicIndex/internal/models"
	"github.com/JingYiJun/ClassicIndex/internal/render"
)

type failingSearcher struct{ err error }

func (f failingSearcher) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	return nil, f.err
}

func TestRunSearch(t *testing.T) {
	t.Run("prints results", func(t *testing.T) {
		searcher := &stubSearcher{resp: &models.SearchResponse{Results: []models.SearchResult{
			{Book: "Wealth of Nations", Page: 7, Content: "division of labour", Score: 0.81},
		}}}
		qc, err := client.New(searcher)
		require.NoError(t, err)

		var out bytes.Buffer
		err = runSearch(context.Background(), qc, "  labour  ", render.Options{}, &out)

		require.NoError(t, err)
		require.Len(t, searcher.requests, 1)
		assert.Equal(t, "labour", searcher.requests[0].Query)
		assert.Contains(t, out.String(), "Wealth of Nations")
		assert.Contains(t, out.String(), "division of labour")
	})

	t.Run("blank query warns without searching", func(t *testing.T) {
		searcher := &stubSearcher{}
		qc, err := client.New(searcher)
		require.NoError(t, err)

		var out bytes.Buffer
		err = runSearch(context.Background(), qc, "   ", render.Options{}, &out)

		var exit cli.ExitCoder
		require.ErrorAs(t, err, &exit)
		assert.Equal(t, 1, exit.ExitCode())
		assert.Contains(t, out.String(), client.EmptyQueryMessage)
		assert.Empty(t, searcher.requests)
	})

	t.Run("backend failure exits non-zero", func(t *testing.T) {
		qc, err := client.New(failingSearcher{err: &client.APIError{StatusCode: 503, Message: "search backend unreachable"}})
		require.NoError(t, err)

		var out bytes.Buffer
		err = runSearch(context.Background(), qc, "value", render.Options{}, &out)

		require.Error(t, err)
		assert.Contains(t, out.String(), "search backend unreachable")
	})

	t.Run("empty results", func(t *testing.T) {
		qc, err := client.New(&stubSearcher{resp: &models.SearchResponse{}})
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, runSearch(context.Background(), qc, "nothing", render.Options{}, &out))
		assert.Contains(t, out.String(), render.NoResultsTitle)
	})

	t.Run("unknown error", func(t *testing.T) {
		qc, err := client.New(failingSearcher{err: errors.New("boom")})
		require.NoError(t, err)

		var out bytes.Buffer
		require.Error(t, runSearch(context.Background(), qc, "x", render.Options{}, &out))
		assert.NotContains(t, out.String(), render.LoadingText)
	})
}
