package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JingYiJun/ClassicIndex/internal/client"
	"github.com/JingYiJun/ClassicIndex/internal/models"
)

func TestStatesRenderDistinctly(t *testing.T) {
	idle := State(client.Idle{}, Options{})
	loading := State(client.Loading{}, Options{})
	warning := State(client.Warning{Message: client.EmptyQueryMessage}, Options{})
	failed := State(client.Error{Message: "cannot reach backend service"}, Options{})
	empty := State(client.Results{Items: []models.SearchResult{}}, Options{})

	assert.Contains(t, idle, IdleText)
	assert.Contains(t, loading, LoadingText)
	assert.Contains(t, warning, client.EmptyQueryMessage)
	assert.Contains(t, failed, "cannot reach backend service")
	assert.Contains(t, empty, NoResultsTitle)
	assert.Contains(t, empty, NoResultsHint)

	assert.NotContains(t, empty, IdleText)
	assert.NotContains(t, failed, NoResultsTitle)
}

func TestResultsKeepOrderAndFormatScores(t *testing.T) {
	items := []models.SearchResult{
		{Book: "Das Kapital", Page: 12, Content: "first passage", Score: 0.5},
		{Book: "Grundrisse", Page: 3, Content: "second passage", Score: 0.93},
	}

	out := State(client.Results{Items: items}, Options{})

	assert.Contains(t, out, "Found 2 relevant passages")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "Page 12")
	assert.Contains(t, out, "Similarity: 50.0%")
	assert.Contains(t, out, "Similarity: 93.0%")
	assert.Contains(t, out, "《Das Kapital》")

	first := strings.Index(out, "first passage")
	second := strings.Index(out, "second passage")
	assert.True(t, first >= 0 && second > first, "results must stay in relevance order")
}

func TestCardTruncatesContent(t *testing.T) {
	r := models.SearchResult{Book: "B", Page: 1, Content: strings.Repeat("word ", 100), Score: 0.1}

	out := Card(r, 1, Options{MaxContentRunes: 20})

	assert.Contains(t, out, "...")
	assert.NotContains(t, out, strings.Repeat("word ", 10))
}
