package main

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JingYiJun/ClassicIndex/internal/client"
	"github.com/JingYiJun/ClassicIndex/internal/models"
	"github.com/JingYiJun/ClassicIndex/internal/render"
)

type stubSearcher struct {
	mu       sync.Mutex
	requests []models.SearchRequest
	resp     *models.SearchResponse
}

func (s *stubSearcher) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.resp, nil
}

func newTestModel(t *testing.T, searcher *stubSearcher) (tuiModel, *client.Client) {
	t.Helper()
	qc, err := client.New(searcher)
	require.NoError(t, err)
	return newTUIModel(context.Background(), qc, searcher), qc
}

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestTUIEnterRunsSearch(t *testing.T) {
	searcher := &stubSearcher{resp: &models.SearchResponse{Results: []models.SearchResult{
		{Book: "Das Kapital", Page: 12, Content: "commodity", Score: 0.93},
	}}}
	m, qc := newTestModel(t, searcher)

	model := typeText(m, "capitalism")
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, client.Loading{}, qc.State())
	assert.Contains(t, model.View(), render.LoadingText)

	model, _ = model.Update(cmd())

	require.Len(t, searcher.requests, 1)
	assert.Equal(t, models.SearchRequest{Query: "capitalism", TopK: client.DefaultResultCount}, searcher.requests[0])
	assert.IsType(t, client.Results{}, qc.State())
	assert.Contains(t, model.View(), "Das Kapital")
}

func TestTUIPastedEnterDoesNotSubmit(t *testing.T) {
	searcher := &stubSearcher{resp: &models.SearchResponse{}}
	m, qc := newTestModel(t, searcher)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("资本\n主义"), Paste: true})
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter, Paste: true})

	assert.Nil(t, cmd)
	assert.Equal(t, "资本 主义", qc.Query())
	assert.Equal(t, client.Idle{}, qc.State())
	assert.Empty(t, searcher.requests)
}

func TestTUIBlankEnterWarns(t *testing.T) {
	searcher := &stubSearcher{}
	m, qc := newTestModel(t, searcher)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, client.Warning{Message: client.EmptyQueryMessage}, qc.State())
	assert.Contains(t, model.View(), client.EmptyQueryMessage)
	assert.Empty(t, searcher.requests)
}

func TestTUIEditingAndResultCount(t *testing.T) {
	m, qc := newTestModel(t, &stubSearcher{})

	model := typeText(m, "labour")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "labou", qc.Query())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, client.DefaultResultCount+1, qc.ResultCount())
	for i := 0; i < 30; i++ {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, client.MinResultCount, qc.ResultCount())

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTUIStaleResultIgnored(t *testing.T) {
	searcher := &stubSearcher{resp: &models.SearchResponse{Results: []models.SearchResult{{Book: "old", Page: 1}}}}
	m, qc := newTestModel(t, searcher)

	model := typeText(m, "first")
	model, first := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)
	staleMsg := first()

	model, second := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, second)

	model, _ = model.Update(staleMsg)
	assert.Equal(t, client.Loading{}, qc.State())

	searcher.resp = &models.SearchResponse{Results: []models.SearchResult{{Book: "new", Page: 2}}}
	model.Update(second())
	st, ok := qc.State().(client.Results)
	require.True(t, ok)
	assert.Equal(t, "new", st.Items[0].Book)
}

func TestTUIBlankEnterWhileLoadingKeepsWarning(t *testing.T) {
	searcher := &stubSearcher{resp: &models.SearchResponse{Results: []models.SearchResult{{Book: "Das Kapital", Page: 12}}}}
	m, qc := newTestModel(t, searcher)

	model := typeText(m, "x")
	model, pending := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, pending)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	model, _ = model.Update(pending())

	assert.Equal(t, client.Warning{Message: client.EmptyQueryMessage}, qc.State())
	assert.Contains(t, model.View(), client.EmptyQueryMessage)
	assert.NotContains(t, model.View(), "Das Kapital")
}
