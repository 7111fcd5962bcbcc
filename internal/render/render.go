// Package render draws client states for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JingYiJun/ClassicIndex/internal/client"
	"github.com/JingYiJun/ClassicIndex/internal/models"
	"github.com/JingYiJun/ClassicIndex/internal/utils"
)

const (
	IdleText       = "Enter keywords to start searching"
	LoadingText    = "Searching the classics..."
	NoResultsTitle = "No relevant content found"
	NoResultsHint  = "Try different keywords or phrasing"
)

var (
	primary = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
	muted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	rankStyle    = lipgloss.NewStyle().Bold(true).Foreground(primary)
	badgeStyle   = lipgloss.NewStyle().Padding(0, 1).Background(primary).Foreground(lipgloss.Color("#FFFFFF"))
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	sourceStyle  = lipgloss.NewStyle().Italic(true).Foreground(muted)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(primary).
			PaddingLeft(1).
			MarginBottom(1)
)

// Options tune how results are drawn
type Options struct {
	// MaxContentRunes truncates passage text; zero shows it in full
	MaxContentRunes int
	// Width wraps cards to this many columns; zero disables wrapping
	Width int
}

// State renders st. Every variant has its own distinct output.
func State(st client.State, opts Options) string {
	switch st := st.(type) {
	case client.Loading:
		return mutedStyle.Render(LoadingText)
	case client.Warning:
		return warningStyle.Render("! " + st.Message)
	case client.Error:
		return errorStyle.Render("✗ " + st.Message)
	case client.Results:
		return Results(st.Items, opts)
	default:
		return mutedStyle.Render(IdleText)
	}
}

// Results renders the result list in the order given
func Results(items []models.SearchResult, opts Options) string {
	if len(items) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render(NoResultsTitle),
			mutedStyle.Render(NoResultsHint),
		)
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Found %d relevant passages", len(items))))
	b.WriteString("\n\n")
	for i, item := range items {
		b.WriteString(Card(item, i+1, opts))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Card renders one result with its 1-based rank
func Card(r models.SearchResult, rank int, opts Options) string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		rankStyle.Render(fmt.Sprintf("#%d", rank)),
		" ",
		badgeStyle.Render(fmt.Sprintf("Page %d", r.Page)),
		"  ",
		scoreStyle.Render("Similarity: "+utils.FormatScorePercent(r.Score)),
	)

	content := utils.TruncateWithEllipsis(r.Content, opts.MaxContentRunes)
	source := sourceStyle.Render("—— 《" + r.Book + "》")

	style := cardStyle
	if opts.Width > 2 {
		style = style.Width(opts.Width - 2)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, header, content, source))
}
