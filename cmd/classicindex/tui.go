package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/JingYiJun/ClassicIndex/internal/client"
	"github.com/JingYiJun/ClassicIndex/internal/log"
	"github.com/JingYiJun/ClassicIndex/internal/models"
	"github.com/JingYiJun/ClassicIndex/internal/render"
)

// TUICommand starts the interactive search screen
func TUICommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactive search: type, press Enter, Up/Down to change the result count",
		Action: func(ctx context.Context, c *cli.Command) error {
			s, err := openSession(c)
			if err != nil {
				return err
			}
			defer s.Close()

			// Log lines on stderr would tear the alt screen
			logFile, err := os.OpenFile(filepath.Join(s.cfg.DataDir, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("opening tui log: %w", err)
			}
			defer logFile.Close()
			prev := log.Writer()
			log.SetOutput(logFile)
			defer log.SetOutput(prev)

			m := newTUIModel(ctx, s.client, s.searcher)
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}
}

// searchDoneMsg carries the outcome of one search back into the update loop
type searchDoneMsg struct {
	pending client.Pending
	resp    *models.SearchResponse
	err     error
}

type tuiModel struct {
	ctx      context.Context
	client   *client.Client
	searcher client.Searcher
	width    int
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

func newTUIModel(ctx context.Context, qc *client.Client, searcher client.Searcher) tuiModel {
	return tuiModel{ctx: ctx, client: qc, searcher: searcher}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case searchDoneMsg:
		m.client.Resolve(msg.pending, msg.resp, msg.err)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			m.client.UpdateResultCount(m.client.ResultCount() + 1)
		case tea.KeyDown:
			m.client.UpdateResultCount(m.client.ResultCount() - 1)
		case tea.KeyBackspace:
			runes := []rune(m.client.Query())
			if len(runes) > 0 {
				m.client.UpdateQuery(string(runes[:len(runes)-1]))
			}
		case tea.KeyRunes, tea.KeySpace:
			m.client.UpdateQuery(m.client.Query() + pastedText(msg))
		case tea.KeyEnter:
			// A paste is the terminal's composition: it never submits
			if !client.IsSubmitKey(client.KeyEvent{Key: client.KeyEnter, Composing: msg.Paste}) {
				return m, nil
			}
			return m, m.submit()
		}
	}
	return m, nil
}

// submit starts a search and returns the command that runs it
func (m tuiModel) submit() tea.Cmd {
	pending, ok := m.client.Begin()
	if !ok {
		return nil
	}
	ctx, searcher := m.ctx, m.searcher
	return func() tea.Msg {
		resp, err := searcher.Search(ctx, pending.Request)
		return searchDoneMsg{pending: pending, resp: resp, err: err}
	}
}

// pastedText flattens line breaks so pasted text stays on the query line
func pastedText(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return " "
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(string(msg.Runes))
}

func (m tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📚 Classic Index"))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("› "))
	b.WriteString(m.client.Query())
	b.WriteString("█\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("results: %d  ·  enter search  ·  ↑/↓ result count  ·  esc quit", m.client.ResultCount())))
	b.WriteString("\n\n")
	b.WriteString(render.State(m.client.State(), render.Options{Width: m.width}))
	b.WriteString("\n")
	return b.String()
}
