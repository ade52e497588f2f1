package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/snippets/internal/errors"
	"github.com/agbru/snippets/internal/orchestration"
	"github.com/agbru/snippets/internal/snippets"
)

// Model is the root bubbletea model of the snippet browser.
type Model struct {
	header HeaderModel
	help   help.Model
	keymap KeyMap

	ctx      context.Context
	opts     orchestration.ExecOptions
	snippets []snippets.Snippet
	results  []*orchestration.RunResult
	running  []bool
	cursor   int

	width    int
	exitCode int
}

// NewModel creates a browser over list. Runs use ctx and opts.
func NewModel(ctx context.Context, list []snippets.Snippet, opts orchestration.ExecOptions, version string) Model {
	return Model{
		header:   NewHeaderModel(version),
		help:     help.New(),
		keymap:   DefaultKeyMap(),
		ctx:      ctx,
		opts:     opts,
		snippets: list,
		results:  make([]*orchestration.RunResult, len(list)),
		running:  make([]bool, len(list)),
		exitCode: apperrors.ExitSuccess,
	}
}

// Init implements tea.Model. Nothing runs until the user asks.
func (m Model) Init() tea.Cmd {
	return nil
}

// Cursor returns the index of the selected snippet.
func (m Model) Cursor() int { return m.cursor }

// ExitCode returns the exit code of the first failed run, or ExitSuccess.
func (m Model) ExitCode() int { return m.exitCode }

// Result returns the last result of snippet i, or nil if it never ran.
func (m Model) Result(i int) *orchestration.RunResult {
	if i < 0 || i >= len(m.results) {
		return nil
	}
	return m.results[i]
}

// Running reports whether snippet i has a run in flight.
func (m Model) Running(i int) bool {
	return i >= 0 && i < len(m.running) && m.running[i]
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.header.SetWidth(msg.Width)
		return m, nil

	case RunStartedMsg:
		if msg.Index >= 0 && msg.Index < len(m.running) {
			m.running[msg.Index] = true
		}
		return m, nil

	case RunResultMsg:
		if msg.Index < 0 || msg.Index >= len(m.results) {
			return m, nil
		}
		res := msg.Result
		m.results[msg.Index] = &res
		m.running[msg.Index] = false
		m.header.RecordRun(res.Duration)
		if res.Err != nil && m.exitCode == apperrors.ExitSuccess {
			m.exitCode = apperrors.ExitCodeFor(res.Err)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.snippets)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keymap.Run):
		if len(m.snippets) == 0 || m.running[m.cursor] {
			return m, nil
		}
		m.running[m.cursor] = true
		return m, runSnippetCmd(m.ctx, m.cursor, m.snippets[m.cursor], m.opts)

	case key.Matches(msg, m.keymap.RunAll):
		if len(m.snippets) == 0 {
			return m, nil
		}
		return m, runAllCmd(m.ctx, m.snippets, m.opts)

	case key.Matches(msg, m.keymap.Clear):
		if len(m.results) > 0 {
			m.results[m.cursor] = nil
		}
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// View renders the header, the snippet list, the output of the selected
// snippet and the key help.
func (m Model) View() string {
	var list strings.Builder
	nameWidth := 0
	for _, s := range m.snippets {
		nameWidth = max(nameWidth, len(s.Name()))
	}
	for i, s := range m.snippets {
		pointer := "  "
		name := itemStyle.Render(fmt.Sprintf("%-*s", nameWidth, s.Name()))
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
			name = cursorStyle.Render(fmt.Sprintf("%-*s", nameWidth, s.Name()))
		}
		fmt.Fprintf(&list, "%s%s %s  %s\n", pointer, m.statusMark(i), name, descStyle.Render(s.Description()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		panelStyle.Render(strings.TrimSuffix(list.String(), "\n")),
		outputStyle.Render(m.outputView()),
		m.help.View(m.keymap),
	)
}

func (m Model) statusMark(i int) string {
	switch {
	case m.running[i]:
		return runningStyle.Render("…")
	case m.results[i] == nil:
		return " "
	case m.results[i].Err != nil:
		return errorStyle.Render("✗")
	default:
		return successStyle.Render("✓")
	}
}

func (m Model) outputView() string {
	if len(m.snippets) == 0 {
		return descStyle.Render("No snippets registered.")
	}
	res := m.results[m.cursor]
	switch {
	case m.running[m.cursor]:
		return runningStyle.Render("Running " + m.snippets[m.cursor].Name() + "...")
	case res == nil:
		return descStyle.Render("Press enter to run " + m.snippets[m.cursor].Name() + ".")
	case res.Err != nil:
		return strings.TrimSuffix(string(res.Output), "\n") + errorStyle.Render(fmt.Sprintf("\nerror: %v", res.Err))
	}
	return strings.TrimSuffix(string(res.Output), "\n")
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, list []snippets.Snippet, opts orchestration.ExecOptions, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	p := tea.NewProgram(NewModel(ctx, list, opts, version), tea.WithContext(ctx), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}
