package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/snippets/internal/orchestration"
	"github.com/agbru/snippets/internal/snippets"
)

// RunStartedMsg marks a snippet as running.
type RunStartedMsg struct {
	Index int
}

// RunResultMsg carries the result of one snippet run back to the model.
type RunResultMsg struct {
	Index  int
	Result orchestration.RunResult
}

// runSnippetCmd runs s through the orchestration layer so that TUI runs are
// traced and recorded like CLI runs.
func runSnippetCmd(ctx context.Context, index int, s snippets.Snippet, opts orchestration.ExecOptions) tea.Cmd {
	return func() tea.Msg {
		return RunResultMsg{Index: index, Result: orchestration.RunSnippet(ctx, s, opts)}
	}
}

// runAllCmd runs every snippet one after another. Each snippet is marked as
// running just before it starts.
func runAllCmd(ctx context.Context, list []snippets.Snippet, opts orchestration.ExecOptions) tea.Cmd {
	cmds := make([]tea.Cmd, 0, 2*len(list))
	for i, s := range list {
		cmds = append(cmds,
			func() tea.Msg { return RunStartedMsg{Index: i} },
			runSnippetCmd(ctx, i, s, opts))
	}
	return tea.Sequence(cmds...)
}
