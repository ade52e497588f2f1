package orchestration

import (
	"github.com/agbru/snippets/internal/config"
	"github.com/agbru/snippets/internal/snippets"
)

// SnippetSource is the lookup surface of a snippet registry.
type SnippetSource interface {
	List() []string
	Get(name string) (snippets.Snippet, error)
}

// GetSnippetsToRun determines which snippets should be executed. Returns
// snippets in alphabetically sorted order for consistent, reproducible
// behavior.
//
// Parameters:
//   - name: The snippet name, or config.AllSnippets.
//   - source: The registry to retrieve snippets from.
//
// Returns:
//   - []snippets.Snippet: The snippets to execute (empty for unknown names).
func GetSnippetsToRun(name string, source SnippetSource) []snippets.Snippet {
	if name == config.AllSnippets {
		keys := source.List()
		selected := make([]snippets.Snippet, 0, len(keys))
		for _, k := range keys {
			if s, err := source.Get(k); err == nil {
				selected = append(selected, s)
			}
		}
		return selected
	}
	if s, err := source.Get(name); err == nil {
		return []snippets.Snippet{s}
	}
	return nil
}
