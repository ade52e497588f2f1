package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/snippets/internal/config"
	"github.com/agbru/snippets/internal/snippets"
	"github.com/agbru/snippets/internal/sysmon"
	"github.com/agbru/snippets/internal/ui"
)

// PrintExecutionConfig displays the inputs and limits of the run. With
// verbose set it adds a system CPU and memory sample.
func PrintExecutionConfig(cfg config.AppConfig, sample *sysmon.Stats, out io.Writer) {
	theme := ui.GetCurrentTheme()
	fmt.Fprintf(out, "%s\n", theme.Header("--- Execution Configuration ---"))
	fmt.Fprintf(out, "Inputs: fibonacci(%d), factorialize(%d); timeout %s.\n", cfg.N, cfg.Factorial, cfg.Timeout)
	fmt.Fprintf(out, "Environment: %d logical processors, Go %s, parallelism %d.\n",
		runtime.NumCPU(), runtime.Version(), cfg.Parallelism)
	if sample != nil {
		fmt.Fprintf(out, "System: CPU %.1f%%, memory %.1f%%.\n", sample.CPUPercent, sample.MemPercent)
	}
}

// PrintExecutionMode announces which snippets are about to run.
func PrintExecutionMode(selected []snippets.Snippet, out io.Writer) {
	var modeDesc string
	switch len(selected) {
	case 0:
		modeDesc = "nothing to run"
	case 1:
		modeDesc = fmt.Sprintf("single snippet %q", selected[0].Name())
	default:
		modeDesc = fmt.Sprintf("all %d snippets", len(selected))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n\n", modeDesc)
}
