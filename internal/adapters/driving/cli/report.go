package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
)

// chainOrder fixes the display order of per-stage drop counts.
var chainOrder = []string{
	"remove_small",
	"remove_duplicates",
	"classify_language",
	"keep_language",
	"tokenize",
	"score",
	"bucket",
	"minify",
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
)

// renderReport prints a run summary. Styling is applied only when
// stdout is a terminal.
func renderReport(cmd *cobra.Command, report *domain.RunReport) {
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	style := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	cmd.Println(style(titleStyle, fmt.Sprintf("run %s", report.ID)))
	cmd.Printf("  %s -> %s\n", report.InputPath, report.OutputPath)
	cmd.Printf("  %s\n", style(mutedStyle, fmt.Sprintf("took %s",
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))))
	cmd.Println()

	cmd.Printf("  read       %d\n", report.Read)
	cmd.Printf("  malformed  %d\n", report.Malformed)
	for _, stage := range chainOrder {
		if n, ok := report.DropsByStage[stage]; ok && n > 0 {
			cmd.Printf("  %s%d dropped by %s\n", style(mutedStyle, "- "), n, stage)
		}
	}
	cmd.Printf("  %s    %d\n", style(okStyle, "written"), report.Written)
}
