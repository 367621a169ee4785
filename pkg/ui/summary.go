package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"})
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "246"}).Width(18)
	countStyle = lipgloss.NewStyle().Bold(true)
)

// ColorEnabled reports whether styled output should be produced.
// NO_COLOR, a non-terminal stdout, or a dumb terminal all disable styling.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// SummaryRow is one line of a run summary
type SummaryRow struct {
	Label string
	Count int
}

// RenderSummary renders a titled count table for the end of a run.
// Styling degrades to plain text outside a color-capable terminal.
func RenderSummary(title string, rows []SummaryRow) string {
	styled := ColorEnabled()

	var b strings.Builder
	if styled {
		b.WriteString(titleStyle.Render(title))
	} else {
		b.WriteString(title)
	}
	b.WriteString("\n")

	for _, row := range rows {
		label := fmt.Sprintf("%-18s", row.Label)
		count := fmt.Sprintf("%d", row.Count)
		if styled {
			label = labelStyle.Render(row.Label)
			count = countStyle.Render(count)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", label, count))
	}

	return strings.TrimRight(b.String(), "\n")
}
