package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders done/total as a bar followed by a percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	width = max(width, 5)
	filled := min(done*width/total, width)
	pct := done * 100 / total
	return fmt.Sprintf("%s%s %3d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), pct)
}

// Panel frames lines with the current theme's border. Lines may already
// carry ANSI colors; lipgloss pads them by visible width.
func Panel(w io.Writer, lines []string) {
	box := lipgloss.NewStyle().Border(current.Frame).Padding(0, 1)
	fmt.Fprintln(w, box.Render(strings.Join(lines, "\n")))
}
