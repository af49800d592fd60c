package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette, row boxes and frame used by one-shot output.
type Theme struct {
	Name string

	// ANSI color prefixes; ignored when Plain is set.
	Title, Muted, Accent, Success, Pending string
	Plain                                  bool

	BoxPending, BoxBought string
	SymBought, SymPending string
	Frame                 lipgloss.Border
}

var themes = map[string]Theme{
	"classic": {
		Title: bold, Muted: fgGray, Accent: fgBlue, Success: fgGreen, Pending: fgYellow,
		BoxPending: "☐", BoxBought: "☑",
		SymBought: "✔", SymPending: "•",
		Frame: lipgloss.NormalBorder(),
	},
	"neon": {
		Title: "\033[95m", Muted: fgGray, Accent: "\033[96m", Success: fgGreen, Pending: "\033[93m",
		BoxPending: "◻", BoxBought: "◼",
		SymBought: "✔", SymPending: "•",
		Frame: lipgloss.RoundedBorder(),
	},
	"mono": {
		Plain:      true,
		BoxPending: "[ ]", BoxBought: "[x]",
		SymBought: "x", SymPending: "-",
		Frame: lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		},
	},
}

var current = lookup("classic")

func lookup(name string) Theme {
	t := themes[name]
	t.Name = name
	return t
}

// SetTheme switches the theme; unknown names fall back to classic.
func SetTheme(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := themes[name]; !ok {
		name = "classic"
	}
	current = lookup(name)
}

func Current() Theme { return current }

// ThemeNames lists the selectable themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
