package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frogpond/internal/core"
)

// colorPair keys the style cache.
type colorPair struct {
	fg, bg core.Color
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	styles := make(map[colorPair]lipgloss.Style)
	styleFor := func(p colorPair) lipgloss.Style {
		if st, ok := styles[p]; ok {
			return st
		}
		st := theme.NewStyle()
		if !p.fg.IsDefault() {
			st = st.Foreground(lipgloss.Color(p.fg.Hex()))
		}
		if !p.bg.IsDefault() {
			st = st.Background(lipgloss.Color(p.bg.Hex()))
		}
		styles[p] = st
		return st
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colours
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			pair := colorPair{start.FG, start.BG}

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != pair.fg || cell.BG != pair.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if pair == (colorPair{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(pair).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
