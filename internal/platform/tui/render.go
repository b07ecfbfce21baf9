package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styleFor builds the lipgloss style for a color pair. Default colors leave
// the terminal's own colors in place.
func styleFor(p colorPair, cache map[colorPair]lipgloss.Style) lipgloss.Style {
	if s, ok := cache[p]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if p.fg != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(p.fg))
	}
	if p.bg != core.ColorDefault {
		s = s.Background(lipgloss.Color(p.bg))
	}
	cache[p] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	cache := make(map[colorPair]lipgloss.Style)

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := colorPair{cell.FG, cell.BG}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.FG, cell.BG}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(start, cache).Render(run.String()))
		}
	}
	return sb.String()
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
