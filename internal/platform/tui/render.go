package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/render"
)

// cellStyles maps screen colors to terminal styles. Board pieces take the
// configured palette so the terminal, PNG and browser renders agree; lipgloss
// degrades the hex values on terminals without true color.
type cellStyles map[core.Color]lipgloss.Style

func newCellStyles(p render.Palette) cellStyles {
	bg := lipgloss.Color(render.Hex(p.Background))
	on := func(fg lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(fg).Background(bg)
	}
	ansi := func(c core.Color) lipgloss.Color { return lipgloss.Color(c.ANSI()) }

	return cellStyles{
		core.ColorDefault:   lipgloss.NewStyle(),
		core.ColorBoard:     on(bg),
		core.ColorGrid:      on(lipgloss.Color(render.Hex(p.Grid))),
		core.ColorSnake:     on(lipgloss.Color(render.Hex(p.Snake))),
		core.ColorSnakeHead: on(lipgloss.Color(render.Hex(p.Head))).Bold(true),
		core.ColorFood:      on(lipgloss.Color(render.Hex(p.Food))),
		core.ColorText:      on(ansi(core.ColorText)).Bold(true),
		core.ColorAlert:     on(ansi(core.ColorAlert)).Bold(true),
		core.ColorDim:       lipgloss.NewStyle().Foreground(ansi(core.ColorDim)),
	}
}

// render emits s row by row. Runs of one color share a single styled
// segment to keep escape sequences down.
func (cs cellStyles) render(s *core.Screen) string {
	var out, run strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		runColor := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != runColor {
				out.WriteString(cs.style(runColor).Render(run.String()))
				run.Reset()
				runColor = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			out.WriteString(cs.style(runColor).Render(run.String()))
			run.Reset()
		}
	}
	return out.String()
}

func (cs cellStyles) style(c core.Color) lipgloss.Style {
	if st, ok := cs[c]; ok {
		return st
	}
	return cs[core.ColorDefault]
}
