package core

// Color represents a foreground color for a screen cell.
// Values are ANSI 256-color codes so every terminal profile can show them.
type Color uint8

// Palette entries used by the snake board and its overlays.
const (
	ColorDefault Color = iota
	ColorBoard
	ColorGrid
	ColorSnake
	ColorSnakeHead
	ColorFood
	ColorText
	ColorDim
	ColorAlert
)

// ANSI returns the 256-color code for c.
func (c Color) ANSI() string {
	switch c {
	case ColorBoard:
		return "18" // deep blue, closest to #02017F
	case ColorGrid:
		return "19"
	case ColorSnake:
		return "184"
	case ColorSnakeHead:
		return "226"
	case ColorFood:
		return "226"
	case ColorText:
		return "15"
	case ColorDim:
		return "245"
	case ColorAlert:
		return "203"
	default:
		return ""
	}
}
