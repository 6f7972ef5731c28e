package snake

import (
	"math/rand"
)

// Default playfield size.
const (
	DefaultCols = 22
	DefaultRows = 22
)

// noFood marks a board with no free cell left.
var noFood = Cell{X: -1, Y: -1}

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Add returns the cell one step away in direction d.
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

// CellsEqual reports whether a and b are the same cell.
func CellsEqual(a, b Cell) bool {
	return a.X == b.X && a.Y == b.Y
}

// Grid is the playfield coordinate space, 0 <= x < Cols, 0 <= y < Rows.
type Grid struct {
	Cols int
	Rows int
}

// DefaultGrid returns the 22x22 board.
func DefaultGrid() Grid {
	return Grid{Cols: DefaultCols, Rows: DefaultRows}
}

// Contains reports whether c lies inside the grid.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Cols && c.Y >= 0 && c.Y < g.Rows
}

// Area returns the number of cells in the grid.
func (g Grid) Area() int {
	return g.Cols * g.Rows
}

// RandomCell returns an integer in [0, max).
func RandomCell(rng *rand.Rand, max int) int {
	return rng.Intn(max)
}

// PlaceFood picks a uniformly random cell not occupied by the snake.
//
// Candidates are drawn by rejection sampling. After Area()*4 misses the grid is
// nearly full, so the remaining free cells are enumerated and one is drawn by
// index instead. ok is false only when the snake covers the whole grid.
func PlaceFood(rng *rand.Rand, g Grid, snake []Cell) (food Cell, ok bool) {
	if g.Area() <= 0 {
		return noFood, false
	}

	occupied := make(map[Cell]struct{}, len(snake))
	for _, c := range snake {
		occupied[c] = struct{}{}
	}

	for range g.Area() * 4 {
		c := Cell{X: RandomCell(rng, g.Cols), Y: RandomCell(rng, g.Rows)}
		if _, taken := occupied[c]; !taken {
			return c, true
		}
	}

	free := make([]Cell, 0, g.Area()-len(occupied))
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			c := Cell{X: x, Y: y}
			if _, taken := occupied[c]; !taken {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return noFood, false
	}
	return free[rng.Intn(len(free))], true
}

// Direction is a unit step on the grid.
type Direction struct {
	DX, DY int
}

// The four directions of travel. Y grows downward.
var (
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

// Valid reports whether d is one of the four unit directions.
func (d Direction) Valid() bool {
	return d == Up || d == Down || d == Left || d == Right
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// IsOpposite reports whether d is the exact reverse of other.
func (d Direction) IsOpposite(other Direction) bool {
	return d == other.Opposite()
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}
