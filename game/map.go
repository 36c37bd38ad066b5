package game

import (
	"fmt"

	"lighthouses/utils"
)

// Position is a cell on the board. (0,0) is the bottom-left corner.
type Position struct {
	X int
	Y int
}

func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// IsStep reports whether q is exactly one unit step away from p along one axis.
func (p Position) IsStep(q Position) bool {
	dx := utils.Abs(q.X - p.X)
	dy := utils.Abs(q.Y - p.Y)
	return dx+dy == 1
}

// Board holds the grid dimensions of a game.
type Board struct {
	Width  int
	Height int
}

func NewBoard(width, height int) Board {
	return Board{Width: width, Height: height}
}

func (b Board) Cells() int {
	return b.Width * b.Height
}

func (b Board) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Clamp moves p to the nearest in-bounds cell on both axes.
func (b Board) Clamp(p Position) Position {
	return Position{
		X: utils.Clamp(p.X, 0, b.Width-1),
		Y: utils.Clamp(p.Y, 0, b.Height-1),
	}
}

// Corner classifies p as one of the four board corners.
func (b Board) Corner(p Position) (Corner, bool) {
	left, right := p.X == 0, p.X == b.Width-1
	bottom, top := p.Y == 0, p.Y == b.Height-1
	switch {
	case left && bottom:
		return BottomLeft, true
	case right && bottom:
		return BottomRight, true
	case left && top:
		return TopLeft, true
	case right && top:
		return TopRight, true
	}
	return 0, false
}

func (b Board) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

type Corner int

const (
	BottomLeft Corner = iota
	BottomRight
	TopLeft
	TopRight
)

// Bottom reports whether the corner lies on the y=0 edge.
func (c Corner) Bottom() bool {
	return c == BottomLeft || c == BottomRight
}

// Left reports whether the corner lies on the x=0 edge.
func (c Corner) Left() bool {
	return c == BottomLeft || c == TopLeft
}

func (c Corner) String() string {
	switch c {
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	}
	return fmt.Sprintf("Corner(%d)", int(c))
}
