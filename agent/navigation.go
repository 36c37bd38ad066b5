package agent

import "lighthouses/game"

// Direction is one of the eight compass moves a player can make.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case NorthEast:
		return "northeast"
	case East:
		return "east"
	case SouthEast:
		return "southeast"
	case South:
		return "south"
	case SouthWest:
		return "southwest"
	case West:
		return "west"
	case NorthWest:
		return "northwest"
	}
	return "unknown"
}

// navigation maps each direction to its unit vector. It is a value type, every
// engine holds its own copy.
type navigation [8]game.Position

func newNavigation() navigation {
	return navigation{
		North:     {X: 0, Y: 1},
		NorthEast: {X: 1, Y: 1},
		East:      {X: 1, Y: 0},
		SouthEast: {X: 1, Y: -1},
		South:     {X: 0, Y: -1},
		SouthWest: {X: -1, Y: -1},
		West:      {X: -1, Y: 0},
		NorthWest: {X: -1, Y: 1},
	}
}

func (n navigation) step(from game.Position, d Direction) game.Position {
	return from.Add(n[d])
}
