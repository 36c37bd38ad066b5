package game

// Lighthouse is one lighthouse as seen on the current turn.
type Lighthouse struct {
	Position    Position
	Owner       PlayerID // Unowned if nobody controls it
	Energy      int
	HaveKey     bool       // Whether we hold the key needed to connect to it
	Connections []Position // Lighthouses it is already linked to
}

// ConnectedTo reports whether the lighthouse already links to p.
func (l Lighthouse) ConnectedTo(p Position) bool {
	for _, c := range l.Connections {
		if c == p {
			return true
		}
	}
	return false
}

// Turn is the snapshot a player receives when asked for its next action.
// It is rebuilt from the wire every turn and never mutated.
type Turn struct {
	Position    Position
	Energy      int
	Lighthouses []Lighthouse
}

// LighthouseAt returns the lighthouse located at p, if any.
func (t Turn) LighthouseAt(p Position) (Lighthouse, bool) {
	for _, lh := range t.Lighthouses {
		if lh.Position == p {
			return lh, true
		}
	}
	return Lighthouse{}, false
}

// InitialState is the full board snapshot sent once before the first turn.
// Map is indexed [y][x]; true marks a walkable cell.
type InitialState struct {
	Player      PlayerID
	PlayerCount int
	Position    Position
	Map         [][]bool
	Lighthouses []Position
}

// Board derives the board dimensions from the map grid.
// It returns false when the snapshot carries no usable map.
func (s InitialState) Board() (Board, bool) {
	if len(s.Map) == 0 || len(s.Map[0]) == 0 {
		return Board{}, false
	}
	width := len(s.Map[0])
	for _, row := range s.Map {
		if len(row) != width {
			return Board{}, false
		}
	}
	return NewBoard(width, len(s.Map)), true
}

// Walkable reports whether p can be stepped on. Cells outside the map are not walkable.
func (s InitialState) Walkable(p Position) bool {
	if p.Y < 0 || p.Y >= len(s.Map) || p.X < 0 || p.X >= len(s.Map[p.Y]) {
		return false
	}
	return s.Map[p.Y][p.X]
}
