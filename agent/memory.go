package agent

import "lighthouses/game"

// Stage is the coverage pattern's position in its state machine.
type Stage int

const (
	AwaitingFirstTurn Stage = iota
	Sweeping
	Retracing
)

func (s Stage) String() string {
	switch s {
	case AwaitingFirstTurn:
		return "awaiting-first-turn"
	case Sweeping:
		return "sweeping"
	case Retracing:
		return "retracing"
	}
	return "unknown"
}

// Sweep is the state of the boustrophedon coverage pattern.
type Sweep struct {
	Stage       Stage
	Corner      game.Corner
	Heading     Direction // Horizontal direction of the current pass
	Rise        Direction // Vertical direction taken between passes
	Visited     map[game.Position]struct{}
	Completions int
}

// Memory is everything an engine remembers between the turns of one game.
type Memory struct {
	Player   game.PlayerID
	Attacked map[game.Position]struct{}
	Sweep    Sweep
}

func newMemory(player game.PlayerID) Memory {
	return Memory{
		Player:   player,
		Attacked: make(map[game.Position]struct{}),
		Sweep: Sweep{
			Stage:   AwaitingFirstTurn,
			Visited: make(map[game.Position]struct{}),
		},
	}
}

func (m Memory) HasAttacked(p game.Position) bool {
	_, ok := m.Attacked[p]
	return ok
}

func (m Memory) Copy() Memory {
	out := m
	out.Attacked = copySet(m.Attacked)
	out.Sweep.Visited = copySet(m.Sweep.Visited)
	return out
}

func copySet(in map[game.Position]struct{}) map[game.Position]struct{} {
	out := make(map[game.Position]struct{}, len(in))
	for p := range in {
		out[p] = struct{}{}
	}
	return out
}
