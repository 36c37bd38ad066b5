package communication

import (
	"context"
	"errors"

	"lighthouses/game"
)

//go:generate mockgen -destination=mocks/mock_coordinator.go -package=mocks lighthouses/communication Coordinator

// Coordinator is the remote game server a player registers with.
type Coordinator interface {
	// Join registers the player and returns the id assigned to it
	Join(ctx context.Context, name, callbackAddress string) (game.PlayerID, error)
}

var (
	ErrMissingPosition = errors.New("turn has no player position")
	// ErrNotReady is returned by handlers asked to play before the session exists.
	ErrNotReady        = errors.New("player has not joined a game")
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Game() game.Position {
	return game.Position{X: p.X, Y: p.Y}
}

func FromGame(p game.Position) Position {
	return Position{X: p.X, Y: p.Y}
}

type JoinRequest struct {
	Name          string `json:"name"`
	ServerAddress string `json:"serverAddress"`
}

type JoinResponse struct {
	PlayerID int `json:"playerId"`
}

type InitialState struct {
	PlayerID    int        `json:"playerId"`
	PlayerCount int        `json:"playerCount"`
	Position    Position   `json:"position"`
	Map         [][]bool   `json:"map"`
	Lighthouses []Position `json:"lighthouses"`
}

type PlayerReady struct {
	Ready bool `json:"ready"`
}

type Lighthouse struct {
	Position    Position   `json:"position"`
	Owner       *int       `json:"owner"`
	Energy      int        `json:"energy"`
	HaveKey     bool       `json:"haveKey"`
	Connections []Position `json:"connections"`
}

type Turn struct {
	Position    *Position    `json:"position"`
	Energy      int          `json:"energy"`
	Lighthouses []Lighthouse `json:"lighthouses"`
}

type Action struct {
	Action      game.ActionType `json:"action"`
	Destination Position        `json:"destination"`
	Energy      int             `json:"energy,omitempty"`
}

func (s InitialState) Game() game.InitialState {
	lighthouses := make([]game.Position, len(s.Lighthouses))
	for i, p := range s.Lighthouses {
		lighthouses[i] = p.Game()
	}
	return game.InitialState{
		Player:      game.PlayerID(s.PlayerID),
		PlayerCount: s.PlayerCount,
		Position:    s.Position.Game(),
		Map:         s.Map,
		Lighthouses: lighthouses,
	}
}

func FromInitialState(s game.InitialState) InitialState {
	lighthouses := make([]Position, len(s.Lighthouses))
	for i, p := range s.Lighthouses {
		lighthouses[i] = FromGame(p)
	}
	return InitialState{
		PlayerID:    int(s.Player),
		PlayerCount: s.PlayerCount,
		Position:    FromGame(s.Position),
		Map:         s.Map,
		Lighthouses: lighthouses,
	}
}

// Game converts the wire turn into a snapshot. A turn without the player's
// position cannot be decided and is rejected.
func (t Turn) Game() (game.Turn, error) {
	if t.Position == nil {
		return game.Turn{}, ErrMissingPosition
	}
	turn := game.Turn{
		Position:    t.Position.Game(),
		Energy:      t.Energy,
		Lighthouses: make([]game.Lighthouse, len(t.Lighthouses)),
	}
	for i, lh := range t.Lighthouses {
		owner := game.Unowned
		if lh.Owner != nil {
			owner = game.PlayerID(*lh.Owner)
		}
		connections := make([]game.Position, len(lh.Connections))
		for j, c := range lh.Connections {
			connections[j] = c.Game()
		}
		turn.Lighthouses[i] = game.Lighthouse{
			Position:    lh.Position.Game(),
			Owner:       owner,
			Energy:      lh.Energy,
			HaveKey:     lh.HaveKey,
			Connections: connections,
		}
	}
	return turn, nil
}

func FromTurn(t game.Turn) Turn {
	pos := FromGame(t.Position)
	out := Turn{
		Position:    &pos,
		Energy:      t.Energy,
		Lighthouses: make([]Lighthouse, len(t.Lighthouses)),
	}
	for i, lh := range t.Lighthouses {
		var owner *int
		if lh.Owner != game.Unowned {
			id := int(lh.Owner)
			owner = &id
		}
		connections := make([]Position, len(lh.Connections))
		for j, c := range lh.Connections {
			connections[j] = FromGame(c)
		}
		out.Lighthouses[i] = Lighthouse{
			Position:    FromGame(lh.Position),
			Owner:       owner,
			Energy:      lh.Energy,
			HaveKey:     lh.HaveKey,
			Connections: connections,
		}
	}
	return out
}

func (a Action) Game() game.Action {
	return game.Action{Type: a.Action, Destination: a.Destination.Game(), Energy: a.Energy}
}

func FromAction(a game.Action) Action {
	return Action{Action: a.Type, Destination: FromGame(a.Destination), Energy: a.Energy}
}
