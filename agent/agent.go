package agent

import "lighthouses/game"

type Agent interface {
	// FindMove returns the single action to play this turn, or an error when the turn cannot be decided
	FindMove(turn game.Turn) (game.Action, error)
}
