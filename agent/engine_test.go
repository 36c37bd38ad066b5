package agent

import (
	"testing"

	"lighthouses/game"

	"github.com/stretchr/testify/require"
)

const me game.PlayerID = 1

func newTestEngine(t *testing.T, width, height int) *Engine {
	t.Helper()
	e, err := NewEngine(me, game.NewBoard(width, height))
	require.NoError(t, err)
	return e
}

// walk feeds the engine turns without lighthouses, moving the player to each
// destination, and returns every position visited including the start.
func walk(t *testing.T, e *Engine, start game.Position, turns int) []game.Position {
	t.Helper()
	path := []game.Position{start}
	pos := start
	for i := 0; i < turns; i++ {
		action, err := e.FindMove(game.Turn{Position: pos, Energy: 10})
		require.NoError(t, err)
		require.Equal(t, game.MoveAction, action.Type)
		pos = action.Destination
		path = append(path, pos)
	}
	return path
}

func TestNewEngine(t *testing.T) {
	t.Run("rejects boards without room to move", func(t *testing.T) {
		for _, board := range []game.Board{{Width: 0, Height: 5}, {Width: 1, Height: 1}, {Width: -3, Height: -3}} {
			_, err := NewEngine(me, board)
			require.ErrorIs(t, err, ErrInvalidBoard, "board %s", board)
		}
	})

	t.Run("starts awaiting the first turn", func(t *testing.T) {
		e := newTestEngine(t, 15, 15)
		mem := e.Memory()
		require.Equal(t, me, mem.Player)
		require.Equal(t, AwaitingFirstTurn, mem.Sweep.Stage)
		require.Empty(t, mem.Attacked)
		require.Empty(t, mem.Sweep.Visited)
	})
}

func TestFindMoveAttack(t *testing.T) {
	t.Run("attacks a weaker lighthouse with the minimum winning energy then resumes sweeping", func(t *testing.T) {
		e := newTestEngine(t, 15, 15)
		origin := game.Position{X: 0, Y: 0}

		action, err := e.FindMove(game.Turn{
			Position:    origin,
			Energy:      10,
			Lighthouses: []game.Lighthouse{{Position: origin, Owner: game.Unowned, Energy: 3}},
		})
		require.NoError(t, err)
		require.Equal(t, game.Attack(origin, 4), action)

		action, err = e.FindMove(game.Turn{
			Position:    origin,
			Energy:      6,
			Lighthouses: []game.Lighthouse{{Position: origin, Owner: me, Energy: 1}},
		})
		require.NoError(t, err)
		require.Equal(t, game.Move(game.Position{X: 1, Y: 0}), action, "Should resume the horizontal sweep")
	})

	t.Run("never attacks the same lighthouse twice", func(t *testing.T) {
		e := newTestEngine(t, 15, 15)
		turn := game.Turn{
			Position:    game.Position{X: 0, Y: 0},
			Energy:      100,
			Lighthouses: []game.Lighthouse{{Position: game.Position{X: 0, Y: 0}, Owner: 2, Energy: 5}},
		}

		first, err := e.FindMove(turn)
		require.NoError(t, err)
		require.Equal(t, game.AttackAction, first.Type)

		for i := 0; i < 3; i++ {
			next, err := e.FindMove(turn)
			require.NoError(t, err)
			require.Equal(t, game.MoveAction, next.Type)
		}
		require.True(t, e.Memory().HasAttacked(turn.Position))
	})

	t.Run("requires strictly more energy than the lighthouse", func(t *testing.T) {
		e := newTestEngine(t, 15, 15)
		action, err := e.FindMove(game.Turn{
			Position:    game.Position{X: 0, Y: 0},
			Energy:      5,
			Lighthouses: []game.Lighthouse{{Position: game.Position{X: 0, Y: 0}, Owner: game.Unowned, Energy: 5}},
		})
		require.NoError(t, err)
		require.Equal(t, game.MoveAction, action.Type)
		require.False(t, e.Memory().HasAttacked(game.Position{X: 0, Y: 0}), "A skipped attack should not be remembered")
	})

	t.Run("ignores lighthouses the player is not standing on", func(t *testing.T) {
		e := newTestEngine(t, 15, 15)
		action, err := e.FindMove(game.Turn{
			Position:    game.Position{X: 0, Y: 0},
			Energy:      50,
			Lighthouses: []game.Lighthouse{{Position: game.Position{X: 1, Y: 0}, Owner: game.Unowned}},
		})
		require.NoError(t, err)
		require.Equal(t, game.Move(game.Position{X: 1, Y: 0}), action)
	})

	t.Run("attacks mid-sweep without disturbing the pass", func(t *testing.T) {
		e := newTestEngine(t, 5, 5)
		walk(t, e, game.Position{X: 0, Y: 0}, 2)

		at := game.Position{X: 2, Y: 0}
		action, err := e.FindMove(game.Turn{
			Position:    at,
			Energy:      20,
			Lighthouses: []game.Lighthouse{{Position: at, Owner: 3, Energy: 7}},
		})
		require.NoError(t, err)
		require.Equal(t, game.Attack(at, 8), action)

		action, err = e.FindMove(game.Turn{Position: at, Energy: 12})
		require.NoError(t, err)
		require.Equal(t, game.Move(game.Position{X: 3, Y: 0}), action)
	})
}

func TestFindMoveMalformedTurn(t *testing.T) {
	tests := []struct {
		name string
		turn game.Turn
		err  error
	}{
		{"position off the board", game.Turn{Position: game.Position{X: 15, Y: 0}, Energy: 1}, ErrMalformedTurn},
		{"negative position", game.Turn{Position: game.Position{X: -1, Y: 0}, Energy: 1}, ErrMalformedTurn},
		{"negative energy", game.Turn{Position: game.Position{X: 0, Y: 0}, Energy: -1}, ErrMalformedTurn},
		{
			"lighthouse off the board",
			game.Turn{Position: game.Position{X: 0, Y: 0}, Lighthouses: []game.Lighthouse{{Position: game.Position{X: 3, Y: 99}}}},
			ErrMalformedTurn,
		},
		{"first turn away from a corner", game.Turn{Position: game.Position{X: 7, Y: 7}, Energy: 1}, ErrNotCorner},
		{"first turn on an edge", game.Turn{Position: game.Position{X: 0, Y: 7}, Energy: 1}, ErrNotCorner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 15, 15)
			before := e.Memory()

			_, err := e.FindMove(tt.turn)

			require.ErrorIs(t, err, tt.err)
			require.Equal(t, before, e.Memory(), "Memory should not change on a failed decision")
		})
	}

	t.Run("failed turn mid-game leaves memory unchanged", func(t *testing.T) {
		e := newTestEngine(t, 15, 15)
		walk(t, e, game.Position{X: 0, Y: 0}, 3)
		before := e.Memory()

		_, err := e.FindMove(game.Turn{Position: game.Position{X: 40, Y: 40}, Energy: 3})

		require.ErrorIs(t, err, ErrMalformedTurn)
		require.Equal(t, before, e.Memory())
	})

	t.Run("any cell is accepted after the first turn", func(t *testing.T) {
		e := newTestEngine(t, 15, 15)
		walk(t, e, game.Position{X: 0, Y: 0}, 1)

		action, err := e.FindMove(game.Turn{Position: game.Position{X: 7, Y: 7}, Energy: 3})

		require.NoError(t, err)
		require.Equal(t, game.Move(game.Position{X: 8, Y: 7}), action)
	})
}

func TestResize(t *testing.T) {
	t.Run("before the first turn", func(t *testing.T) {
		e := newTestEngine(t, 15, 15)
		require.NoError(t, e.Resize(game.NewBoard(4, 3)))
		require.Equal(t, game.NewBoard(4, 3), e.Board())

		_, err := e.FindMove(game.Turn{Position: game.Position{X: 3, Y: 2}})
		require.NoError(t, err, "Top-right corner of the resized board")
	})

	t.Run("rejects invalid dimensions", func(t *testing.T) {
		e := newTestEngine(t, 15, 15)
		require.ErrorIs(t, e.Resize(game.NewBoard(1, 1)), ErrInvalidBoard)
		require.Equal(t, game.NewBoard(15, 15), e.Board())
	})

	t.Run("after the sweep started", func(t *testing.T) {
		e := newTestEngine(t, 15, 15)
		walk(t, e, game.Position{X: 0, Y: 0}, 1)
		require.ErrorIs(t, e.Resize(game.NewBoard(4, 3)), ErrSweepStarted)
	})
}
