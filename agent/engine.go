package agent

import (
	"errors"
	"fmt"

	"lighthouses/game"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidBoard  = errors.New("board must have at least two cells")
	ErrMalformedTurn = errors.New("malformed turn")
	ErrNotCorner     = errors.New("first turn must start on a board corner")
	ErrSweepStarted  = errors.New("board cannot change once the sweep has started")
)

// Engine decides one action per turn for a single game session.
// It is not safe for concurrent use; callers serialize access per session.
type Engine struct {
	board  game.Board
	nav    navigation
	memory Memory
}

var _ Agent = (*Engine)(nil)

func NewEngine(player game.PlayerID, board game.Board) (*Engine, error) {
	if err := checkBoard(board); err != nil {
		return nil, err
	}
	return &Engine{
		board:  board,
		nav:    newNavigation(),
		memory: newMemory(player),
	}, nil
}

func checkBoard(board game.Board) error {
	if board.Width < 1 || board.Height < 1 || board.Cells() < 2 {
		return fmt.Errorf("%w: got %s", ErrInvalidBoard, board)
	}
	return nil
}

// Resize replaces the board dimensions. Only allowed before the first turn.
func (e *Engine) Resize(board game.Board) error {
	if e.memory.Sweep.Stage != AwaitingFirstTurn {
		return ErrSweepStarted
	}
	if err := checkBoard(board); err != nil {
		return err
	}
	e.board = board
	return nil
}

func (e *Engine) Board() game.Board {
	return e.board
}

// Memory returns a copy of the session memory.
func (e *Engine) Memory() Memory {
	return e.memory.Copy()
}

// FindMove decides the action for this turn. On error the session memory is left untouched.
func (e *Engine) FindMove(turn game.Turn) (game.Action, error) {
	if err := e.validate(turn); err != nil {
		return game.Action{}, err
	}

	sweep := &e.memory.Sweep
	if sweep.Stage == AwaitingFirstTurn {
		corner, _ := e.board.Corner(turn.Position)
		sweep.begin(corner)
		log.Debug().Msgf("sweep starts at %s corner heading %s, rising %s", corner, sweep.Heading, sweep.Rise)
	}
	stage := sweep.Stage
	sweep.visit(turn.Position, e.board)
	if sweep.Stage != stage {
		log.Debug().Msgf("board covered after %d completions, now %s", sweep.Completions, sweep.Stage)
	}

	if lh, ok := turn.LighthouseAt(turn.Position); ok && lh.Energy < turn.Energy && !e.memory.HasAttacked(lh.Position) {
		e.memory.Attacked[lh.Position] = struct{}{}
		return game.Attack(turn.Position, lh.Energy+1), nil
	}

	return game.Move(sweep.next(turn.Position, e.board, e.nav)), nil
}

func (e *Engine) validate(turn game.Turn) error {
	if !e.board.Contains(turn.Position) {
		return fmt.Errorf("%w: position %s outside %s board", ErrMalformedTurn, turn.Position, e.board)
	}
	if turn.Energy < 0 {
		return fmt.Errorf("%w: negative energy %d", ErrMalformedTurn, turn.Energy)
	}
	for _, lh := range turn.Lighthouses {
		if !e.board.Contains(lh.Position) {
			return fmt.Errorf("%w: lighthouse %s outside %s board", ErrMalformedTurn, lh.Position, e.board)
		}
	}
	if e.memory.Sweep.Stage == AwaitingFirstTurn {
		if _, ok := e.board.Corner(turn.Position); !ok {
			return fmt.Errorf("%w: got %s", ErrNotCorner, turn.Position)
		}
	}
	return nil
}
