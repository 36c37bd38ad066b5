package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lighthouses/agent"
	"lighthouses/communication"
	"lighthouses/game"
	"lighthouses/meta"
	"lighthouses/metrics"

	"github.com/rs/zerolog/log"
)

type Option func(p *Player)

func WithBoard(board game.Board) Option {
	return func(p *Player) {
		p.board = board
	}
}

func WithRetryInterval(interval time.Duration) Option {
	return func(p *Player) {
		if interval > 0 {
			p.retryInterval = interval
		}
	}
}

func WithJoinTimeout(timeout time.Duration) Option {
	return func(p *Player) {
		if timeout > 0 {
			p.joinTimeout = timeout
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(p *Player) {
		if collector != nil {
			p.metrics = collector
		}
	}
}

// Player is one bot's session with a coordinator: it joins the game and then
// answers the coordinator's initial state and turn calls.
type Player struct {
	Name    string
	Address string // Callback address the coordinator calls back on

	coordinator   communication.Coordinator
	board         game.Board
	retryInterval time.Duration
	joinTimeout   time.Duration
	metrics       metrics.Collector

	mu      sync.Mutex // Serializes every access to the engine's session memory
	id      game.PlayerID
	engine  *agent.Engine
	initial *game.InitialState
	turns   int
}

// NewPlayer creates a new Player instance.
func NewPlayer(name, address string, coordinator communication.Coordinator, options ...Option) *Player {
	p := &Player{ // Default values
		Name:          name,
		Address:       address,
		coordinator:   coordinator,
		board:         game.NewBoard(meta.BOARD_WIDTH, meta.BOARD_HEIGHT),
		retryInterval: meta.JOIN_RETRY_INTERVAL,
		joinTimeout:   meta.JOIN_TIMEOUT,
		metrics:       metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Join blocks until the coordinator accepts the player, retrying at a fixed
// interval for as long as ctx allows.
func (p *Player) Join(ctx context.Context) (game.PlayerID, error) {
	for {
		attemptCtx, cancel := context.WithTimeout(ctx, p.joinTimeout)
		id, err := p.coordinator.Join(attemptCtx, p.Name, p.Address)
		cancel()
		if err == nil {
			if err := p.start(id); err != nil {
				return 0, err
			}
			log.Info().Msgf("joined game with ID %d", id)
			return id, nil
		}
		log.Warn().Err(err).Msg("could not join game")

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(p.retryInterval):
		}
	}
}

func (p *Player) start(id game.PlayerID) error {
	engine, err := agent.NewEngine(id, p.board)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.id = id
	p.engine = engine
	p.turns = 0
	p.metrics.Start(id)
	if p.initial != nil {
		p.adoptBoard(*p.initial)
	}
	return nil
}

func (p *Player) ID() game.PlayerID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

// ReceiveInitialState keeps the board snapshot for diagnostics and adopts its
// dimensions when it carries a map. A snapshot that arrives while the join
// reply is still in flight is held and applied once the session starts.
func (p *Player) ReceiveInitialState(state game.InitialState) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.initial = &state
	if p.engine == nil {
		log.Debug().Msg("holding initial state until join completes")
		return true, nil
	}
	p.adoptBoard(state)
	return true, nil
}

func (p *Player) adoptBoard(state game.InitialState) {
	board, ok := state.Board()
	if !ok || board == p.engine.Board() {
		return
	}
	if err := p.engine.Resize(board); err != nil {
		log.Warn().Err(err).Msgf("keeping %s board, initial state describes %s", p.engine.Board(), board)
		return
	}
	log.Info().Msgf("board is %s", board)
}

func (p *Player) InitialState() (game.InitialState, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initial == nil {
		return game.InitialState{}, false
	}
	return *p.initial, true
}

// ReceiveTurn decides the action for this turn.
func (p *Player) ReceiveTurn(turn game.Turn) (game.Action, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.engine == nil {
		return game.Action{}, communication.ErrNotReady
	}

	start := time.Now()
	step := p.turns + 1
	log.Info().Msgf("processing turn: %d", step)

	action, err := p.engine.FindMove(turn)
	p.metrics.AddTurn(metrics.TurnMetric{
		Step:        step,
		Position:    turn.Position,
		Energy:      turn.Energy,
		Lighthouses: len(turn.Lighthouses),
		Action:      action,
		Duration:    time.Since(start),
		Err:         err,
	})
	if err != nil {
		return game.Action{}, fmt.Errorf("turn %d: %w", step, err)
	}
	p.turns = step
	log.Debug().Msgf("turn %d: %s", step, action)
	return action, nil
}

// Turns returns the number of turns answered so far.
func (p *Player) Turns() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.turns
}
