package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"lighthouses/communication"
	"lighthouses/communication/server"
	"lighthouses/game"
	"lighthouses/utils"

	"github.com/rs/zerolog/log"
)

var (
	ErrGameFull  = errors.New("game already has a player")
	ErrNotJoined = errors.New("no player has joined")
	ErrNotReady  = errors.New("player did not report ready")
)

type Config struct {
	Board            game.Board
	Start            game.Position
	Lighthouses      []game.Position
	LighthouseEnergy int // Energy of every lighthouse at the start
	StartEnergy      int
	EnergyPerTurn    int // Energy the player gains at the start of each later turn
	Walls            []game.Position
}

// DefaultConfig is a 15x15 board with a lighthouse on the starting corner.
func DefaultConfig() Config {
	return Config{
		Board:            game.NewBoard(15, 15),
		Start:            game.Position{X: 0, Y: 0},
		Lighthouses:      []game.Position{{X: 0, Y: 0}, {X: 7, Y: 0}, {X: 14, Y: 3}, {X: 3, Y: 7}, {X: 11, Y: 11}},
		LighthouseEnergy: 3,
		StartEnergy:      10,
		EnergyPerTurn:    5,
	}
}

type lighthouse struct {
	owner       game.PlayerID
	energy      int
	connections []game.Position
}

// Result summarizes a finished local game.
type Result struct {
	Turns    int
	Invalid  int // Actions the rules rejected
	Failures int // Turns the bot could not answer
	Owned    int
	Links    int
	Energy   int
	Visited  int
}

// LocalEngine plays a single-player practice game in process and implements
// communication.Coordinator so a Player can join it directly.
type LocalEngine struct {
	cfg    Config
	mu     sync.Mutex
	player game.PlayerID
	name   string
	grid   [][]bool // Indexed [y][x], false on walls

	position    game.Position
	energy      int
	positions   []game.Position // Lighthouse positions, index matches lighthouses
	lighthouses []lighthouse
	keys        map[game.Position]bool
	visited     map[game.Position]bool
}

var _ communication.Coordinator = (*LocalEngine)(nil)

func NewLocalEngine(cfg Config) *LocalEngine {
	e := &LocalEngine{
		cfg:         cfg,
		player:      game.Unowned,
		position:    cfg.Start,
		energy:      cfg.StartEnergy,
		positions:   append([]game.Position(nil), cfg.Lighthouses...),
		lighthouses: make([]lighthouse, len(cfg.Lighthouses)),
		keys:        make(map[game.Position]bool),
		visited:     map[game.Position]bool{cfg.Start: true},
	}
	for i := range e.lighthouses {
		e.lighthouses[i] = lighthouse{owner: game.Unowned, energy: cfg.LighthouseEnergy}
	}
	e.grid = make([][]bool, cfg.Board.Height)
	for y := range e.grid {
		e.grid[y] = make([]bool, cfg.Board.Width)
		for x := range e.grid[y] {
			e.grid[y][x] = true
		}
	}
	for _, w := range cfg.Walls {
		if cfg.Board.Contains(w) {
			e.grid[w.Y][w.X] = false
		}
	}
	return e
}

// Join registers the single player of the game.
func (e *LocalEngine) Join(ctx context.Context, name, callbackAddress string) (game.PlayerID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player != game.Unowned {
		return 0, ErrGameFull
	}
	e.player = 1
	e.name = name
	log.Info().Msgf("player %q joined local game as %d", name, e.player)
	return e.player, nil
}

// Run sends the initial state and then plays turns until the limit or ctx ends.
func (e *LocalEngine) Run(ctx context.Context, bot server.TurnHandler, turns int) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player == game.Unowned {
		return Result{}, ErrNotJoined
	}

	ready, err := bot.ReceiveInitialState(e.initialState())
	if err != nil {
		return Result{}, fmt.Errorf("initial state: %w", err)
	}
	if !ready {
		return Result{}, ErrNotReady
	}
	log.Info().Msgf("starting %d turn local game for %q", turns, e.name)

	var result Result
	for turn := 1; turn <= turns; turn++ {
		if err := ctx.Err(); err != nil {
			return e.result(result), err
		}
		if turn > 1 {
			e.energy += e.cfg.EnergyPerTurn
		}
		if utils.FindIndex(e.positions, e.position) >= 0 {
			e.keys[e.position] = true
		}

		action, err := bot.ReceiveTurn(e.turn())
		result.Turns++
		if err != nil {
			log.Warn().Err(err).Msgf("turn %d failed", turn)
			result.Failures++
			continue
		}
		if err := e.apply(action); err != nil {
			log.Debug().Err(err).Msgf("turn %d: rejected %s", turn, action)
			result.Invalid++
		}
	}
	return e.result(result), nil
}

func (e *LocalEngine) initialState() game.InitialState {
	grid := make([][]bool, len(e.grid))
	for y, row := range e.grid {
		grid[y] = append([]bool(nil), row...)
	}
	return game.InitialState{
		Player:      e.player,
		PlayerCount: 1,
		Position:    e.position,
		Map:         grid,
		Lighthouses: append([]game.Position(nil), e.positions...),
	}
}

func (e *LocalEngine) turn() game.Turn {
	views := make([]game.Lighthouse, len(e.lighthouses))
	for i := range e.lighthouses {
		views[i] = e.view(i)
	}
	return game.Turn{Position: e.position, Energy: e.energy, Lighthouses: views}
}

func (e *LocalEngine) view(i int) game.Lighthouse {
	lh := e.lighthouses[i]
	return game.Lighthouse{
		Position:    e.positions[i],
		Owner:       lh.owner,
		Energy:      lh.energy,
		HaveKey:     e.keys[e.positions[i]],
		Connections: append([]game.Position(nil), lh.connections...),
	}
}

func (e *LocalEngine) apply(action game.Action) error {
	switch action.Type {
	case game.MoveAction:
		return e.move(action.Destination)
	case game.AttackAction:
		return e.attack(action.Destination, action.Energy)
	case game.ConnectAction:
		return e.connect(action.Destination)
	}
	return fmt.Errorf("unknown action %s", action.Type)
}

func (e *LocalEngine) move(dest game.Position) error {
	dx := utils.Abs(dest.X - e.position.X)
	dy := utils.Abs(dest.Y - e.position.Y)
	if dx > 1 || dy > 1 || dx+dy == 0 {
		return fmt.Errorf("illegal move: %s is not next to %s", dest, e.position)
	}
	if !e.cfg.Board.Contains(dest) {
		return fmt.Errorf("illegal move: %s is off the board", dest)
	}
	if !(game.InitialState{Map: e.grid}).Walkable(dest) {
		return fmt.Errorf("illegal move: %s is a wall", dest)
	}
	e.position = dest
	e.visited[dest] = true
	return nil
}

func (e *LocalEngine) attack(dest game.Position, energy int) error {
	if dest != e.position {
		return fmt.Errorf("illegal attack: not standing on %s", dest)
	}
	i := utils.FindIndex(e.positions, dest)
	if i < 0 {
		return fmt.Errorf("illegal attack: no lighthouse at %s", dest)
	}
	if energy < 0 || energy > e.energy {
		return fmt.Errorf("illegal attack: energy %d, have %d", energy, e.energy)
	}

	e.energy -= energy
	lh := &e.lighthouses[i]
	switch {
	case lh.owner == e.player:
		lh.energy += energy
	case energy > lh.energy:
		lh.owner = e.player
		lh.energy = energy - lh.energy
		e.unlink(dest)
	default:
		lh.energy -= energy
		if lh.energy == 0 {
			lh.owner = game.Unowned
			e.unlink(dest)
		}
	}
	return nil
}

func (e *LocalEngine) connect(dest game.Position) error {
	from := utils.FindIndex(e.positions, e.position)
	to := utils.FindIndex(e.positions, dest)
	switch {
	case from < 0 || to < 0 || from == to:
		return fmt.Errorf("illegal connect: %s to %s", e.position, dest)
	case e.lighthouses[from].owner != e.player || e.lighthouses[to].owner != e.player:
		return fmt.Errorf("illegal connect: both lighthouses must be owned")
	case !e.keys[dest]:
		return fmt.Errorf("illegal connect: no key for %s", dest)
	case e.view(from).ConnectedTo(dest):
		return fmt.Errorf("illegal connect: already connected to %s", dest)
	}
	e.lighthouses[from].connections = append(e.lighthouses[from].connections, dest)
	e.lighthouses[to].connections = append(e.lighthouses[to].connections, e.position)
	delete(e.keys, dest)
	return nil
}

// unlink removes every connection touching p.
func (e *LocalEngine) unlink(p game.Position) {
	for i := range e.lighthouses {
		if e.positions[i] == p {
			e.lighthouses[i].connections = nil
			continue
		}
		if j := utils.FindIndex(e.lighthouses[i].connections, p); j >= 0 {
			c := e.lighthouses[i].connections
			e.lighthouses[i].connections = append(c[:j:j], c[j+1:]...)
		}
	}
}

func (e *LocalEngine) result(r Result) Result {
	links := 0
	for _, lh := range e.lighthouses {
		if lh.owner == e.player {
			r.Owned++
		}
		links += len(lh.connections)
	}
	r.Links = links / 2
	r.Energy = e.energy
	r.Visited = len(e.visited)
	return r
}
