package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"lighthouses/game"
)

type TurnMetric struct {
	Step        int
	Position    game.Position
	Energy      int
	Lighthouses int
	Action      game.Action
	Duration    time.Duration
	Err         error
}

type SessionMetric struct {
	Player    game.PlayerID
	StartTime time.Time
	Duration  time.Duration
	Turns     int
	Attacks   int
	Failures  int
}

type Collector interface {
	Start(player game.PlayerID)
	AddTurn(metric TurnMetric)
	Turns() []TurnMetric
	Complete() SessionMetric
}

type collector struct {
	player    game.PlayerID
	startTime time.Time
	attacks   atomic.Int32
	failures  atomic.Int32
	mu        sync.Mutex
	turns     []TurnMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(player game.PlayerID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.player = player
	m.startTime = time.Now()
}

func (m *collector) AddTurn(metric TurnMetric) {
	if metric.Err != nil {
		m.failures.Add(1)
	} else if metric.Action.Type == game.AttackAction {
		m.attacks.Add(1)
	}
	m.mu.Lock()
	m.turns = append(m.turns, metric)
	m.mu.Unlock()
}

func (m *collector) Turns() []TurnMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TurnMetric(nil), m.turns...)
}

func (m *collector) Complete() SessionMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	return SessionMetric{
		Player:    m.player,
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Turns:     len(m.turns) - int(m.failures.Load()),
		Attacks:   int(m.attacks.Load()),
		Failures:  int(m.failures.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(player game.PlayerID) {}
func (m *dummyCollector) AddTurn(metric TurnMetric)  {}
func (m *dummyCollector) Turns() []TurnMetric        { return nil }
func (m *dummyCollector) Complete() SessionMetric    { return SessionMetric{} }
