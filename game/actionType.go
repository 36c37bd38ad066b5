package game

import "fmt"

// ActionType represents the type of action a player can perform.
type ActionType int

const (
	MoveAction ActionType = iota
	AttackAction
	ConnectAction
)

var actionNames = [...]string{
	MoveAction:    "move",
	AttackAction:  "attack",
	ConnectAction: "connect",
}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionNames) {
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
	return actionNames[t]
}

func (t ActionType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(actionNames) {
		return nil, fmt.Errorf("unknown action type %d", int(t))
	}
	return []byte(actionNames[t]), nil
}

func (t *ActionType) UnmarshalText(text []byte) error {
	for i, name := range actionNames {
		if name == string(text) {
			*t = ActionType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action type %q", text)
}

// Action represents the single action a player takes on its turn.
// Energy is only meaningful for attacks.
type Action struct {
	Type        ActionType
	Destination Position
	Energy      int
}

func Move(destination Position) Action {
	return Action{Type: MoveAction, Destination: destination}
}

func Attack(destination Position, energy int) Action {
	return Action{Type: AttackAction, Destination: destination, Energy: energy}
}

func Connect(destination Position) Action {
	return Action{Type: ConnectAction, Destination: destination}
}

func (a Action) String() string {
	if a.Type == AttackAction {
		return fmt.Sprintf("%s(%s, %d)", a.Type, a.Destination, a.Energy)
	}
	return fmt.Sprintf("%s(%s)", a.Type, a.Destination)
}
