package component

// Action is a set of player inputs held during one tick.
type Action uint8

const (
	ActionLeft Action = 1 << iota
	ActionRight
	ActionJump
)

// Has reports whether every bit of o is set in a.
func (a Action) Has(o Action) bool {
	return a&o == o
}

// PlayerInput delays player inputs by Latency ticks. Queue[0] is applied on
// the next tick; new inputs are merged into Queue[Latency].
type PlayerInput struct {
	Queue   []Action
	Latency int
}

// Push merges held actions into the slot Latency ticks ahead.
func (in *PlayerInput) Push(a Action) {
	latency := max(in.Latency, 0)
	for len(in.Queue) < latency+1 {
		in.Queue = append(in.Queue, 0)
	}
	in.Queue[latency] |= a
}

// Pop removes and returns the actions due this tick.
func (in *PlayerInput) Pop() Action {
	if len(in.Queue) == 0 {
		return 0
	}
	a := in.Queue[0]
	in.Queue = in.Queue[1:]
	return a
}

var PlayerInputComponent = NewComponent[PlayerInput]()
