package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventTypeGame tags events carrying a GameEvent.
const EventTypeGame = "game"

// GameEventKind identifies gameplay outcomes raised by the collision pass.
type GameEventKind string

const (
	GameEventDeath GameEventKind = "death"
	GameEventWin   GameEventKind = "win"
)

// GameEvent is emitted when an entity touches a death or win collider.
type GameEvent struct {
	Kind   GameEventKind
	Entity Entity
}

// EventQueue is a simple FIFO queue. Events pushed during a tick stay
// readable until the next tick starts.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// PushGame adds a GameEvent.
func (q *EventQueue) PushGame(kind GameEventKind, e Entity) {
	q.Push(Event{Type: EventTypeGame, Data: GameEvent{Kind: kind, Entity: e}})
}

// Items returns the pending events without consuming them.
func (q *EventQueue) Items() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// GameEvents returns the pending gameplay events.
func (q *EventQueue) GameEvents() []GameEvent {
	if q == nil {
		return nil
	}
	var out []GameEvent
	for _, evt := range q.items {
		if ge, ok := evt.Data.(GameEvent); ok && evt.Type == EventTypeGame {
			out = append(out, ge)
		}
	}
	return out
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
