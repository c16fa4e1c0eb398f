package component

// DefaultGravity is subtracted from Velocity.Linear.Y once per tick.
const DefaultGravity = 100.0

// Gravity pulls an entity with a Velocity downwards.
type Gravity struct {
	Value float64
}

var GravityComponent = NewComponent[Gravity]()
