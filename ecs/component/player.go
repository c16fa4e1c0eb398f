package component

// Player holds movement tuning. Impulses are velocity changes per tick.
type Player struct {
	MoveImpulse float64
	JumpImpulse float64
}

var PlayerComponent = NewComponent[Player]()
