package component

import "github.com/go-gl/mathgl/mgl64"

// DefaultDrag is the per-axis damping coefficient of a fresh Velocity.
const DefaultDrag = 0.95

// Velocity stores linear velocity in units per second and per-axis drag.
type Velocity struct {
	Linear mgl64.Vec3
	Drag   mgl64.Vec3
}

// NewVelocity returns a resting velocity with default drag.
func NewVelocity() *Velocity {
	return &Velocity{Drag: mgl64.Vec3{DefaultDrag, DefaultDrag, DefaultDrag}}
}

var VelocityComponent = NewComponent[Velocity]()
