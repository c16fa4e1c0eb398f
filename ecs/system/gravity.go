package system

import (
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
)

// GravitySystem pulls every entity with Gravity and Velocity down by a fixed
// amount each tick. It runs before collision so a falling body is tested
// against the ground in the tick it would reach it.
type GravitySystem struct{}

func NewGravitySystem() *GravitySystem { return &GravitySystem{} }

func (s *GravitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.GravityComponent.Kind(), func(_ ecs.Entity, v *component.Velocity, g *component.Gravity) {
		v.Linear[1] -= g.Value
	})
}
