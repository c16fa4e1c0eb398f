package system

import (
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
	"github.com/milk9111/blockpush/physics"
)

// InputSource reports the actions held this tick.
type InputSource interface {
	Actions() component.Action
}

// InputFunc adapts a function to InputSource.
type InputFunc func() component.Action

func (f InputFunc) Actions() component.Action { return f() }

// PlayerInputSystem queues the held actions behind the player's latency and
// applies the actions that come due as velocity impulses.
type PlayerInputSystem struct {
	Source InputSource
}

func NewPlayerInputSystem(source InputSource) *PlayerInputSystem {
	return &PlayerInputSystem{Source: source}
}

func (s *PlayerInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerInputComponent.Kind(), component.PlayerComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, in *component.PlayerInput, p *component.Player, v *component.Velocity) {
		if s.Source != nil {
			in.Push(s.Source.Actions())
		}
		actions := in.Pop()
		if actions.Has(component.ActionLeft) {
			v.Linear[0] -= p.MoveImpulse
		}
		if actions.Has(component.ActionRight) {
			v.Linear[0] += p.MoveImpulse
		}
		if actions.Has(component.ActionJump) && grounded(w, e) {
			v.Linear[1] += p.JumpImpulse
		}
	})
}

// grounded reads last tick's flags; collision clears them later this tick.
func grounded(w *ecs.World, e ecs.Entity) bool {
	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	return ok && c.Flags.Touching(physics.SideBottom)
}
