// Package debugserver exposes the running simulation over HTTP: prometheus
// metrics, JSON snapshots, a rendered frame and a websocket feed.
package debugserver

import (
	"fmt"
	"math"

	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
)

// Body is an immutable copy of one collider for the debug views. Positions
// are world units, y up.
type Body struct {
	ID     uint64  `json:"id"`
	Name   string  `json:"name,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Kind   string  `json:"kind"`
	Static bool    `json:"static"`
	Weight float64 `json:"weight,omitempty"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Flags  string  `json:"flags"`
	Color  string  `json:"color,omitempty"`
}

type Event struct {
	Kind   string `json:"kind"`
	Entity uint64 `json:"entity"`
}

type Snapshot struct {
	Tick   uint64  `json:"tick"`
	Level  string  `json:"level"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Bodies []Body  `json:"bodies"`
	Events []Event `json:"events,omitempty"`
}

// TakeSnapshot copies every entity with a Transform and Collider. It must be
// called from the simulation goroutine; the result is safe to share.
func TakeSnapshot(w *ecs.World, level string, staticThreshold float64) *Snapshot {
	s := &Snapshot{Tick: w.Tick(), Level: level}
	if e, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		b := ecs.MustGet(w, e, component.LevelBoundsComponent.Kind())
		s.Width, s.Height = b.Width, b.Height
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, t *component.Transform, c *component.Collider) {
		b := Body{
			ID:     uint64(e),
			X:      t.Position[0],
			Y:      t.Position[1],
			Z:      t.Position[2],
			Width:  c.Size[0],
			Height: c.Size[1],
			Kind:   c.Kind.String(),
			Static: c.IsStatic(staticThreshold),
			Flags:  c.Flags.String(),
		}
		// JSON has no infinity.
		if !math.IsInf(c.Weight, 0) {
			b.Weight = c.Weight
		}
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
			b.Name = n.Value
		}
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			b.VX, b.VY = v.Linear[0], v.Linear[1]
		}
		if r, ok := ecs.Get(w, e, component.RenderComponent.Kind()); ok {
			b.Color = fmt.Sprintf("#%02x%02x%02x", r.Color.R, r.Color.G, r.Color.B)
		}
		s.Bodies = append(s.Bodies, b)
	})

	for _, ge := range w.Events().GameEvents() {
		s.Events = append(s.Events, Event{Kind: string(ge.Kind), Entity: uint64(ge.Entity)})
	}
	return s
}
