package system

import (
	"log"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/blockpush/common"
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
	"github.com/milk9111/blockpush/physics"
)

// CollisionSystem resolves overlaps between colliders one axis at a time,
// Y first, then integrates and applies drag. Colliders at or above
// StaticThreshold go into a grid rebuilt every pass; lighter movable
// colliders are checked against each other directly. A pass that takes more
// than MaxIterations body visits panics; 0 means max(16, n*n) for n bodies.
type CollisionSystem struct {
	StaticThreshold float64
	BlockSize       float64
	CellMultiplier  int
	MaxIterations   int
	Metrics         *Metrics

	bodies   []*body
	movables []int
	grid     *physics.Grid[int]
	fired    map[firedEvent]struct{}
}

type body struct {
	e      ecs.Entity
	t      *component.Transform
	c      *component.Collider
	v      *component.Velocity
	static bool
	player bool
	flags  physics.ContactFlags
	start  float64
	moved  bool
}

type firedEvent struct {
	kind ecs.GameEventKind
	e    ecs.Entity
}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{
		StaticThreshold: common.StaticThreshold,
		BlockSize:       common.BlockSize,
		CellMultiplier:  common.CellMultiplier,
	}
}

func (b *body) pos() mgl64.Vec2 {
	return b.t.XY()
}

func (b *body) size() mgl64.Vec2 {
	if b.c == nil {
		return mgl64.Vec2{}
	}
	return b.c.Size
}

func (b *body) weight() float64 {
	if b.c == nil {
		return 0
	}
	return b.c.EffectiveWeight()
}

// locked treats statics as locked on every side.
func (b *body) locked(s physics.Side) bool {
	return b.static || b.flags.Locked(s)
}

func (b *body) move(d mgl64.Vec2) bool {
	if d[0] == 0 && d[1] == 0 {
		return false
	}
	b.t.Position[0] += d[0]
	b.t.Position[1] += d[1]
	b.moved = true
	return true
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.Metrics.observeTick(func() {
		s.collect(w)
		s.resolveAxis(w, physics.AxisY)
		s.resolveAxis(w, physics.AxisX)
		s.integrate(w.DeltaTime())
	})
}

func (s *CollisionSystem) collect(w *ecs.World) {
	player, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())

	s.bodies = s.bodies[:0]
	s.fired = make(map[firedEvent]struct{})
	for _, e := range ecs.Query(w, component.TransformComponent.Kind().ID()) {
		c, hasCollider := ecs.Get(w, e, component.ColliderComponent.Kind())
		v, hasVelocity := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !hasCollider && !hasVelocity {
			continue
		}
		b := &body{
			e:      e,
			t:      ecs.MustGet(w, e, component.TransformComponent.Kind()),
			v:      v,
			player: hasPlayer && e == player,
		}
		if hasCollider {
			c.Flags = physics.ContactFlags{}
			b.c = c
			b.static = c.IsStatic(s.StaticThreshold)
		}
		s.bodies = append(s.bodies, b)
	}
	s.Metrics.setBodies(len(s.bodies))
}

// solid reports whether b takes part in collision detection at all.
func solid(b *body) bool {
	return b.c != nil && b.c.Kind != component.KindNone
}

func (s *CollisionSystem) buildGrid(w *ecs.World) {
	bounds := component.LevelBounds{Width: 16 * s.BlockSize, Height: 16 * s.BlockSize}
	if e, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		bounds = *ecs.MustGet(w, e, component.LevelBoundsComponent.Kind())
	}
	s.grid = physics.NewGrid[int](mgl64.Vec2{bounds.MinX, bounds.MinY}, bounds.Width, bounds.Height, s.BlockSize, s.CellMultiplier)

	s.movables = s.movables[:0]
	var statics []int
	for i, b := range s.bodies {
		if !solid(b) {
			continue
		}
		if b.static {
			statics = append(statics, i)
			continue
		}
		if b.c.Kind == component.KindMovable {
			s.movables = append(s.movables, i)
		}
	}
	s.grid.Fill(statics, func(i int) (mgl64.Vec2, mgl64.Vec2) {
		return s.bodies[i].pos(), s.bodies[i].size()
	})
}

func (s *CollisionSystem) resolveAxis(w *ecs.World, axis physics.Axis) {
	dt := w.DeltaTime()
	a := int(axis)

	for _, b := range s.bodies {
		b.moved = false
		if b.v == nil {
			continue
		}
		b.start = b.t.Position[a]
		b.t.Position[a] = physics.Step(b.t.Position[a], b.v.Linear[a], dt)
	}

	s.buildGrid(w)

	var working []int
	for _, i := range s.movables {
		if s.bodies[i].v != nil {
			working = append(working, i)
		}
	}

	limit := s.MaxIterations
	if limit <= 0 {
		limit = max(16, len(s.bodies)*len(s.bodies))
	}
	iterations := 0
	for len(working) > 0 {
		again := make(map[int]struct{})
		for _, i := range working {
			iterations++
			if iterations > limit {
				log.Printf("collision system: %s pass did not settle after %d iterations (%d bodies)", axis, iterations, len(s.bodies))
				panic("collision system: iteration cap exceeded")
			}
			s.resolveBody(w, axis, i, again)
		}
		working = working[:0]
		for i := range again {
			working = append(working, i)
		}
		slices.Sort(working)
	}
	s.Metrics.observeIterations(axis, iterations)

	for _, b := range s.bodies {
		if b.v != nil && dt > 0 {
			b.v.Linear[a] = (b.t.Position[a] - b.start) / dt
		}
		if b.c != nil {
			b.c.Flags = b.c.Flags.Union(b.flags)
		}
	}
}

func (s *CollisionSystem) candidates(i int) []int {
	self := s.bodies[i]
	out := s.grid.Possibilities(self.pos(), self.size())
	for _, j := range s.movables {
		if j != i {
			out = append(out, j)
		}
	}
	return out
}

func (s *CollisionSystem) resolveBody(w *ecs.World, axis physics.Axis, i int, again map[int]struct{}) {
	a := s.bodies[i]
	for _, j := range s.candidates(i) {
		b := s.bodies[j]
		side, ok := physics.Collide(a.pos(), a.size(), b.pos(), b.size())
		if !ok {
			continue
		}

		switch b.c.Kind {
		case component.KindDeath:
			if a.player {
				s.emit(w, ecs.GameEventDeath, a.e)
			}
		case component.KindWin:
			s.emit(w, ecs.GameEventWin, a.e)
		case component.KindSensor:
			b.flags = b.flags.WithTouch(physics.SideTop)
		case component.KindMovable:
			if side.Axis() != axis || (side == physics.SideInside && axis != physics.AxisY) {
				continue
			}
			movedA, movedB := s.push(a, b, side)
			if movedA {
				again[i] = struct{}{}
			}
			if movedB {
				again[j] = struct{}{}
			}
		}
	}
}

// push separates a from b, which overlap on side of b. f is the side of a in
// contact with b and of is its opposite.
func (s *CollisionSystem) push(a, b *body, side physics.Side) (movedA, movedB bool) {
	f := physics.ContactSide(side)
	of := f.Opposite()
	force := physics.PushForce(side, a.pos(), a.size(), b.pos(), b.size())
	wa, wb := a.weight(), b.weight()

	switch {
	case wa < wb && !a.locked(of):
		movedA = a.move(force)
		a.flags = a.flags.WithTouch(f)
		if !s.yields(b, f) {
			a.flags = a.flags.WithLock(f)
		}
		b.flags = b.flags.WithoutTouch(of)

	case a.locked(of) && !b.locked(f):
		movedB = b.move(force.Mul(-1))
		b.flags = b.flags.WithLock(of)
		a.flags = a.flags.WithTouch(f)

	case wb < wa && !b.locked(f):
		movedB = b.move(force.Mul(-1))
		b.flags = b.flags.WithTouch(of)
		if a.locked(of) {
			b.flags = b.flags.WithLock(of)
		}
		a.flags = a.flags.WithoutTouch(f)

	case b.locked(f) && !a.locked(of):
		movedA = a.move(force)
		a.flags = a.flags.WithLock(f)
		b.flags = b.flags.WithTouch(of)

	case !a.locked(of) && !b.locked(f):
		share := mgl64.Vec2{math.Round(force[0] / 2), math.Round(force[1] / 2)}
		movedA = a.move(share)
		movedB = b.move(share.Sub(force))
		a.flags = a.flags.WithTouch(f)
		b.flags = b.flags.WithTouch(of)

	default:
		a.flags = a.flags.WithTouch(f)
		b.flags = b.flags.WithTouch(of)
	}
	return movedA, movedB
}

// yields reports whether b can still be pushed away from a body pressing on
// its side f this pass. A body without velocity never is, and neither is one
// that has not moved and touches nothing heavier than itself.
func (s *CollisionSystem) yields(b *body, f physics.Side) bool {
	if b.locked(f) || b.v == nil {
		return false
	}
	if b.moved {
		return true
	}
	wb := b.weight()
	for _, k := range s.movables {
		o := s.bodies[k]
		if o != b && o.weight() > wb && physics.Touch(b.pos(), b.size(), o.pos(), o.size()) {
			return true
		}
	}
	return false
}

func (s *CollisionSystem) emit(w *ecs.World, kind ecs.GameEventKind, e ecs.Entity) {
	key := firedEvent{kind: kind, e: e}
	if _, ok := s.fired[key]; ok {
		return
	}
	s.fired[key] = struct{}{}
	w.Events().PushGame(kind, e)
	s.Metrics.countEvent(kind)
}

// integrate finishes the tick: X and Y were already stepped and resolved per
// axis, so only Z moves here. Drag is then taken off the resolved velocity.
func (s *CollisionSystem) integrate(dt float64) {
	for _, b := range s.bodies {
		if b.v == nil {
			continue
		}
		b.t.Position[2] += b.v.Linear[2] * dt
		v := b.v.Linear
		for axis := range 3 {
			b.v.Linear[axis] = v[axis] - v[axis]*b.v.Drag[axis]*dt
		}
	}
}
