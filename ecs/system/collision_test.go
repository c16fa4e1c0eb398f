package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
	"github.com/milk9111/blockpush/physics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const tickDT = 1.0 / 60.0

func spawn(t *testing.T, w *ecs.World, x, y float64, c *component.Collider) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{x, y, 0}}))
	require.NoError(t, ecs.Add(w, e, component.ColliderComponent.Kind(), c))
	return e
}

func addVelocity(t *testing.T, w *ecs.World, e ecs.Entity, linear mgl64.Vec2, gravity bool) *component.Velocity {
	t.Helper()
	v := component.NewVelocity()
	v.Linear = mgl64.Vec3{linear[0], linear[1], 0}
	require.NoError(t, ecs.Add(w, e, component.VelocityComponent.Kind(), v))
	if gravity {
		require.NoError(t, ecs.Add(w, e, component.GravityComponent.Kind(), &component.Gravity{Value: component.DefaultGravity}))
	}
	return v
}

func spawnFloor(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	return spawn(t, w, 0, 0, component.Static(mgl64.Vec2{960, 96}))
}

func spawnPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := spawn(t, w, x, y, component.Movable(mgl64.Vec2{60, 96}, 5))
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	return e
}

func position(w *ecs.World, e ecs.Entity) mgl64.Vec3 {
	return ecs.MustGet(w, e, component.TransformComponent.Kind()).Position
}

func flags(w *ecs.World, e ecs.Entity) physics.ContactFlags {
	return ecs.MustGet(w, e, component.ColliderComponent.Kind()).Flags
}

func physicsPipeline() *ecs.Scheduler {
	return ecs.NewScheduler(NewGravitySystem(), NewCollisionSystem())
}

func TestPlayerLandsOnFloor(t *testing.T) {
	w := ecs.NewWorld()
	spawnFloor(t, w)
	player := spawnPlayer(t, w, 0, 200)
	v := addVelocity(t, w, player, mgl64.Vec2{}, true)

	sched := physicsPipeline()
	for range 120 {
		sched.Update(w, tickDT)
	}

	require.Equal(t, 96.0, position(w, player)[1])
	require.Equal(t, 0.0, position(w, player)[0])
	require.InDelta(t, 0, v.Linear[1], 1e-9)
	require.True(t, flags(w, player).Touching(physics.SideBottom))
	require.True(t, flags(w, player).Locked(physics.SideBottom))
}

func TestRestingBodyStaysPut(t *testing.T) {
	w := ecs.NewWorld()
	spawnFloor(t, w)
	player := spawnPlayer(t, w, 0, 96)
	addVelocity(t, w, player, mgl64.Vec2{}, true)

	sched := physicsPipeline()
	for i := range 30 {
		sched.Update(w, tickDT)
		require.Equal(t, 96.0, position(w, player)[1], "tick %d", i)
		require.True(t, flags(w, player).Touching(physics.SideBottom), "tick %d", i)
	}
}

func TestLighterBodyYields(t *testing.T) {
	for _, lightFirst := range []bool{true, false} {
		w := ecs.NewWorld()
		var light, heavy ecs.Entity
		if lightFirst {
			light = spawn(t, w, 0, 0, component.Movable(mgl64.Vec2{50, 50}, 1))
			heavy = spawn(t, w, 45, 0, component.Movable(mgl64.Vec2{50, 50}, 5))
		} else {
			heavy = spawn(t, w, 45, 0, component.Movable(mgl64.Vec2{50, 50}, 5))
			light = spawn(t, w, 0, 0, component.Movable(mgl64.Vec2{50, 50}, 1))
		}
		addVelocity(t, w, light, mgl64.Vec2{}, false)
		addVelocity(t, w, heavy, mgl64.Vec2{}, false)

		ecs.NewScheduler(NewCollisionSystem()).Update(w, tickDT)

		require.Equal(t, -5.0, position(w, light)[0], "light first: %v", lightFirst)
		require.Equal(t, 45.0, position(w, heavy)[0], "light first: %v", lightFirst)
	}
}

func TestEqualWeightsSplitOverlap(t *testing.T) {
	w := ecs.NewWorld()
	left := spawn(t, w, -1, 0, component.Movable(mgl64.Vec2{50, 50}, 1))
	right := spawn(t, w, 41, 0, component.Movable(mgl64.Vec2{50, 50}, 1))
	vl := addVelocity(t, w, left, mgl64.Vec2{60, 0}, false)
	vr := addVelocity(t, w, right, mgl64.Vec2{-60, 0}, false)
	vl.Drag = mgl64.Vec3{}
	vr.Drag = mgl64.Vec3{}

	ecs.NewScheduler(NewCollisionSystem()).Update(w, tickDT)

	require.Equal(t, -5.0, position(w, left)[0])
	require.Equal(t, 45.0, position(w, right)[0])
	require.InDelta(t, -240, vl.Linear[0], 1e-6)
	require.InDelta(t, 240, vr.Linear[0], 1e-6)
	require.True(t, flags(w, left).Touching(physics.SideRight))
	require.True(t, flags(w, right).Touching(physics.SideLeft))
}

func TestStackedBodiesSettleWithoutPenetration(t *testing.T) {
	w := ecs.NewWorld()
	floor := spawnFloor(t, w)
	wall := spawn(t, w, 300, 148, component.Static(mgl64.Vec2{50, 200}))
	lower := spawn(t, w, 0, 200, component.Movable(mgl64.Vec2{50, 50}, 1))
	upper := spawn(t, w, 0, 260, component.Movable(mgl64.Vec2{50, 50}, 1))
	player := spawnPlayer(t, w, 200, 300)
	for _, e := range []ecs.Entity{lower, upper, player} {
		addVelocity(t, w, e, mgl64.Vec2{}, true)
	}

	sched := physicsPipeline()
	for range 180 {
		sched.Update(w, tickDT)
	}

	require.Equal(t, 73.0, position(w, lower)[1])
	require.Equal(t, 123.0, position(w, upper)[1])
	require.Equal(t, 96.0, position(w, player)[1])

	box := func(e ecs.Entity) (mgl64.Vec2, mgl64.Vec2) {
		p := position(w, e)
		return mgl64.Vec2{p[0], p[1]}, ecs.MustGet(w, e, component.ColliderComponent.Kind()).Size
	}
	bodies := []ecs.Entity{lower, upper, player}
	for _, m := range bodies {
		mp, ms := box(m)
		for _, o := range append([]ecs.Entity{floor, wall}, bodies...) {
			if o == m {
				continue
			}
			op, os := box(o)
			_, hit := physics.Collide(mp, ms, op, os)
			require.False(t, hit, "%v still overlaps %v", m, o)
		}
	}
	require.True(t, flags(w, upper).Locked(physics.SideBottom))
}

func TestBlockedVelocityMatchesDisplacement(t *testing.T) {
	w := ecs.NewWorld()
	spawnFloor(t, w)
	spawn(t, w, 100, 148, component.Static(mgl64.Vec2{50, 200}))

	free := spawn(t, w, -200, 73, component.Movable(mgl64.Vec2{50, 50}, 1))
	blocked := spawn(t, w, 49, 73, component.Movable(mgl64.Vec2{50, 50}, 1))
	vf := addVelocity(t, w, free, mgl64.Vec2{120, 0}, false)
	vb := addVelocity(t, w, blocked, mgl64.Vec2{120, 0}, false)
	vf.Drag = mgl64.Vec3{}
	vb.Drag = mgl64.Vec3{}

	ecs.NewScheduler(NewCollisionSystem()).Update(w, tickDT)

	require.Equal(t, -198.0, position(w, free)[0])
	require.InDelta(t, 2, vf.Linear[0]*tickDT, 1e-9)

	require.Equal(t, 50.0, position(w, blocked)[0])
	require.InDelta(t, 1, vb.Linear[0]*tickDT, 1e-9)
	require.True(t, flags(w, blocked).Locked(physics.SideRight))
	require.Equal(t, 73.0, position(w, blocked)[1])
}

func TestZeroDeltaSkipsVelocityDerivation(t *testing.T) {
	w := ecs.NewWorld()
	spawnFloor(t, w)
	box := spawn(t, w, 0, 63, component.Movable(mgl64.Vec2{50, 50}, 1))
	v := addVelocity(t, w, box, mgl64.Vec2{10, -10}, false)

	ecs.NewScheduler(NewCollisionSystem()).Update(w, 0)

	require.Equal(t, 73.0, position(w, box)[1])
	require.False(t, math.IsNaN(v.Linear[0]) || math.IsNaN(v.Linear[1]))
	require.Equal(t, mgl64.Vec3{10, -10, 0}, v.Linear)
}

func TestDragAppliedAfterResolution(t *testing.T) {
	w := ecs.NewWorld()
	box := spawn(t, w, 0, 0, component.Movable(mgl64.Vec2{50, 50}, 1))
	v := addVelocity(t, w, box, mgl64.Vec2{600, 0}, false)
	v.Drag = mgl64.Vec3{0.5, 0.5, 0.5}

	ecs.NewScheduler(NewCollisionSystem()).Update(w, 0.1)

	require.Equal(t, 60.0, position(w, box)[0])
	require.InDelta(t, 600-600*0.5*0.1, v.Linear[0], 1e-9)
}

func TestDeathEventRaisedOncePerTick(t *testing.T) {
	w := ecs.NewWorld()
	spawnFloor(t, w)
	player := spawnPlayer(t, w, 0, 96)
	addVelocity(t, w, player, mgl64.Vec2{}, false)
	spawn(t, w, 0, 60, component.Death(mgl64.Vec2{40, 25}))
	spawn(t, w, 20, 60, component.Death(mgl64.Vec2{40, 25}))

	box := spawn(t, w, 300, 73, component.Movable(mgl64.Vec2{50, 50}, 1))
	addVelocity(t, w, box, mgl64.Vec2{}, false)
	spawn(t, w, 300, 60, component.Death(mgl64.Vec2{40, 25}))

	metrics := NewMetrics(prometheus.NewRegistry())
	collision := NewCollisionSystem()
	collision.Metrics = metrics
	sched := ecs.NewScheduler(collision)
	sched.Update(w, tickDT)

	events := w.Events().GameEvents()
	require.Len(t, events, 1)
	require.Equal(t, ecs.GameEventDeath, events[0].Kind)
	require.Equal(t, player, events[0].Entity)
	require.Equal(t, 96.0, position(w, player)[1])
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.events.WithLabelValues("death")))

	sched.Update(w, tickDT)
	require.Len(t, w.Events().GameEvents(), 1)
	require.Equal(t, 2.0, testutil.ToFloat64(metrics.events.WithLabelValues("death")))
}

func TestWinAndSensorContacts(t *testing.T) {
	w := ecs.NewWorld()
	spawnFloor(t, w)
	player := spawnPlayer(t, w, 0, 96)
	addVelocity(t, w, player, mgl64.Vec2{}, false)
	exit := spawn(t, w, 0, 96, component.Win(mgl64.Vec2{50, 50}))
	plate := spawn(t, w, 0, 53, component.Sensor(mgl64.Vec2{50, 10}))

	ecs.NewScheduler(NewCollisionSystem()).Update(w, tickDT)

	events := w.Events().GameEvents()
	require.Len(t, events, 1)
	require.Equal(t, ecs.GameEventWin, events[0].Kind)
	require.Equal(t, player, events[0].Entity)
	require.True(t, flags(w, plate).Touching(physics.SideTop))
	require.True(t, flags(w, exit).Empty())
	require.Equal(t, 96.0, position(w, player)[1])
}

func TestLockPropagatesThroughStack(t *testing.T) {
	w := ecs.NewWorld()
	spawnFloor(t, w)
	box := spawn(t, w, 0, 73, component.Movable(mgl64.Vec2{50, 50}, 1))
	player := spawnPlayer(t, w, 0, 146)
	addVelocity(t, w, box, mgl64.Vec2{}, true)
	addVelocity(t, w, player, mgl64.Vec2{}, true)

	physicsPipeline().Update(w, tickDT)

	require.Equal(t, 73.0, position(w, box)[1])
	require.Equal(t, 146.0, position(w, player)[1])
	require.True(t, flags(w, box).Locked(physics.SideBottom))
	require.True(t, flags(w, player).Locked(physics.SideBottom))
}

func TestInertCollidersIgnored(t *testing.T) {
	w := ecs.NewWorld()
	box := spawn(t, w, 0, 0, component.Movable(mgl64.Vec2{50, 50}, 1))
	addVelocity(t, w, box, mgl64.Vec2{}, false)
	spawn(t, w, 10, 0, &component.Collider{Size: mgl64.Vec2{50, 50}, Kind: component.KindNone})

	ecs.NewScheduler(NewCollisionSystem()).Update(w, tickDT)

	require.Equal(t, mgl64.Vec3{0, 0, 0}, position(w, box))
	require.True(t, flags(w, box).Empty())
}

func TestLightBodyBetweenHeavierBodiesSettles(t *testing.T) {
	for _, tc := range []struct {
		name         string
		blockerMoves bool
	}{
		{name: "door without velocity"},
		{name: "heavier crate with velocity", blockerMoves: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			floor := spawnFloor(t, w)
			player := spawnPlayer(t, w, 0, 96)
			addVelocity(t, w, player, mgl64.Vec2{300, 0}, true)
			box := spawn(t, w, 56, 73, component.Movable(mgl64.Vec2{50, 50}, 1))
			addVelocity(t, w, box, mgl64.Vec2{}, true)
			blocker := spawn(t, w, 107, 73, component.Movable(mgl64.Vec2{50, 50}, 900))
			if tc.blockerMoves {
				ecs.MustGet(w, blocker, component.ColliderComponent.Kind()).Weight = 3
				addVelocity(t, w, blocker, mgl64.Vec2{}, true)
			}

			sched := physicsPipeline()
			require.NotPanics(t, func() { sched.Update(w, tickDT) })

			require.Equal(t, 107.0, position(w, blocker)[0])
			require.Equal(t, 57.0, position(w, box)[0])
			require.Equal(t, 2.0, position(w, player)[0])
			require.True(t, flags(w, box).Locked(physics.SideRight))
			require.True(t, flags(w, player).Locked(physics.SideRight))

			bodies := []ecs.Entity{floor, player, box, blocker}
			for i, m := range bodies {
				for _, o := range bodies[i+1:] {
					mp, op := position(w, m), position(w, o)
					ms := ecs.MustGet(w, m, component.ColliderComponent.Kind()).Size
					os := ecs.MustGet(w, o, component.ColliderComponent.Kind()).Size
					_, hit := physics.Collide(mgl64.Vec2{mp[0], mp[1]}, ms, mgl64.Vec2{op[0], op[1]}, os)
					require.False(t, hit, "%v still overlaps %v", m, o)
				}
			}

			require.NotPanics(t, func() {
				for range 30 {
					sched.Update(w, tickDT)
				}
			})
			require.Equal(t, 107.0, position(w, blocker)[0])
		})
	}
}

func TestIterationCapPanics(t *testing.T) {
	w := ecs.NewWorld()
	light := spawn(t, w, 0, 0, component.Movable(mgl64.Vec2{50, 50}, 1))
	heavy := spawn(t, w, 45, 0, component.Movable(mgl64.Vec2{50, 50}, 5))
	addVelocity(t, w, light, mgl64.Vec2{}, false)
	addVelocity(t, w, heavy, mgl64.Vec2{}, false)

	collision := NewCollisionSystem()
	collision.MaxIterations = 1
	sched := ecs.NewScheduler(collision)

	require.PanicsWithValue(t, "collision system: iteration cap exceeded", func() {
		sched.Update(w, tickDT)
	})
}
