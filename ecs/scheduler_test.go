package ecs

import (
	"testing"

	"github.com/milk9111/blockpush/ecs/component"
)

type recordSystem struct {
	name string
	log  *[]string
	emit GameEventKind
}

func (s recordSystem) Update(w *World) {
	*s.log = append(*s.log, s.name)
	if s.emit != "" {
		w.Events().PushGame(s.emit, 0)
	}
}

func TestSchedulerRunsInOrderAndKeepsEventsUntilNextTick(t *testing.T) {
	var order []string
	w := NewWorld()
	s := NewScheduler(
		recordSystem{name: "a", log: &order},
		nil,
		recordSystem{name: "b", log: &order, emit: GameEventDeath},
	)
	s.Add(recordSystem{name: "c", log: &order})

	s.Update(w, 1.0/60.0)
	if got := len(order); got != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("unexpected order %v", order)
	}
	if evts := w.Events().GameEvents(); len(evts) != 1 || evts[0].Kind != GameEventDeath {
		t.Fatalf("expected one death event after tick, got %v", evts)
	}
	if w.DeltaTime() != 1.0/60.0 {
		t.Fatalf("delta time not propagated: %v", w.DeltaTime())
	}

	s = NewScheduler(recordSystem{name: "quiet", log: &order})
	s.Update(w, -1)
	if evts := w.Events().GameEvents(); len(evts) != 0 {
		t.Fatalf("expected events flushed at the start of the next tick, got %v", evts)
	}
	if w.DeltaTime() != 0 {
		t.Fatalf("negative delta should clamp to 0, got %v", w.DeltaTime())
	}
	if w.Tick() != 2 {
		t.Fatalf("expected tick 2, got %d", w.Tick())
	}
}

func TestEntityHandlesAreGenerational(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !DestroyEntity(w, e1) {
		t.Fatalf("destroy failed")
	}
	if DestroyEntity(w, e1) {
		t.Fatalf("double destroy should fail")
	}

	e2 := CreateEntity(w)
	if e2.ID() != e1.ID() {
		t.Fatalf("expected slot reuse, got %d vs %d", e2.ID(), e1.ID())
	}
	if e2 == e1 {
		t.Fatalf("reused slot must carry a new generation")
	}
	if Has(w, e2, h.Kind()) {
		t.Fatalf("components must not leak into a reused slot")
	}
	if err := Add(w, e1, h.Kind(), intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
	if err := Add(w, e2, h.Kind(), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := Add(w, e2, component.ComponentKind[int]{}, intPtr(3)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

func TestFirstAndQueryOrder(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	if _, ok := First(w, k); ok {
		t.Fatalf("expected no entity in empty world")
	}

	ents := make([]Entity, 4)
	for i := range ents {
		ents[i] = CreateEntity(w)
	}
	for i := len(ents) - 1; i >= 1; i-- {
		if err := Add(w, ents[i], k, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	first, ok := First(w, k)
	if !ok || first != ents[1] {
		t.Fatalf("expected ents[1] first, got %v ok=%v", first, ok)
	}
	got := Query(w, k.ID())
	if len(got) != 3 || got[0] != ents[1] || got[1] != ents[2] || got[2] != ents[3] {
		t.Fatalf("expected query ordered by id, got %v", got)
	}
}

func TestMustGetPanicsOnMissingComponent(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	e := CreateEntity(w)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = MustGet(w, e, k)
}
