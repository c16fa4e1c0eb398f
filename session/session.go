// Package session owns the running level: it loads levels into a fresh
// world, steps the pipeline at the configured tick rate and reacts to the
// death and win events the collision pass raises.
package session

import (
	"fmt"
	"log"

	"github.com/milk9111/blockpush/config"
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/entity"
	"github.com/milk9111/blockpush/ecs/system"
	"github.com/milk9111/blockpush/levels"
)

type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeDeath means the player died and the level was reloaded.
	OutcomeDeath
	// OutcomeWin means the level was won and the next one loaded.
	OutcomeWin
	// OutcomeFinished means the last level was won. The world is left as is.
	OutcomeFinished
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDeath:
		return "death"
	case OutcomeWin:
		return "win"
	case OutcomeFinished:
		return "finished"
	default:
		return "none"
	}
}

type Session struct {
	World *ecs.World
	Level *levels.Level

	cfg     config.Config
	input   system.InputSource
	metrics *system.Metrics
	sched   *ecs.Scheduler

	Deaths int
	Wins   int
}

// New creates a session. Nothing is loaded until Load is called. input and
// metrics may be nil.
func New(cfg config.Config, input system.InputSource, metrics *system.Metrics) *Session {
	return &Session{cfg: cfg, input: input, metrics: metrics}
}

// Load replaces the world with a freshly spawned copy of the named level.
// On error the previous world is kept.
func (s *Session) Load(name string) error {
	lvl, err := levels.LoadLevelFromFS(name)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	entity.ApplyTuning(w, entity.Tuning{
		MoveImpulse: s.cfg.Player.MoveImpulse,
		JumpImpulse: s.cfg.Player.JumpImpulse,
		Gravity:     s.cfg.Physics.Gravity,
	})

	collision := system.NewCollisionSystem()
	collision.StaticThreshold = s.cfg.Physics.StaticThreshold
	collision.CellMultiplier = s.cfg.Physics.CellMultiplier
	collision.Metrics = s.metrics

	s.World = w
	s.Level = lvl
	s.sched = system.NewPipeline(s.input, collision)
	log.Printf("session: loaded %s (%dx%d)", lvl.Name, lvl.Width, lvl.Height)
	return nil
}

// Reload loads the current level again, e.g. after its files changed.
func (s *Session) Reload() error {
	if s.Level == nil {
		return fmt.Errorf("session: no level loaded")
	}
	return s.Load(s.Level.Name)
}

// Step runs one fixed tick. Death takes precedence over a win raised in the
// same tick.
func (s *Session) Step() (Outcome, error) {
	if s.World == nil {
		return OutcomeNone, fmt.Errorf("session: no level loaded")
	}
	s.sched.Update(s.World, s.cfg.DeltaTime())

	died, won := false, false
	for _, ev := range s.World.Events().GameEvents() {
		switch ev.Kind {
		case ecs.GameEventDeath:
			died = true
		case ecs.GameEventWin:
			won = true
		}
	}

	switch {
	case died:
		s.Deaths++
		log.Printf("session: died on %s at tick %d", s.Level.Name, s.World.Tick())
		return OutcomeDeath, s.Reload()
	case won:
		s.Wins++
		log.Printf("session: won %s at tick %d", s.Level.Name, s.World.Tick())
		if s.Level.Next == "" {
			return OutcomeFinished, nil
		}
		return OutcomeWin, s.Load(s.Level.Next)
	}
	return OutcomeNone, nil
}
