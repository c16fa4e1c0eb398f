package session

import (
	"testing"

	"github.com/milk9111/blockpush/config"
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
	"github.com/milk9111/blockpush/ecs/system"
	"github.com/stretchr/testify/require"
)

func holdRight() system.InputSource {
	return system.InputFunc(func() component.Action { return component.ActionRight })
}

func stepUntil(t *testing.T, s *Session, want Outcome, max int) {
	t.Helper()
	for range max {
		got, err := s.Step()
		require.NoError(t, err)
		if got == want {
			return
		}
		require.Equal(t, OutcomeNone, got)
	}
	t.Fatalf("no %s within %d ticks", want, max)
}

func playerX(t *testing.T, s *Session) float64 {
	t.Helper()
	p, ok := ecs.First(s.World, component.PlayerTagComponent.Kind())
	require.True(t, ok)
	return ecs.MustGet(s.World, p, component.TransformComponent.Kind()).Position[0]
}

func TestStepWithoutLevel(t *testing.T) {
	s := New(config.Default(), nil, nil)
	_, err := s.Step()
	require.Error(t, err)
	require.Error(t, s.Reload())
}

func TestLoadUnknownLevelKeepsWorld(t *testing.T) {
	s := New(config.Default(), nil, nil)
	require.NoError(t, s.Load("level1"))
	w := s.World
	require.Error(t, s.Load("nope"))
	require.Same(t, w, s.World)
	require.Equal(t, "level1", s.Level.Name)
}

func TestIdleLevelHasNoOutcome(t *testing.T) {
	s := New(config.Default(), nil, nil)
	require.NoError(t, s.Load("level2"))
	for range 120 {
		got, err := s.Step()
		require.NoError(t, err)
		require.Equal(t, OutcomeNone, got)
	}
	require.Equal(t, 125.0, playerX(t, s))
}

func TestWinAdvancesLevel(t *testing.T) {
	s := New(config.Default(), holdRight(), nil)
	require.NoError(t, s.Load("level1"))

	stepUntil(t, s, OutcomeWin, 600)
	require.Equal(t, "level2", s.Level.Name)
	require.Equal(t, 1, s.Wins)
	require.Equal(t, uint64(0), s.World.Tick())
}

func TestDeathReloadsLevel(t *testing.T) {
	s := New(config.Default(), holdRight(), nil)
	require.NoError(t, s.Load("level3"))

	stepUntil(t, s, OutcomeDeath, 600)
	require.Equal(t, "level3", s.Level.Name)
	require.Equal(t, 1, s.Deaths)
	require.Equal(t, 125.0, playerX(t, s))
}

func TestTuningFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Player.MoveImpulse = 333
	s := New(cfg, nil, nil)
	require.NoError(t, s.Load("level1"))

	p, _ := ecs.First(s.World, component.PlayerTagComponent.Kind())
	require.Equal(t, 333.0, ecs.MustGet(s.World, p, component.PlayerComponent.Kind()).MoveImpulse)
}
