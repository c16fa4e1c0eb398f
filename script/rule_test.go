package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuleOpen(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		state DoorState
		want  bool
	}{
		{"all pressed", "open := remaining == 0", DoorState{Total: 2, Remaining: 0}, true},
		{"one missing", "open := remaining == 0", DoorState{Total: 2, Remaining: 1}, false},
		{"any pressed", "open := pressed > 0", DoorState{Total: 3, Remaining: 2}, true},
		{"inverted", "open := pressed == 0", DoorState{Total: 1, Remaining: 0}, false},
		{"stdlib import", "text := import(\"text\")\nopen := text.contains(\"door\", \"oo\") && pressed > 0", DoorState{Total: 1, Remaining: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := CompileRule(tt.src)
			require.NoError(t, err)
			got, err := rule.Open(tt.state)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRuleReusable(t *testing.T) {
	rule, err := CompileRule("open := pressed >= 2")
	require.NoError(t, err)

	got, err := rule.Open(DoorState{Total: 2, Remaining: 1})
	require.NoError(t, err)
	require.False(t, got)

	got, err = rule.Open(DoorState{Total: 2, Remaining: 0})
	require.NoError(t, err)
	require.True(t, got)
}

func TestRuleErrors(t *testing.T) {
	_, err := CompileRule("   ")
	require.Error(t, err)

	_, err = CompileRule("open := (")
	require.Error(t, err)

	rule, err := CompileRule("x := 1")
	require.NoError(t, err)
	_, err = rule.Open(DoorState{Total: 1})
	require.True(t, errors.Is(err, ErrNoResult))
}

func TestNilRuleFallsBackToCounter(t *testing.T) {
	var rule *Rule
	got, err := rule.Open(DoorState{Total: 1, Remaining: 0})
	require.NoError(t, err)
	require.True(t, got)
}
