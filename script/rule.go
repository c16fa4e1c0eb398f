// Package script evaluates the tengo expressions levels use to decide when a
// door opens.
package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var ErrNoResult = errors.New("script: rule did not set open")

// DoorState is what a rule can see about its door.
type DoorState struct {
	Total     int
	Remaining int
}

// Rule is a compiled door rule. The source reads pressed, total and remaining
// and must assign a bool to open, e.g. `open := pressed >= 2`.
type Rule struct {
	src      string
	compiled *tengo.Compiled
}

func CompileRule(src string) (*Rule, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, errors.New("script: empty rule")
	}

	s := tengo.NewScript([]byte(src))
	_ = s.Add("pressed", 0)
	_ = s.Add("total", 0)
	_ = s.Add("remaining", 0)
	s.SetImports(stdlib.GetModuleMap("math", "text"))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile rule: %w", err)
	}
	return &Rule{src: src, compiled: compiled}, nil
}

func (r *Rule) Source() string {
	if r == nil {
		return ""
	}
	return r.src
}

// Open runs the rule against state.
func (r *Rule) Open(state DoorState) (bool, error) {
	if r == nil {
		return state.Remaining <= 0, nil
	}
	if err := r.compiled.Set("pressed", state.Total-state.Remaining); err != nil {
		return false, err
	}
	if err := r.compiled.Set("total", state.Total); err != nil {
		return false, err
	}
	if err := r.compiled.Set("remaining", state.Remaining); err != nil {
		return false, err
	}
	if err := r.compiled.Run(); err != nil {
		return false, fmt.Errorf("script: run rule: %w", err)
	}
	if !r.compiled.IsDefined("open") {
		return false, ErrNoResult
	}
	return r.compiled.Get("open").Bool(), nil
}
