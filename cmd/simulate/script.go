package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/blockpush/ecs/component"
)

// inputScript replays a fixed list of per-tick actions, then holds nothing.
//
// Steps are comma separated. Each step is a set of letters (L, R, J, or _ for
// no input) with an optional repeat count: "R*30,RJ,_*10".
type inputScript struct {
	ticks []component.Action
	next  int
}

func parseScript(src string) (*inputScript, error) {
	s := &inputScript{}
	src = strings.TrimSpace(src)
	if src == "" {
		return s, nil
	}
	for _, step := range strings.Split(src, ",") {
		step = strings.TrimSpace(step)
		keys, count := step, 1
		if i := strings.IndexByte(step, '*'); i >= 0 {
			n, err := strconv.Atoi(step[i+1:])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("script: bad repeat in %q", step)
			}
			keys, count = step[:i], n
		}
		var a component.Action
		for _, r := range strings.ToUpper(keys) {
			switch r {
			case 'L':
				a |= component.ActionLeft
			case 'R':
				a |= component.ActionRight
			case 'J':
				a |= component.ActionJump
			case '_':
			default:
				return nil, fmt.Errorf("script: unknown action %q in %q", r, step)
			}
		}
		if keys == "" {
			return nil, fmt.Errorf("script: empty step")
		}
		for range count {
			s.ticks = append(s.ticks, a)
		}
	}
	return s, nil
}

func (s *inputScript) Actions() component.Action {
	if s.next >= len(s.ticks) {
		return 0
	}
	a := s.ticks[s.next]
	s.next++
	return a
}

func (s *inputScript) Len() int { return len(s.ticks) }
