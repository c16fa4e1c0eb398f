package system

import (
	"log"

	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
	"github.com/milk9111/blockpush/physics"
	"github.com/milk9111/blockpush/script"
)

// ButtonSystem turns button contact flags into door state. It runs after
// collision and only reads Collider.Flags.
type ButtonSystem struct {
	rules   map[string]*script.Rule
	bad     map[string]bool
	unknown map[string]bool
}

func NewButtonSystem() *ButtonSystem {
	return &ButtonSystem{
		rules:   make(map[string]*script.Rule),
		bad:     make(map[string]bool),
		unknown: make(map[string]bool),
	}
}

func (s *ButtonSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	regEnt, ok := ecs.First(w, component.DoorRegistryComponent.Kind())
	if !ok {
		return
	}
	reg := ecs.MustGet(w, regEnt, component.DoorRegistryComponent.Kind())

	ecs.ForEach2(w, component.ButtonComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, btn *component.Button, c *component.Collider) {
		pressed := c.Flags.Touching(physics.SideTop)
		if pressed == btn.Pressed {
			return
		}
		door, ok := reg.Doors[btn.Door]
		if !ok {
			if !s.unknown[btn.Door] {
				log.Printf("button system: button refers to unknown door %q", btn.Door)
				s.unknown[btn.Door] = true
			}
			btn.Pressed = pressed
			return
		}
		if pressed {
			door.Remaining--
		} else {
			door.Remaining++
		}
		btn.Pressed = pressed
	})

	ecs.ForEach(w, component.SliderComponent.Kind(), func(_ ecs.Entity, slider *component.Slider) {
		door, ok := reg.Doors[slider.Door]
		if !ok {
			slider.Activated = false
			return
		}
		slider.Activated = s.open(slider.Door, door)
	})
}

func (s *ButtonSystem) open(id string, door *component.Door) bool {
	if door.Rule == "" || s.bad[door.Rule] {
		return door.Open()
	}
	rule, ok := s.rules[door.Rule]
	if !ok {
		var err error
		rule, err = script.CompileRule(door.Rule)
		if err != nil {
			log.Printf("button system: door %q: %v", id, err)
			s.bad[door.Rule] = true
			return door.Open()
		}
		s.rules[door.Rule] = rule
	}
	open, err := rule.Open(script.DoorState{Total: door.Buttons, Remaining: door.Remaining})
	if err != nil {
		log.Printf("button system: door %q: %v", id, err)
		return door.Open()
	}
	return open
}
