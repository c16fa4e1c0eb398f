package system

import (
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
)

// SliderSystem retracts activated doors into the floor and raises them back
// when deactivated. It runs before collision so a door that starts closing
// pushes anything standing in its way.
type SliderSystem struct{}

func NewSliderSystem() *SliderSystem { return &SliderSystem{} }

func (s *SliderSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.SliderComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, slider *component.Slider, c *component.Collider, t *component.Transform) {
		if slider.Activated {
			if c.Kind != component.KindNone {
				slider.BlockingKind = c.Kind
				slider.BlockingWeight = c.Weight
				c.Kind = component.KindNone
			}
			step := min(slider.Change, slider.MaxExtent-slider.Extent, c.Size[1])
			if step > 0 {
				c.Size[1] -= step
				t.Position[1] -= step / 2
				slider.Extent += step
			}
			return
		}

		if c.Kind == component.KindNone {
			c.Kind = slider.BlockingKind
			c.Weight = slider.BlockingWeight
		}
		step := min(slider.Change, slider.Extent)
		if step > 0 {
			c.Size[1] += step
			t.Position[1] += step / 2
			slider.Extent -= step
		}
	})
}
