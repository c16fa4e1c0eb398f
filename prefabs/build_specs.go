package prefabs

import (
	"github.com/milk9111/blockpush/ecs/component"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// ColliderComponentSpec describes a collider. Statics use `weight: .inf`.
type ColliderComponentSpec struct {
	Width  float64                `yaml:"width"`
	Height float64                `yaml:"height"`
	Kind   component.ColliderKind `yaml:"kind"`
	Weight float64                `yaml:"weight"`
}

type VelocityComponentSpec struct {
	X    float64  `yaml:"x"`
	Y    float64  `yaml:"y"`
	Drag *float64 `yaml:"drag"`
}

type GravityComponentSpec struct {
	Value *float64 `yaml:"value"`
}

type PlayerComponentSpec struct {
	MoveImpulse float64 `yaml:"move_impulse"`
	JumpImpulse float64 `yaml:"jump_impulse"`
}

type SliderComponentSpec struct {
	MaxExtent float64 `yaml:"max_extent"`
	Change    float64 `yaml:"change"`
}

type ButtonComponentSpec struct {
	Door string `yaml:"door"`
}

type RenderComponentSpec struct {
	Color YAMLColor `yaml:"color"`
}
