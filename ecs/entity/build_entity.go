package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
	"github.com/milk9111/blockpush/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":     addPlayerTag,
	"cell_tower_tag": addCellTowerTag,
	"exit_tag":       addExitTag,
	"transform":      addTransform,
	"collider":       addCollider,
	"velocity":       addVelocity,
	"gravity":        addGravity,
	"player":         addPlayer,
	"player_input":   addPlayerInput,
	"slider":         addSlider,
	"button":         addButton,
	"render":         addRender,
}

// Slider reads the collider it guards, so collider must come first.
var componentBuildOrder = []string{
	"player_tag",
	"cell_tower_tag",
	"exit_tag",
	"transform",
	"collider",
	"velocity",
	"gravity",
	"player",
	"player_input",
	"slider",
	"button",
	"render",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	if spec.Name != "" {
		_ = ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name})
	}
	return e, nil
}

// BuildEntityAt builds a prefab and places it at x, y, keeping the prefab's z.
func BuildEntityAt(w *ecs.World, prefabPath string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

func SetEntityPosition(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position[0] = x
	t.Position[1] = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCellTowerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CellTowerTagComponent.Kind(), &component.CellTowerTag{})
}

func addExitTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ExitTagComponent.Kind(), &component.ExitTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
	})
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("collider size must be positive, got %vx%v", spec.Width, spec.Height)
	}
	if spec.Kind == component.KindMovable && spec.Weight <= 0 {
		return fmt.Errorf("movable collider needs a positive weight, got %v", spec.Weight)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Size:   mgl64.Vec2{spec.Width, spec.Height},
		Kind:   spec.Kind,
		Weight: spec.Weight,
	})
}

type velocitySpec = prefabs.VelocityComponentSpec

func addVelocity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[velocitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode velocity spec: %w", err)
	}
	v := component.NewVelocity()
	v.Linear = mgl64.Vec3{spec.X, spec.Y, 0}
	if spec.Drag != nil {
		v.Drag = mgl64.Vec3{*spec.Drag, *spec.Drag, *spec.Drag}
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), v)
}

type gravitySpec = prefabs.GravityComponentSpec

func addGravity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity spec: %w", err)
	}
	g := &component.Gravity{Value: component.DefaultGravity}
	if spec.Value != nil {
		g.Value = *spec.Value
	}
	return ecs.Add(w, e, component.GravityComponent.Kind(), g)
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveImpulse: spec.MoveImpulse,
		JumpImpulse: spec.JumpImpulse,
	})
}

func addPlayerInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerInputComponent.Kind(), &component.PlayerInput{})
}

type sliderSpec = prefabs.SliderComponentSpec

func addSlider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[sliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode slider spec: %w", err)
	}
	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		return fmt.Errorf("slider needs a collider")
	}
	if spec.Change <= 0 {
		spec.Change = 1
	}
	return ecs.Add(w, e, component.SliderComponent.Kind(), &component.Slider{
		MaxExtent:      spec.MaxExtent,
		Change:         spec.Change,
		BlockingKind:   c.Kind,
		BlockingWeight: c.Weight,
	})
}

type buttonSpec = prefabs.ButtonComponentSpec

func addButton(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[buttonSpec](raw)
	if err != nil {
		return fmt.Errorf("decode button spec: %w", err)
	}
	return ecs.Add(w, e, component.ButtonComponent.Kind(), &component.Button{Door: spec.Door})
}

type renderSpec = prefabs.RenderComponentSpec

func addRender(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render spec: %w", err)
	}
	r := &component.Render{}
	if c, ok := spec.Color.Color.(color.NRGBA); ok {
		r.Color = c
	}
	return ecs.Add(w, e, component.RenderComponent.Kind(), r)
}
