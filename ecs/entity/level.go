package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/blockpush/common"
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
	"github.com/milk9111/blockpush/levels"
	"github.com/milk9111/blockpush/prefabs"
)

// TileCenter converts a tile coordinate (row 0 at the top) into the world
// position of the tile's centre. The level's lower-left corner is the origin.
func TileCenter(lvl *levels.Level, x, y int) mgl64.Vec2 {
	return mgl64.Vec2{
		common.BlockSize*float64(x) + common.BlockSize/2,
		common.BlockSize*float64(lvl.Height-1-y) + common.BlockSize/2,
	}
}

// LoadLevelToWorld spawns every tile of lvl from its prefab, plus the level
// bounds and door registry singletons.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) error {
	if w == nil || lvl == nil {
		return fmt.Errorf("load level: world and level are required")
	}

	boundsEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width) * common.BlockSize,
		Height: float64(lvl.Height) * common.BlockSize,
	}); err != nil {
		return err
	}

	reg := &component.DoorRegistry{}
	for _, def := range lvl.Doors {
		door := reg.Door(def.ID)
		door.Rule = def.Rule
		if def.Script != "" {
			src, err := prefabs.LoadScript(def.Script)
			if err != nil {
				return fmt.Errorf("load level %s: door %q: %w", lvl.Name, def.ID, err)
			}
			door.Rule = string(src)
		}
	}
	regEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, regEntity, component.DoorRegistryComponent.Kind(), reg); err != nil {
		return err
	}

	for _, layer := range lvl.Layers {
		if layer.Name == levels.BackgroundLayer {
			continue
		}
		for y := 0; y < lvl.Height; y++ {
			for x := 0; x < lvl.Width; x++ {
				prefab := levels.PrefabFor(layer.Data[y*lvl.Width+x])
				if prefab == "" {
					continue
				}
				pos := TileCenter(lvl, x, y)
				e, err := BuildEntityAt(w, prefab, pos[0], pos[1])
				if err != nil {
					return fmt.Errorf("load level %s: tile %d,%d: %w", lvl.Name, x, y, err)
				}
				wireDoor(w, e, reg, lvl.DoorAt(x, y))
			}
		}
	}

	return nil
}

func wireDoor(w *ecs.World, e ecs.Entity, reg *component.DoorRegistry, id string) {
	if btn, ok := ecs.Get(w, e, component.ButtonComponent.Kind()); ok {
		if btn.Door == "" {
			btn.Door = id
		}
		door := reg.Door(btn.Door)
		door.Buttons++
		door.Remaining++
	}
	if slider, ok := ecs.Get(w, e, component.SliderComponent.Kind()); ok {
		if slider.Door == "" {
			slider.Door = id
		}
		door := reg.Door(slider.Door)
		if door.Slider == 0 {
			door.Slider = uint64(e)
		}
	}
}

// Tuning overrides prefab values after a level is loaded. Zero fields keep
// the prefab's value.
type Tuning struct {
	MoveImpulse float64
	JumpImpulse float64
	Gravity     float64
}

func ApplyTuning(w *ecs.World, t Tuning) {
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(_ ecs.Entity, p *component.Player) {
		if t.MoveImpulse != 0 {
			p.MoveImpulse = t.MoveImpulse
		}
		if t.JumpImpulse != 0 {
			p.JumpImpulse = t.JumpImpulse
		}
	})
	if t.Gravity != 0 {
		ecs.ForEach(w, component.GravityComponent.Kind(), func(_ ecs.Entity, g *component.Gravity) {
			g.Value = t.Gravity
		})
	}
}
