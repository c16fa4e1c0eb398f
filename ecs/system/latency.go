package system

import (
	"math"

	"github.com/milk9111/blockpush/common"
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
)

// LatencySystem sets each player's input latency to the distance to the
// nearest cell tower, in whole blocks. Without towers there is no latency.
type LatencySystem struct {
	BlockSize float64
}

func NewLatencySystem() *LatencySystem {
	return &LatencySystem{BlockSize: common.BlockSize}
}

func (s *LatencySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	towers := ecs.Query(w, component.CellTowerTagComponent.Kind().ID(), component.TransformComponent.Kind().ID())
	ecs.ForEach2(w, component.PlayerInputComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, in *component.PlayerInput, t *component.Transform) {
		if len(towers) == 0 {
			in.Latency = 0
			return
		}
		shortest := math.MaxFloat64
		for _, tower := range towers {
			tt := ecs.MustGet(w, tower, component.TransformComponent.Kind())
			shortest = min(shortest, tt.Position.Sub(t.Position).Len())
		}
		in.Latency = int(shortest / s.BlockSize)
	})
}
