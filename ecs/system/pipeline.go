package system

import "github.com/milk9111/blockpush/ecs"

// NewPipeline returns the per-tick system order: input, latency, gravity,
// sliders, collision, buttons. collision may be nil to use the defaults.
func NewPipeline(source InputSource, collision *CollisionSystem) *ecs.Scheduler {
	if collision == nil {
		collision = NewCollisionSystem()
	}
	return ecs.NewScheduler(
		NewPlayerInputSystem(source),
		NewLatencySystem(),
		NewGravitySystem(),
		NewSliderSystem(),
		collision,
		NewButtonSystem(),
	)
}
