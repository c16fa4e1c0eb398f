package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the centre of an entity in world space. Z only orders drawing.
type Transform struct {
	Position mgl64.Vec3
}

// XY returns the position on the collision plane.
func (t *Transform) XY() mgl64.Vec2 {
	return mgl64.Vec2{t.Position[0], t.Position[1]}
}

var TransformComponent = NewComponent[Transform]()
