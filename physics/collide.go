package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Collide tests two centred boxes. When they overlap it returns the side of b
// that a hit, choosing the axis with the shallower penetration; ties go to x.
// An axis on which a neither enters from below nor from above b reports
// Inside with infinite depth, so it never wins over a real side.
func Collide(aPos, aSize, bPos, bSize mgl64.Vec2) (Side, bool) {
	aMin := aPos.Sub(aSize.Mul(0.5))
	aMax := aPos.Add(aSize.Mul(0.5))
	bMin := bPos.Sub(bSize.Mul(0.5))
	bMax := bPos.Add(bSize.Mul(0.5))

	if !(aMin[0] < bMax[0] && aMax[0] > bMin[0] && aMin[1] < bMax[1] && aMax[1] > bMin[1]) {
		return 0, false
	}

	xSide, xDepth := SideInside, math.Inf(-1)
	if aMin[0] < bMin[0] && aMax[0] > bMin[0] && aMax[0] < bMax[0] {
		xSide, xDepth = SideLeft, bMin[0]-aMax[0]
	} else if aMin[0] > bMin[0] && aMin[0] < bMax[0] && aMax[0] > bMax[0] {
		xSide, xDepth = SideRight, aMin[0]-bMax[0]
	}

	ySide, yDepth := SideInside, math.Inf(-1)
	if aMin[1] < bMin[1] && aMax[1] > bMin[1] && aMax[1] < bMax[1] {
		ySide, yDepth = SideBottom, bMin[1]-aMax[1]
	} else if aMin[1] > bMin[1] && aMin[1] < bMax[1] && aMax[1] > bMax[1] {
		ySide, yDepth = SideTop, aMin[1]-bMax[1]
	}

	if math.Abs(yDepth) < math.Abs(xDepth) {
		return ySide, true
	}
	return xSide, true
}

// Touch reports whether two centred boxes overlap or share an edge.
func Touch(aPos, aSize, bPos, bSize mgl64.Vec2) bool {
	d := aPos.Sub(bPos)
	half := aSize.Add(bSize).Mul(0.5)
	return math.Abs(d[0]) <= half[0] && math.Abs(d[1]) <= half[1]
}

// PushForce returns the displacement that moves a out of b along the axis of
// side so that their edges touch, rounded to whole units. Inside pushes a up.
func PushForce(side Side, aPos, aSize, bPos, bSize mgl64.Vec2) mgl64.Vec2 {
	half := aSize.Add(bSize).Mul(0.5)
	switch side {
	case SideTop, SideInside:
		return mgl64.Vec2{0, math.Round(bPos[1] + half[1] - aPos[1])}
	case SideBottom:
		return mgl64.Vec2{0, math.Round(bPos[1] - half[1] - aPos[1])}
	case SideRight:
		return mgl64.Vec2{math.Round(bPos[0] + half[0] - aPos[0]), 0}
	case SideLeft:
		return mgl64.Vec2{math.Round(bPos[0] - half[0] - aPos[0]), 0}
	default:
		return mgl64.Vec2{}
	}
}

// ContactSide is the side of a that touches b when Collide reported side.
func ContactSide(side Side) Side {
	switch side {
	case SideTop, SideInside:
		return SideBottom
	default:
		return side.Opposite()
	}
}

const snapEpsilon = 1e-6

// Step advances p by v*dt and snaps the result to whole units, rounding
// toward the start for both signs so small velocities never drift.
func Step(p, v, dt float64) float64 {
	next := p + v*dt
	if v < 0 {
		return math.Ceil(next - snapEpsilon)
	}
	return math.Floor(next + snapEpsilon)
}
