// Package physics holds the geometric primitives of the collision engine:
// the AABB overlap test, push vectors, contact flags and the uniform grid
// used as the broad phase for static colliders.
package physics

// Side names the side of the second box in a Collide call that the first box
// overlaps on. Inside means neither axis has a shallow side.
type Side uint8

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
	SideInside
)

// Axis selects one coordinate of a position.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideInside:
		return "inside"
	default:
		return "unknown"
	}
}

// Opposite returns the facing side. Inside is its own opposite.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return s
	}
}

// Axis reports which axis a side belongs to. Inside resolves vertically.
func (s Side) Axis() Axis {
	switch s {
	case SideLeft, SideRight:
		return AxisX
	default:
		return AxisY
	}
}
