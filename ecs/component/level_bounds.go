package component

// LevelBounds stores the world-space bounds of the current level. MinX and
// MinY are the lower-left corner.
type LevelBounds struct {
	MinX   float64
	MinY   float64
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
