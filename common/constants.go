package common

const (
	// BlockSize is the edge length of one level tile in world units.
	BlockSize = 50.0

	// StaticThreshold is the weight at which a collider stops being pushed
	// and goes into the static grid instead.
	StaticThreshold = 1000.0

	// CellMultiplier splits each block into this many grid cells per axis.
	CellMultiplier = 4

	// TickRate is the number of fixed simulation ticks per second.
	TickRate = 60
)
