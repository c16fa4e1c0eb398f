package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Grid is a uniform bucket grid over the world. Items are inserted into every
// cell their box covers and queried back by box. A Grid is meant to be built,
// queried and thrown away within one tick.
type Grid[T any] struct {
	cellSize float64
	cols     int
	rows     int
	adjust   mgl64.Vec2
	cells    [][]int
	entries  []gridEntry[T]
	seen     []uint32
	stamp    uint32
}

type gridEntry[T any] struct {
	item T
}

// NewGrid sizes a grid for a world whose lower-left corner is origin. blockSize
// is the world unit tiles are laid out in and multiplier splits each block
// into that many cells per axis. Coordinates are shifted by -origin so a world
// reaching into negative space still maps to non-negative cell indices;
// anything outside the world clamps to the border cells.
func NewGrid[T any](origin mgl64.Vec2, worldWidth, worldHeight, blockSize float64, multiplier int) *Grid[T] {
	if blockSize <= 0 {
		blockSize = 1
	}
	if multiplier < 1 {
		multiplier = 1
	}
	cols := int(math.Ceil(worldWidth/blockSize)) * multiplier
	rows := int(math.Ceil(worldHeight/blockSize)) * multiplier
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	cellSize := blockSize / float64(multiplier)
	return &Grid[T]{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		adjust:   origin.Mul(-1),
		cells:    make([][]int, cols*rows),
	}
}

// Insert stores item in every cell covered by the centred box pos/size.
func (g *Grid[T]) Insert(pos, size mgl64.Vec2, item T) {
	idx := len(g.entries)
	g.entries = append(g.entries, gridEntry[T]{item: item})
	minX, minY, maxX, maxY := g.cellRange(pos, size)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			c := y*g.cols + x
			g.cells[c] = append(g.cells[c], idx)
		}
	}
}

// Fill inserts every item, using box to read its centred bounds.
func (g *Grid[T]) Fill(items []T, box func(T) (pos, size mgl64.Vec2)) {
	for _, item := range items {
		pos, size := box(item)
		g.Insert(pos, size, item)
	}
}

// Possibilities returns every item whose cells overlap the centred box
// pos/size. Each item appears once even when it spans several cells.
func (g *Grid[T]) Possibilities(pos, size mgl64.Vec2) []T {
	if len(g.entries) == 0 {
		return nil
	}
	if len(g.seen) < len(g.entries) {
		g.seen = make([]uint32, len(g.entries))
		g.stamp = 0
	}
	g.stamp++
	if g.stamp == 0 {
		clear(g.seen)
		g.stamp = 1
	}

	var out []T
	minX, minY, maxX, maxY := g.cellRange(pos, size)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for _, idx := range g.cells[y*g.cols+x] {
				if g.seen[idx] == g.stamp {
					continue
				}
				g.seen[idx] = g.stamp
				out = append(out, g.entries[idx].item)
			}
		}
	}
	return out
}

// Bounds returns the box of a centred pos/size in grid space.
func (g *Grid[T]) Bounds(pos, size mgl64.Vec2) cp.BB {
	c := pos.Add(g.adjust)
	return cp.NewBBForExtents(cp.Vector{X: c[0], Y: c[1]}, size[0]/2, size[1]/2)
}

func (g *Grid[T]) cellRange(pos, size mgl64.Vec2) (minX, minY, maxX, maxY int) {
	bb := g.Bounds(pos, size)
	minX = g.clampCol(int(math.Floor(bb.L / g.cellSize)))
	maxX = g.clampCol(int(math.Floor(bb.R / g.cellSize)))
	minY = g.clampRow(int(math.Floor(bb.B / g.cellSize)))
	maxY = g.clampRow(int(math.Floor(bb.T / g.cellSize)))
	return minX, minY, maxX, maxY
}

func (g *Grid[T]) clampCol(x int) int {
	return min(max(x, 0), g.cols-1)
}

func (g *Grid[T]) clampRow(y int) int {
	return min(max(y, 0), g.rows-1)
}
