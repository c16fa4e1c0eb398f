package main

import (
	"fmt"
	"slices"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockpush/debugserver"
	"golang.org/x/image/colornames"
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	if g.snapshot == nil {
		return
	}

	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	view := cp.NewBB(g.camera[0]-sw/2, g.camera[1]-sh/2, g.camera[0]+sw/2, g.camera[1]+sh/2)

	bodies := slices.Clone(g.snapshot.Bodies)
	sort.SliceStable(bodies, func(i, j int) bool { return bodies[i].Z < bodies[j].Z })
	for _, b := range bodies {
		box := cp.NewBBForExtents(cp.Vector{X: b.X, Y: b.Y}, b.Width/2, b.Height/2)
		if !view.Intersects(box) {
			continue
		}
		x, y := float32(box.L-view.L), float32(view.T-box.T)
		w, h := float32(b.Width), float32(b.Height)
		clr := debugserver.BodyColor(b)
		if b.Kind == "none" {
			vector.StrokeRect(screen, x, y, w, h, 1, clr, false)
		} else {
			vector.FillRect(screen, x, y, w, h, clr, false)
		}
		if g.debug && b.Flags != "none" {
			vector.StrokeRect(screen, x, y, w, h, 1, colornames.Orange, false)
			ebitenutil.DebugPrintAt(screen, b.Flags, int(x), int(y))
		}
	}

	if g.debug {
		bounds := cp.NewBB(0, 0, g.snapshot.Width, g.snapshot.Height)
		vector.StrokeRect(screen, float32(bounds.L-view.L), float32(view.T-bounds.T), float32(g.snapshot.Width), float32(g.snapshot.Height), 2, colornames.Magenta, false)
	}

	hud := fmt.Sprintf("%s  tick %d  deaths %d  FPS %.0f", g.snapshot.Level, g.snapshot.Tick, g.session.Deaths, ebiten.ActualFPS())
	if g.paused {
		hud += "  [paused]"
	}
	if g.status != "" {
		hud += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, hud)
}
