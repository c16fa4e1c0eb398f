package debugserver

import (
	"image"
	"image/color"
	"slices"
	"sort"

	"github.com/fogleman/gg"
	"github.com/milk9111/blockpush/prefabs"
	"golang.org/x/image/colornames"
)

var kindColors = map[string]color.Color{
	"movable": colornames.Slategray,
	"death":   colornames.Crimson,
	"sensor":  colornames.Gold,
	"win":     colornames.Limegreen,
	"none":    colornames.Lightsteelblue,
}

// RenderFrame draws s with scale pixels per world unit. World y is flipped
// so the image reads the same way as the game window.
func RenderFrame(s *Snapshot, scale float64) image.Image {
	if scale <= 0 {
		scale = 1
	}
	width, height := s.Width, s.Height
	if width <= 0 || height <= 0 {
		width, height = 800, 800
	}
	dc := gg.NewContext(int(width*scale), int(height*scale))
	dc.SetColor(colornames.Midnightblue)
	dc.Clear()

	for _, b := range sortedByZ(s.Bodies) {
		x := (b.X - b.Width/2) * scale
		y := (height - b.Y - b.Height/2) * scale
		dc.DrawRectangle(x, y, b.Width*scale, b.Height*scale)
		dc.SetColor(BodyColor(b))
		if b.Kind == "none" {
			dc.SetLineWidth(1)
			dc.Stroke()
			continue
		}
		dc.Fill()
	}
	return dc.Image()
}

// BodyColor is the prefab colour of b, or a colour for its kind.
func BodyColor(b Body) color.Color {
	if b.Color != "" {
		if c, err := prefabs.ParseColor(b.Color); err == nil {
			return c
		}
	}
	if b.Static {
		return colornames.Dimgray
	}
	if c, ok := kindColors[b.Kind]; ok {
		return c
	}
	return colornames.White
}

func sortedByZ(bodies []Body) []Body {
	out := slices.Clone(bodies)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}
