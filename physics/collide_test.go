package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestCollide(t *testing.T) {
	block := mgl64.Vec2{50, 50}
	cases := []struct {
		name   string
		aPos   mgl64.Vec2
		aSize  mgl64.Vec2
		bPos   mgl64.Vec2
		bSize  mgl64.Vec2
		want   Side
		overlap bool
	}{
		{name: "apart", aPos: mgl64.Vec2{0, 0}, aSize: block, bPos: mgl64.Vec2{100, 0}, bSize: block},
		{name: "edges_touch_is_not_overlap", aPos: mgl64.Vec2{0, 50}, aSize: block, bPos: mgl64.Vec2{0, 0}, bSize: block},
		{name: "resting_on_wide_floor", aPos: mgl64.Vec2{0, 70}, aSize: mgl64.Vec2{60, 96}, bPos: mgl64.Vec2{0, 0}, bSize: mgl64.Vec2{960, 96}, want: SideTop, overlap: true},
		{name: "hit_from_below", aPos: mgl64.Vec2{0, -45}, aSize: block, bPos: mgl64.Vec2{0, 0}, bSize: block, want: SideBottom, overlap: true},
		{name: "left", aPos: mgl64.Vec2{-45, 0}, aSize: block, bPos: mgl64.Vec2{0, 0}, bSize: block, want: SideLeft, overlap: true},
		{name: "right", aPos: mgl64.Vec2{45, 0}, aSize: block, bPos: mgl64.Vec2{0, 0}, bSize: block, want: SideRight, overlap: true},
		{name: "shallower_axis_wins", aPos: mgl64.Vec2{40, 48}, aSize: block, bPos: mgl64.Vec2{0, 0}, bSize: block, want: SideTop, overlap: true},
		{name: "tie_goes_to_x", aPos: mgl64.Vec2{45, 45}, aSize: block, bPos: mgl64.Vec2{0, 0}, bSize: block, want: SideRight, overlap: true},
		{name: "identical_boxes_inside", aPos: mgl64.Vec2{10, 10}, aSize: block, bPos: mgl64.Vec2{10, 10}, bSize: block, want: SideInside, overlap: true},
		{name: "small_inside_large", aPos: mgl64.Vec2{0, 0}, aSize: mgl64.Vec2{10, 10}, bPos: mgl64.Vec2{0, 0}, bSize: block, want: SideInside, overlap: true},
		{name: "zero_size_never_overlaps_edge", aPos: mgl64.Vec2{25, 0}, aSize: mgl64.Vec2{}, bPos: mgl64.Vec2{0, 0}, bSize: block},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			side, ok := Collide(tc.aPos, tc.aSize, tc.bPos, tc.bSize)
			require.Equal(t, tc.overlap, ok)
			if tc.overlap {
				require.Equal(t, tc.want, side, "got %s", side)
			}
		})
	}
}

func TestPushForceSeparatesExactly(t *testing.T) {
	block := mgl64.Vec2{50, 50}
	b := mgl64.Vec2{0, 0}
	cases := []struct {
		name string
		aPos mgl64.Vec2
	}{
		{name: "top", aPos: mgl64.Vec2{5, 40}},
		{name: "bottom", aPos: mgl64.Vec2{-5, -30}},
		{name: "left", aPos: mgl64.Vec2{-30, 3}},
		{name: "right", aPos: mgl64.Vec2{44, -2}},
		{name: "inside", aPos: mgl64.Vec2{0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			side, ok := Collide(tc.aPos, block, b, block)
			require.True(t, ok)
			push := PushForce(side, tc.aPos, block, b, block)
			moved := tc.aPos.Add(push)
			_, still := Collide(moved, block, b, block)
			require.False(t, still, "side %s push %v left overlap at %v", side, push, moved)

			switch side.Axis() {
			case AxisY:
				require.Zero(t, push[0])
				require.InDelta(t, 50, abs(moved[1]-b[1]), 1e-9)
			case AxisX:
				require.Zero(t, push[1])
				require.InDelta(t, 50, abs(moved[0]-b[0]), 1e-9)
			}
		})
	}
}

func TestPushForceRoundsToWholeUnits(t *testing.T) {
	push := PushForce(SideTop, mgl64.Vec2{0, 30.3}, mgl64.Vec2{40, 25}, mgl64.Vec2{0, 0}, mgl64.Vec2{50, 50})
	require.Equal(t, mgl64.Vec2{0, 7}, push)
}

func TestTouch(t *testing.T) {
	size := mgl64.Vec2{50, 50}
	require.True(t, Touch(mgl64.Vec2{0, 0}, size, mgl64.Vec2{50, 0}, size), "shared edge")
	require.True(t, Touch(mgl64.Vec2{0, 0}, size, mgl64.Vec2{40, 10}, size))
	require.False(t, Touch(mgl64.Vec2{0, 0}, size, mgl64.Vec2{51, 0}, size))
	require.False(t, Touch(mgl64.Vec2{0, 0}, size, mgl64.Vec2{0, -60}, size))
}

func TestContactSide(t *testing.T) {
	require.Equal(t, SideBottom, ContactSide(SideTop))
	require.Equal(t, SideBottom, ContactSide(SideInside))
	require.Equal(t, SideTop, ContactSide(SideBottom))
	require.Equal(t, SideRight, ContactSide(SideLeft))
	require.Equal(t, SideLeft, ContactSide(SideRight))
}

func TestStep(t *testing.T) {
	require.Equal(t, 101.0, Step(100, 100, 1.0/60.0))
	require.Equal(t, 99.0, Step(100, -100, 1.0/60.0))
	require.Equal(t, 100.0, Step(100, 30, 1.0/60.0))
	require.Equal(t, 100.0, Step(100, -30, 1.0/60.0))
	require.Equal(t, 100.0, Step(100, 5, 0))
	require.Equal(t, 103.0, Step(100, 180, 1.0/60.0))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
