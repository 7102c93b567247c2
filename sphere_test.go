package dome

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDeriveRadius(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		w, h int
		max  float64
		want float64
	}{
		{"landscape fits width", 800, 600, 0, 400},
		{"portrait fits shorter side", 600, 800, 0, 300},
		{"square", 1000, 1000, 0, 500},
		{"tiny clamps to minimum", 100, 100, 0, 240},
		{"degenerate clamps to minimum", 0, 0, 0, 240},
		{"negative clamps to minimum", -50, -10, 0, 240},
		{"very wide bounded by height", 3000, 300, 0, 405},
		{"max radius caps", 800, 600, 350, 350},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			c.MaxRadius = tt.max
			got := DeriveRadius(tt.w, tt.h, c)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DeriveRadius(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestSphereTransformIsPure(t *testing.T) {
	o := Orientation{Pitch: 4, Yaw: -33}
	a := SphereTransform(300, o)
	b := SphereTransform(300, o)
	if !a.ApproxEqual(b) {
		t.Error("SphereTransform not deterministic")
	}
	p := SphereTransform(300, Orientation{}).Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	if !p.ApproxEqual(mgl64.Vec4{0, 0, -300, 1}) {
		t.Errorf("sphere center = %v, want (0, 0, -300)", p)
	}
}

func TestTileFacesViewerAtItsYaw(t *testing.T) {
	const segments = 28
	tiles := BuildGrid(segments, nil)
	tile := tiles[57]
	yaw := tileUnitAngle(segments) * (float64(tile.OffsetX) + 0.5)

	pr := newProjector(400, Orientation{Yaw: yaw}, 800, 600)
	p := pr.project(tile, segments)
	if !p.Visible {
		t.Fatal("tile at its own yaw should be visible")
	}
	if math.Abs(p.Center.X-400) > 1e-6 {
		t.Errorf("center X = %v, want 400", p.Center.X)
	}
	if !p.Contains(p.Center.X, p.Center.Y) {
		t.Error("projection should contain its center")
	}
	if b := p.Bounds(); b.Width <= 0 || b.Height <= 0 {
		t.Errorf("degenerate bounds %+v", b)
	}

	// The same tile seen from the opposite side is culled.
	back := newProjector(400, Orientation{Yaw: WrapSigned(yaw + 180)}, 800, 600).project(tile, segments)
	if back.Visible {
		t.Error("tile behind the sphere should not be visible")
	}
	if back.Depth >= p.Depth {
		t.Errorf("back depth %v should be less than front depth %v", back.Depth, p.Depth)
	}
}

func TestTileEdge(t *testing.T) {
	got := TileEdge(28, 400)
	want := 2 * math.Pi * 400 / 28
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("TileEdge = %v, want %v", got, want)
	}
}

func TestConvexContains(t *testing.T) {
	sq := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	tests := []struct {
		x, y float64
		want bool
	}{
		{5, 5, true},
		{0, 0, true},
		{10, 5, true},
		{11, 5, false},
		{-1, -1, false},
	}
	for _, tt := range tests {
		if got := convexContains(sq, tt.x, tt.y); got != tt.want {
			t.Errorf("convexContains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if convexContains(sq[:2], 0, 0) {
		t.Error("degenerate polygon should contain nothing")
	}
}
