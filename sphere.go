package dome

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// wideAspect is the width/height ratio above which the radius is fit to
	// the width instead of the shorter side.
	wideAspect = 1.3
	// heightGuard bounds the radius relative to the surface height.
	heightGuard = 1.35
	// tileGap is the fraction of a tile edge left empty between tiles.
	tileGap = 0.06
)

// DeriveRadius computes the sphere radius for a surface of the given size.
// Dimensions are clamped to at least 1 before any ratio is taken.
func DeriveRadius(width, height int, cfg Config) float64 {
	cfg = cfg.normalize()
	w := math.Max(1, float64(width))
	h := math.Max(1, float64(height))

	basis := math.Min(w, h)
	if w/h >= wideAspect {
		basis = w
	}
	r := math.Min(basis*cfg.FitRatio, h*heightGuard)
	if cfg.MaxRadius > 0 {
		r = math.Min(r, cfg.MaxRadius)
	}
	return math.Max(r, cfg.MinRadius)
}

// SphereTransform returns the view transform of the sphere: translate back
// by radius, then pitch about the horizontal axis, then yaw about the
// vertical axis. The result depends only on its arguments.
func SphereTransform(radius float64, o Orientation) mgl64.Mat4 {
	return mgl64.Translate3D(0, 0, -radius).
		Mul4(mgl64.HomogRotate3DX(degToRad(o.Pitch))).
		Mul4(mgl64.HomogRotate3DY(degToRad(o.Yaw)))
}

// tileUnitAngle is the angular size of one grid unit in degrees.
func tileUnitAngle(segments int) float64 {
	return 180 / float64(segments)
}

// TileTransform places a tile on the sphere surface, facing outward from the
// center, in sphere-local space.
func TileTransform(t Tile, segments int, radius float64) mgl64.Mat4 {
	unit := tileUnitAngle(segments)
	yaw := unit * (float64(t.OffsetX) + float64(TileSize-1)/2)
	pitch := unit * float64(t.OffsetY)
	return mgl64.HomogRotate3DY(degToRad(-yaw)).
		Mul4(mgl64.HomogRotate3DX(degToRad(-pitch))).
		Mul4(mgl64.Translate3D(0, 0, radius))
}

// TileEdge returns the on-sphere edge length of a tile.
func TileEdge(segments int, radius float64) float64 {
	return TileSize * math.Pi * radius / float64(segments)
}

// TileProjection is a tile's screen-space footprint.
type TileProjection struct {
	Corners [4]Vec2 // top-left, top-right, bottom-right, bottom-left
	Center  Vec2
	Depth   float64 // view-space z of the center; nearer is larger
	Scale   float64 // perspective scale at the center
	Visible bool    // center lies on the hemisphere facing the viewer
}

// Bounds returns the axis-aligned bounds of the projected corners.
func (p TileProjection) Bounds() Rect {
	minX, minY := p.Corners[0].X, p.Corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range p.Corners[1:] {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Contains reports whether (x, y) lies inside the projected quad.
func (p TileProjection) Contains(x, y float64) bool {
	return convexContains(p.Corners[:], x, y)
}

// convexContains tests a point against a convex polygon in either winding
// order using the cross-product sign test.
func convexContains(points []Vec2, x, y float64) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// projector maps sphere-local points to the screen with a perspective
// distance of twice the radius.
type projector struct {
	view     mgl64.Mat4
	radius   float64
	distance float64
	cx, cy   float64
}

func newProjector(radius float64, o Orientation, width, height float64) projector {
	return projector{
		view:     SphereTransform(radius, o),
		radius:   radius,
		distance: 2 * radius,
		cx:       width / 2,
		cy:       height / 2,
	}
}

// point projects a view-space position. Screen Y grows downward with
// view-space Y.
func (pr projector) point(v mgl64.Vec4) (Vec2, float64, float64) {
	z := v.Z()
	s := pr.distance / math.Max(pr.distance-z, 1e-6)
	return Vec2{pr.cx + v.X()*s, pr.cy + v.Y()*s}, z, s
}

// project computes the footprint of a tile.
func (pr projector) project(t Tile, segments int) TileProjection {
	m := pr.view.Mul4(TileTransform(t, segments, pr.radius))
	half := TileEdge(segments, pr.radius) * (1 - tileGap) / 2

	var p TileProjection
	local := [4]mgl64.Vec4{
		{-half, -half, 0, 1},
		{half, -half, 0, 1},
		{half, half, 0, 1},
		{-half, half, 0, 1},
	}
	for i, l := range local {
		p.Corners[i], _, _ = pr.point(m.Mul4x1(l))
	}
	p.Center, p.Depth, p.Scale = pr.point(m.Mul4x1(mgl64.Vec4{0, 0, 0, 1}))
	p.Visible = p.Depth > -pr.radius
	return p
}
