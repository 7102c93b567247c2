package dome

import (
	"image/color"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R*c.A, 0, 1) * 255),
		G: uint8(clamp(c.G*c.A, 0, 1) * 255),
		B: uint8(clamp(c.B*c.A, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

// withAlpha returns c with its alpha multiplied by a.
func (c Color) withAlpha(a float64) Color {
	c.A *= a
	return c
}

// Vec2 is a 2D point or vector in screen space.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// ContentKind selects how a tile's full content is presented when opened.
type ContentKind uint8

const (
	KindImage    ContentKind = iota // static image (the default)
	KindEmbedded                    // interactive embeddable frame
)

// String returns the configuration name of the kind.
func (k ContentKind) String() string {
	if k == KindEmbedded {
		return "embedded"
	}
	return "image"
}

// ParseContentKind maps a configuration string to a ContentKind. Matching is
// case-insensitive; empty or unknown values fall back to KindImage.
func ParseContentKind(s string) ContentKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "embedded", "embed", "iframe":
		return KindEmbedded
	default:
		return KindImage
	}
}

// ContentItem describes one entry of the content pool. Every field is
// optional: a missing FullRef falls back to PreviewRef and the zero Kind is
// KindImage.
type ContentItem struct {
	PreviewRef string
	FullRef    string
	AltText    string
	Kind       ContentKind
}

// resolved returns the item with FullRef defaulted to PreviewRef.
func (c ContentItem) resolved() ContentItem {
	if c.FullRef == "" {
		c.FullRef = c.PreviewRef
	}
	return c
}

// IsEmpty reports whether the item carries no content at all. Tiles with
// empty content render as blank placeholders and never open.
func (c ContentItem) IsEmpty() bool {
	return c.PreviewRef == "" && c.FullRef == "" && c.AltText == ""
}

// TileSize is the fixed edge length of every tile in grid units.
const TileSize = 2

// NoTile marks the absence of a tile index.
const NoTile = -1

// Tile is one content-bearing cell on the sphere. Tiles are created once by
// BuildGrid and never modified afterward.
type Tile struct {
	Index   int // position in the emitted sequence
	OffsetX int // horizontal grid offset
	OffsetY int // vertical grid offset
	Content ContentItem
}

// Orientation is the viewing rotation of the sphere in degrees.
// Yaw is kept in (-180, 180]; Pitch is kept within the configured bound.
type Orientation struct {
	Pitch float64
	Yaw   float64
}
