package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/dome"
)

// demoEmbeds creates a spinner for every embedded reference. It stands in
// for a real interactive frame.
type demoEmbeds struct{}

func (demoEmbeds) Embed(ref string) dome.Embed {
	return &spinner{label: ref}
}

type spinner struct {
	label  string
	angle  float64
	closed bool
}

func (s *spinner) Update() {
	s.angle += math.Pi / 90
}

func (s *spinner) Draw(dst *ebiten.Image) {
	if s.closed {
		return
	}
	b := dst.Bounds()
	cx, cy := float32(b.Dx())/2, float32(b.Dy())/2
	r := float32(math.Min(float64(b.Dx()), float64(b.Dy())) / 3)
	for i := range 8 {
		a := s.angle + float64(i)*math.Pi/4
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		shade := uint8(80 + i*20)
		vector.DrawFilledCircle(dst, x, y, r/6, color.RGBA{R: shade, G: shade, B: 0xff, A: 0xff}, true)
	}
	ebitenutil.DebugPrintAt(dst, s.label, 8, 8)
}

func (s *spinner) Close() {
	s.closed = true
}
