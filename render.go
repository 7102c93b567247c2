package dome

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	focusStroke  = 3
	scrimOpacity = 0.85
	minShade     = 0.35
)

var (
	placeholderColor = Color{R: 0.16, G: 0.16, B: 0.2, A: 1}
	panelColor       = Color{R: 0.1, G: 0.1, B: 0.12, A: 1}
	focusColor       = Color{R: 1, G: 1, B: 1, A: 0.9}
	labelColor       = Color{R: 0.85, G: 0.85, B: 0.9, A: 1}
)

// renderCache holds images and buffers reused across frames.
type renderCache struct {
	white *ebiten.Image
	panel *ebiten.Image
	face  text.Face
	verts []ebiten.Vertex
	inds  []uint16
}

// whitePixel returns a 1x1 white sub-image used as the source for solid
// fills.
func (g *Gallery) whitePixel() *ebiten.Image {
	if g.render.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		g.render.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return g.render.white
}

func (g *Gallery) labelFace() text.Face {
	if g.render.face == nil {
		g.render.face = text.NewGoXFace(basicfont.Face7x13)
	}
	return g.render.face
}

// Draw renders the sphere back to front, then the focus ring, the overlay,
// and the debug HUD.
func (g *Gallery) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.BackdropColor.toRGBA())
	g.ensureProjections()

	for _, idx := range g.depth.DrawSequence() {
		if g.tileHidden(idx) {
			continue
		}
		if p := g.proj[idx]; p.Visible {
			g.drawTile(screen, idx, p)
		}
	}
	if g.focus != NoTile && !g.tileHidden(g.focus) {
		if p := g.proj[g.focus]; p.Visible {
			g.drawFocus(screen, p)
		}
	}
	g.drawOverlay(screen)
	if g.debug {
		g.drawHUD(screen)
	}
	g.flushCaptures(screen)
}

// shade darkens tiles toward the back of the sphere.
func (g *Gallery) shade(p TileProjection) float32 {
	f := clamp((p.Depth/g.radius+1)/2, 0, 1)
	return float32(minShade + (1-minShade)*f)
}

func (g *Gallery) drawTile(dst *ebiten.Image, idx int, p TileProjection) {
	t := g.tiles[idx]
	var src *ebiten.Image
	if g.images != nil && t.Content.PreviewRef != "" {
		src = g.images.Image(t.Content.PreviewRef)
	}

	s := g.shade(p)
	tint := [4]float32{s, s, s, 1}
	var uv [4]Vec2
	if src != nil {
		b := src.Bounds()
		side := float64(min(b.Dx(), b.Dy()))
		x0 := float64(b.Min.X) + (float64(b.Dx())-side)/2
		y0 := float64(b.Min.Y) + (float64(b.Dy())-side)/2
		uv = [4]Vec2{{x0, y0}, {x0 + side, y0}, {x0 + side, y0 + side}, {x0, y0 + side}}
	} else {
		src = g.whitePixel()
		c := placeholderColor
		tint = [4]float32{float32(c.R) * s, float32(c.G) * s, float32(c.B) * s, 1}
		center := src.Bounds().Min
		for i := range uv {
			uv[i] = Vec2{float64(center.X) + 0.5, float64(center.Y) + 0.5}
		}
	}

	verts := g.render.verts[:0]
	for i, c := range p.Corners {
		verts = append(verts, ebiten.Vertex{
			DstX: float32(c.X), DstY: float32(c.Y),
			SrcX: float32(uv[i].X), SrcY: float32(uv[i].Y),
			ColorR: tint[0], ColorG: tint[1], ColorB: tint[2], ColorA: tint[3],
		})
	}
	inds := append(g.render.inds[:0], 0, 1, 2, 0, 2, 3)
	g.render.verts, g.render.inds = verts, inds

	var cm colorm.ColorM
	if g.cfg.Grayscale && idx != g.hover {
		cm.ChangeHSV(0, 0, 1)
	}
	op := &colorm.DrawTrianglesOptions{Filter: ebiten.FilterLinear}
	colorm.DrawTriangles(dst, verts, inds, src, cm, op)

	if t.Content.PreviewRef == "" && t.Content.AltText != "" {
		g.drawLabel(dst, t.Content.AltText, p.Center, p.Bounds().Width)
	}
}

// drawLabel draws s centered on at, skipping labels wider than maxWidth.
func (g *Gallery) drawLabel(dst *ebiten.Image, s string, at Vec2, maxWidth float64) {
	face := g.labelFace()
	w, h := text.Measure(s, face, 0)
	if w > maxWidth {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(at.X-w/2, at.Y-h/2)
	op.ColorScale.ScaleWithColor(labelColor.toRGBA())
	text.Draw(dst, s, face, op)
}

func (g *Gallery) drawFocus(dst *ebiten.Image, p TileProjection) {
	clr := focusColor.toRGBA()
	for i := range p.Corners {
		a, b := p.Corners[i], p.Corners[(i+1)%len(p.Corners)]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), focusStroke, clr, true)
	}
}

func (g *Gallery) drawOverlay(dst *ebiten.Image) {
	m := g.overlay
	if c := m.closing; c != nil {
		g.drawScrim(dst, c.frame.Scrim)
		g.drawPanel(dst, c.frame.Rect, c.image, nil, c.tile.Content.AltText)
	}
	if !m.guard {
		return
	}
	g.drawScrim(dst, m.frame.Scrim)
	g.drawPanel(dst, m.frame.Rect, m.image, m.embed, m.tile.Content.AltText)
}

func (g *Gallery) drawScrim(dst *ebiten.Image, opacity float64) {
	if opacity <= 0 {
		return
	}
	b := dst.Bounds()
	clr := g.cfg.BackdropColor.withAlpha(scrimOpacity * clamp(opacity, 0, 1)).toRGBA()
	vector.DrawFilledRect(dst, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), clr, false)
}

// drawPanel renders the overlay content at its target resolution into an
// offscreen image, then draws it into rect through a rounded-corner mask.
func (g *Gallery) drawPanel(dst *ebiten.Image, rect Rect, img *ebiten.Image, embed Embed, alt string) {
	if rect.Width < 1 || rect.Height < 1 {
		return
	}
	target := g.overlay.targetRect()
	pw, ph := max(1, int(target.Width)), max(1, int(target.Height))
	if g.render.panel == nil || g.render.panel.Bounds().Dx() != pw || g.render.panel.Bounds().Dy() != ph {
		if g.render.panel != nil {
			g.render.panel.Deallocate()
		}
		g.render.panel = ebiten.NewImage(pw, ph)
	}
	panel := g.render.panel
	panel.Fill(panelColor.toRGBA())

	switch {
	case embed != nil:
		embed.Draw(panel)
	case img != nil:
		drawCover(panel, img)
	case alt != "":
		g.drawLabel(panel, alt, Vec2{float64(pw) / 2, float64(ph) / 2}, float64(pw))
	}

	scale := math.Min(rect.Width, rect.Height) / math.Min(target.Width, target.Height)
	radius := float32(g.cfg.OverlayCornerRadius * scale)
	radius = min(radius, float32(rect.Width/2), float32(rect.Height/2))

	var path vector.Path
	x0, y0 := float32(rect.X), float32(rect.Y)
	x1, y1 := float32(rect.X+rect.Width), float32(rect.Y+rect.Height)
	path.MoveTo(x0+radius, y0)
	path.LineTo(x1-radius, y0)
	path.ArcTo(x1, y0, x1, y0+radius, radius)
	path.LineTo(x1, y1-radius)
	path.ArcTo(x1, y1, x1-radius, y1, radius)
	path.LineTo(x0+radius, y1)
	path.ArcTo(x0, y1, x0, y1-radius, radius)
	path.LineTo(x0, y0+radius)
	path.ArcTo(x0, y0, x0+radius, y0, radius)
	path.Close()

	verts, inds := path.AppendVerticesAndIndicesForFilling(g.render.verts[:0], g.render.inds[:0])
	sx := float32(float64(pw) / rect.Width)
	sy := float32(float64(ph) / rect.Height)
	for i := range verts {
		verts[i].SrcX = (verts[i].DstX - x0) * sx
		verts[i].SrcY = (verts[i].DstY - y0) * sy
		verts[i].ColorR, verts[i].ColorG, verts[i].ColorB, verts[i].ColorA = 1, 1, 1, 1
	}
	g.render.verts, g.render.inds = verts, inds

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, Filter: ebiten.FilterLinear}
	dst.DrawTriangles(verts, inds, panel, op)
}

// drawCover scales img to cover dst, cropping the overflow evenly.
func drawCover(dst, img *ebiten.Image) {
	db, ib := dst.Bounds(), img.Bounds()
	if ib.Dx() == 0 || ib.Dy() == 0 {
		return
	}
	s := math.Max(float64(db.Dx())/float64(ib.Dx()), float64(db.Dy())/float64(ib.Dy()))
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate((float64(db.Dx())-float64(ib.Dx())*s)/2, (float64(db.Dy())-float64(ib.Dy())*s)/2)
	dst.DrawImage(img, op)
}
