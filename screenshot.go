package dome

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultScreenshotDir is where captures are written when no directory is set.
const DefaultScreenshotDir = "screenshots"

// SetScreenshotDir sets the directory captures are written to.
func (g *Gallery) SetScreenshotDir(dir string) {
	g.screenshotDir = dir
}

// Screenshot queues a labeled capture of the next rendered frame. The PNG is
// written at the end of Draw as <dir>/<seq>_<label>.png.
func (g *Gallery) Screenshot(label string) {
	g.captures = append(g.captures, label)
}

// flushCaptures writes every queued capture of screen.
func (g *Gallery) flushCaptures(screen *ebiten.Image) {
	if len(g.captures) == 0 {
		return
	}
	defer func() { g.captures = g.captures[:0] }()

	dir := g.screenshotDir
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		g.logf("screenshot: %v", err)
		return
	}

	// ebiten pixels are premultiplied, which is what image.RGBA stores.
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)

	for _, label := range g.captures {
		g.captureSeq++
		path := filepath.Join(dir, fmt.Sprintf("%04d_%s.png", g.captureSeq, captureName(label)))
		if err := writePNG(path, img); err != nil {
			g.logf("screenshot: %v", err)
			continue
		}
		g.debugf("screenshot %s", path)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// captureName maps a label to a file-name-safe string.
func captureName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "frame"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
