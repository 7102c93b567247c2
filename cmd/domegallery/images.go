package main

import (
	"image/color"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	swatchPrefix = "swatch:"
	swatchSize   = 128
)

// fileImages loads content images from disk on first use and caches them.
// Failed loads are cached as nil so they are not retried every frame.
type fileImages struct {
	dir   string
	cache map[string]*ebiten.Image
}

func newFileImages(dir string) *fileImages {
	return &fileImages{dir: dir, cache: make(map[string]*ebiten.Image)}
}

func (f *fileImages) Image(ref string) *ebiten.Image {
	if img, ok := f.cache[ref]; ok {
		return img
	}
	var img *ebiten.Image
	if n, ok := strings.CutPrefix(ref, swatchPrefix); ok {
		img = swatch(n)
	} else {
		path := ref
		if !filepath.IsAbs(path) {
			path = filepath.Join(f.dir, ref)
		}
		loaded, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			log.Printf("load image %s: %v", path, err)
		} else {
			img = loaded
		}
	}
	f.cache[ref] = img
	return img
}

// swatch generates a solid tile whose hue is derived from n.
func swatch(n string) *ebiten.Image {
	i, _ := strconv.Atoi(n)
	h := math.Mod(float64(i)*0.161803, 1)
	r, g, b := hueToRGB(h)
	img := ebiten.NewImage(swatchSize, swatchSize)
	img.Fill(color.RGBA{R: r, G: g, B: b, A: 0xff})
	return img
}

func hueToRGB(h float64) (uint8, uint8, uint8) {
	f := func(n float64) uint8 {
		k := math.Mod(n+h*6, 6)
		v := 1 - math.Max(0, math.Min(1, math.Min(k, 4-k)))
		return uint8(40 + 200*v)
	}
	return f(5), f(3), f(1)
}
