// Domegallery opens a spherical tile gallery from a TOML configuration.
// Drag to rotate, click a tile (or press and hold on touch devices) to open
// it, and press Escape or click outside the panel to close it. Without a
// config file it shows generated swatch tiles.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phanxgames/dome"
	"github.com/phanxgames/dome/internal/config"
)

const demoTiles = 24

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML config file (default: DOME_CONFIG or ./dome.toml)")
		scriptPath = flag.String("script", "", "JSON input script to play back (optional)")
		debug      = flag.Bool("debug", false, "log gesture activity to stderr and show the HUD")
		shotDir    = flag.String("screenshots", dome.DefaultScreenshotDir, "directory for script screenshots")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pool := settings.Content
	if len(pool) == 0 {
		pool = demoPool(demoTiles)
	}

	g := dome.NewGallery(settings.Gallery, pool)
	g.SetImageSource(newFileImages(settings.AssetDir))
	g.SetEmbedProvider(demoEmbeds{})
	g.SetScreenshotDir(*shotDir)

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		runner, err := dome.LoadScript(data)
		if err != nil {
			log.Fatalf("load script: %v", err)
		}
		g.SetScriptRunner(runner)
	}

	g.OnContentOpened(func(t dome.Tile) {
		log.Printf("opened tile %d: %s", t.Index, t.Content.AltText)
	})

	if err := dome.Run(g, dome.RunConfig{
		Title:     settings.Window.Title,
		Width:     settings.Window.Width,
		Height:    settings.Window.Height,
		Resizable: settings.Window.Resizable,
		ShowHUD:   *debug,
	}); err != nil {
		log.Fatal(err)
	}
}

// demoPool builds n swatch items, every fifth one embedded.
func demoPool(n int) []dome.ContentItem {
	pool := make([]dome.ContentItem, n)
	for i := range pool {
		pool[i] = dome.ContentItem{
			PreviewRef: fmt.Sprintf("%s%d", swatchPrefix, i),
			AltText:    fmt.Sprintf("Swatch %d", i+1),
		}
		if i%5 == 4 {
			pool[i].Kind = dome.KindEmbedded
			pool[i].FullRef = fmt.Sprintf("spinner:%d", i)
		}
	}
	return pool
}
