package dome

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window options for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowHUD turns on debug mode, which prints the HUD and stderr logging.
	ShowHUD bool
	// Resizable lets the user resize the window; the sphere radius and
	// overlay follow the new size.
	Resizable bool
}

// Run opens a window and runs g as the game loop. It blocks until the
// window is closed and returns any error from the loop.
func Run(g *Gallery, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowHUD {
		g.SetDebugMode(true)
	}
	return ebiten.RunGame(g)
}
