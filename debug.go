package dome

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// SetDebugMode enables stderr logging of gesture and overlay activity and
// the on-screen HUD.
func (g *Gallery) SetDebugMode(enabled bool) {
	g.debug = enabled
}

// debugf prints a prefixed line to the debug writer. No-op unless debug mode
// is on.
func (g *Gallery) debugf(format string, args ...any) {
	if g.debug {
		g.logf(format, args...)
	}
}

// logf prints a prefixed line to the debug writer regardless of debug mode.
func (g *Gallery) logf(format string, args ...any) {
	if g.debugOut == nil {
		return
	}
	_, _ = fmt.Fprintf(g.debugOut, "[dome] "+format+"\n", args...)
}

// hudText summarizes frame rate, orientation, and gesture state.
func (g *Gallery) hudText() string {
	o := g.rotation.Orientation()
	mode := "pointer"
	if g.touchPrimary {
		mode = "touch"
	}
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\npitch %.1f yaw %.1f\nphase %s (%s)\nsorts %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), o.Pitch, o.Yaw, g.gesture.Phase, mode, g.depth.Recomputes())
}

func (g *Gallery) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.hudText(), 4, 4)
}
