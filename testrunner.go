package dome

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Key    string  `json:"key,omitempty"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Tile   *int    `json:"tile,omitempty"`
}

// script is the top-level JSON structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptKeys = map[string]KeyAction{
	"enter":     KeyActivate,
	"space":     KeyActivate,
	"escape":    KeyClose,
	"tab":       KeyFocusNext,
	"shift+tab": KeyFocusPrev,
}

// ScriptRunner sequences injected input across frames for automated runs
// and demos. Attach to a Gallery via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script and returns a ScriptRunner ready to
// be attached to a Gallery.
//
// Supported actions: click, press, move, release, drag, tap, hold,
// touchstart, touchmove, touchend, touchdrag, cancel, key, focus, wait,
// screenshot.
// Positions may be given as x/y or, for click/tap/hold, as a tile index that
// resolves to the tile's projected center when the step runs.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "click", "press", "move", "release", "drag", "tap", "hold",
			"touchstart", "touchmove", "touchend", "touchdrag", "cancel", "focus", "wait", "screenshot":
		case "key":
			if _, ok := scriptKeys[st.Key]; !ok {
				return nil, fmt.Errorf("parse input script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the gallery. Its step method is
// called from Update before input is processed each frame.
func (g *Gallery) SetScriptRunner(runner *ScriptRunner) {
	g.scriptRunner = runner
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// position resolves a step's target point.
func (st scriptStep) position(g *Gallery) (float64, float64) {
	if st.Tile != nil && *st.Tile >= 0 && *st.Tile < len(g.tiles) {
		c := g.Projection(*st.Tile).Center
		return c.X, c.Y
	}
	return st.X, st.Y
}

// step advances the runner by one frame. Called from Gallery.Update.
func (r *ScriptRunner) step(g *Gallery) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		x, y := st.position(g)
		g.InjectClick(x, y)
	case "press":
		x, y := st.position(g)
		g.InjectPress(x, y)
	case "move":
		g.InjectMove(st.X, st.Y)
	case "release":
		g.InjectRelease(st.X, st.Y)
	case "drag":
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "tap":
		x, y := st.position(g)
		g.InjectTouchStart(x, y)
		g.InjectTouchEnd(x, y)
	case "hold":
		x, y := st.position(g)
		frames := max(st.Frames, 2)
		g.InjectTouchStart(x, y)
		for i := 2; i < frames; i++ {
			g.InjectTouchMove(x, y)
		}
		g.InjectTouchEnd(x, y)
	case "touchstart":
		x, y := st.position(g)
		g.InjectTouchStart(x, y)
	case "touchmove":
		g.InjectTouchMove(st.X, st.Y)
	case "touchend":
		g.InjectTouchEnd(st.X, st.Y)
	case "touchdrag":
		g.InjectTouchDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "cancel":
		g.InjectTouchCancel()
	case "key":
		g.InjectKey(scriptKeys[st.Key])
	case "focus":
		if st.Tile != nil {
			g.SetFocus(*st.Tile)
		}
	case "screenshot":
		g.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
