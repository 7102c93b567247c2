package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phanxgames/dome"
	"github.com/spf13/viper"
)

// Settings holds everything read from the configuration file and env.
type Settings struct {
	Gallery dome.Config
	Content []dome.ContentItem
	Window  WindowConfig
	// AssetDir is the directory content references are resolved against.
	AssetDir string
}

// WindowConfig holds window options for the demo binary.
type WindowConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

type fileConfig struct {
	Gallery galleryConfig  `mapstructure:"gallery"`
	Window  windowConfig   `mapstructure:"window"`
	Content []contentEntry `mapstructure:"content"`
	Assets  string         `mapstructure:"assets"`
}

type galleryConfig struct {
	Segments            int           `mapstructure:"segments"`
	FitRatio            float64       `mapstructure:"fit_ratio"`
	MinRadius           float64       `mapstructure:"min_radius"`
	MaxRadius           float64       `mapstructure:"max_radius"`
	MaxPitch            float64       `mapstructure:"max_pitch"`
	DragSensitivity     float64       `mapstructure:"drag_sensitivity"`
	DragDampening       float64       `mapstructure:"drag_dampening"`
	DisableInertia      bool          `mapstructure:"disable_inertia"`
	HoldDuration        time.Duration `mapstructure:"hold_duration"`
	OverlayWidth        float64       `mapstructure:"overlay_width"`
	OverlayHeight       float64       `mapstructure:"overlay_height"`
	OverlayCornerRadius float64       `mapstructure:"overlay_corner_radius"`
	OverlayDuration     time.Duration `mapstructure:"overlay_duration"`
	BackdropColor       string        `mapstructure:"backdrop_color"`
	Grayscale           bool          `mapstructure:"grayscale"`
	TouchPrimary        string        `mapstructure:"touch_primary"`
}

type windowConfig struct {
	Title     string `mapstructure:"title"`
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	Resizable bool   `mapstructure:"resizable"`
}

type contentEntry struct {
	Preview string `mapstructure:"preview"`
	Full    string `mapstructure:"full"`
	Alt     string `mapstructure:"alt"`
	Kind    string `mapstructure:"kind"`
}

// Load reads configuration from path and env. An empty path falls back to
// DOME_CONFIG, then to dome.toml in the working directory or
// $HOME/.config/dome; a missing file in that search is not an error.
// Env var overrides use prefix DOME_ (for example DOME_GALLERY_SEGMENTS).
//
// hold_duration and overlay_duration are duration strings such as "500ms" or
// "0.3s". A bare integer would decode as nanoseconds, so values below 1ms
// are rejected.
func Load(path string) (Settings, error) {
	v := viper.New()

	// default values
	d := dome.DefaultConfig()
	v.SetDefault("gallery.segments", d.Segments)
	v.SetDefault("gallery.fit_ratio", d.FitRatio)
	v.SetDefault("gallery.min_radius", d.MinRadius)
	v.SetDefault("gallery.max_radius", d.MaxRadius)
	v.SetDefault("gallery.max_pitch", d.MaxPitch)
	v.SetDefault("gallery.drag_sensitivity", d.DragSensitivity)
	v.SetDefault("gallery.drag_dampening", d.DragDampening)
	v.SetDefault("gallery.disable_inertia", false)
	v.SetDefault("gallery.hold_duration", d.HoldDuration)
	v.SetDefault("gallery.overlay_width", d.OverlayWidth)
	v.SetDefault("gallery.overlay_height", d.OverlayHeight)
	v.SetDefault("gallery.overlay_corner_radius", d.OverlayCornerRadius)
	v.SetDefault("gallery.overlay_duration", "300ms")
	v.SetDefault("gallery.backdrop_color", "#060010")
	v.SetDefault("gallery.grayscale", d.Grayscale)
	v.SetDefault("gallery.touch_primary", "auto")
	v.SetDefault("window.title", "Dome")
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("window.resizable", true)
	v.SetDefault("assets", ".")

	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv("DOME_CONFIG")
		explicit = path != ""
	}
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "dome"))
		v.SetConfigName("dome")
	}

	v.SetEnvPrefix("DOME")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}

	gallery, err := fc.Gallery.toConfig()
	if err != nil {
		return Settings{}, err
	}

	assets := fc.Assets
	if explicit && !filepath.IsAbs(assets) {
		assets = filepath.Join(filepath.Dir(path), assets)
	}

	s := Settings{
		Gallery: gallery,
		Window: WindowConfig{
			Title:     fc.Window.Title,
			Width:     fc.Window.Width,
			Height:    fc.Window.Height,
			Resizable: fc.Window.Resizable,
		},
		AssetDir: assets,
	}
	for _, e := range fc.Content {
		s.Content = append(s.Content, dome.ContentItem{
			PreviewRef: e.Preview,
			FullRef:    e.Full,
			AltText:    e.Alt,
			Kind:       dome.ParseContentKind(e.Kind),
		})
	}
	return s, nil
}

// minDuration is the shortest accepted hold or overlay duration.
const minDuration = time.Millisecond

func (g galleryConfig) toConfig() (dome.Config, error) {
	backdrop, err := ParseColor(g.BackdropColor)
	if err != nil {
		return dome.Config{}, fmt.Errorf("gallery.backdrop_color: %w", err)
	}
	for _, d := range []struct {
		key string
		val time.Duration
	}{
		{"hold_duration", g.HoldDuration},
		{"overlay_duration", g.OverlayDuration},
	} {
		if d.val < minDuration {
			return dome.Config{}, fmt.Errorf("gallery.%s: %v is below %v; use a duration string such as \"500ms\"", d.key, d.val, minDuration)
		}
	}
	c := dome.Config{
		Segments:            g.Segments,
		FitRatio:            g.FitRatio,
		MinRadius:           g.MinRadius,
		MaxRadius:           g.MaxRadius,
		MaxPitch:            g.MaxPitch,
		DragSensitivity:     g.DragSensitivity,
		DragDampening:       g.DragDampening,
		DisableInertia:      g.DisableInertia,
		HoldDuration:        g.HoldDuration,
		OverlayWidth:        g.OverlayWidth,
		OverlayHeight:       g.OverlayHeight,
		OverlayCornerRadius: g.OverlayCornerRadius,
		OverlayDuration:     float32(g.OverlayDuration.Seconds()),
		BackdropColor:       backdrop,
		Grayscale:           g.Grayscale,
	}
	switch strings.ToLower(strings.TrimSpace(g.TouchPrimary)) {
	case "", "auto":
	case "true", "yes", "on":
		on := true
		c.TouchPrimary = &on
	case "false", "no", "off":
		off := false
		c.TouchPrimary = &off
	default:
		return dome.Config{}, fmt.Errorf("gallery.touch_primary: unknown value %q", g.TouchPrimary)
	}
	return c, nil
}

// ParseColor parses #rrggbb or #rrggbbaa into a dome.Color.
func ParseColor(s string) (dome.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return dome.Color{}, fmt.Errorf("parse color %q: want #rrggbb or #rrggbbaa", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return dome.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	c := dome.Color{R: float64(b[0]) / 255, G: float64(b[1]) / 255, B: float64(b[2]) / 255, A: 1}
	if len(b) == 4 {
		c.A = float64(b[3]) / 255
	}
	return c, nil
}
