// Package app wires the air drum kit together: camera capture, color
// tracking, pad hit detection, audio triggering, and the keyboard-driven
// screen modes.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/arian/airdrum/internal/capture"
	"github.com/arian/airdrum/internal/kit"
	"github.com/arian/airdrum/internal/vision"
)

// Mode is the screen the application is currently showing. The tracking
// pipeline only runs while playing.
type Mode int

const (
	// ModeMenu shows the main menu.
	ModeMenu Mode = iota
	// ModePlaying runs the drum kit.
	ModePlaying
	// ModeCredits shows the credits screen.
	ModeCredits
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	case ModeCredits:
		return "credits"
	default:
		return "unknown"
	}
}

// Pipeline timing constants.
const (
	// MenuFPS is the capture rate while a menu screen is up.
	MenuFPS = 5
	// PlayFPS is the capture rate while drumming.
	PlayFPS = 30
	// HueTuneStep is how far the '[' and ']' keys shift the hue window.
	HueTuneStep = 5
)

// Player triggers a drum sample by name. The audio sampler implements it;
// tests substitute a recorder.
type Player interface {
	Play(name string)
}

// Config holds configuration options for the application.
type Config struct {
	CameraID  int
	Width     int
	Height    int
	AssetsDir string
	Color     vision.ColorRange
	MinArea   int
	Cooldown  time.Duration
	Mirror    bool
}

// App owns the capture device and the per-frame tracking pipeline. All
// invalid-configuration errors surface from New; once constructed, the
// pipeline has no failure modes of its own.
type App struct {
	config  Config
	camera  capture.Camera
	locator *vision.Locator
	layout  *kit.Layout
	hits    *kit.Detector
	player  Player

	mu       sync.RWMutex
	mode     Mode
	color    vision.ColorRange
	onStrike func(kit.StrikeEvent)
	stop     bool
}

// New creates an App from the given configuration, failing fast on an
// invalid color range or degenerate layout.
func New(config Config) (*App, error) {
	if config.Width <= 0 {
		config.Width = capture.DefaultWidth
	}
	if config.Height <= 0 {
		config.Height = capture.DefaultHeight
	}
	if (config.Color == vision.ColorRange{}) {
		config.Color = vision.DefaultBlueRange()
	}
	if err := config.Color.Validate(); err != nil {
		return nil, fmt.Errorf("app config: %w", err)
	}

	layout, err := kit.DefaultLayout(config.Width, config.Height)
	if err != nil {
		return nil, fmt.Errorf("app config: %w", err)
	}

	hits, err := kit.NewDetector(layout, config.Cooldown)
	if err != nil {
		return nil, fmt.Errorf("app config: %w", err)
	}

	return &App{
		config:  config,
		camera:  capture.NewCamera(config.CameraID),
		locator: vision.NewLocator(config.MinArea),
		layout:  layout,
		hits:    hits,
		mode:    ModeMenu,
		color:   config.Color,
	}, nil
}

// SetCamera replaces the capture device. Used by tests to feed recorded
// frames through the pipeline.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetPlayer sets the sample player invoked on each strike.
func (a *App) SetPlayer(p Player) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.player = p
}

// OnStrike registers a callback invoked for every strike event, after the
// sample has been triggered.
func (a *App) OnStrike(fn func(kit.StrikeEvent)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onStrike = fn
}

// Mode returns the current screen mode.
func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

// SetMode switches screens. Entering play restores the full capture rate;
// leaving it drops to the menu rate and returns every pad to idle so stale
// cooldowns do not carry into the next session.
func (a *App) SetMode(m Mode) {
	a.mu.Lock()
	prev := a.mode
	a.mode = m
	camera := a.camera
	a.mu.Unlock()

	if m == prev {
		return
	}

	if m == ModePlaying {
		camera.SetFPS(PlayFPS)
	} else {
		camera.SetFPS(MenuFPS)
		if prev == ModePlaying {
			a.hits.Reset()
		}
	}
}

// ColorRange returns the current (possibly tuned) tracking color range.
func (a *App) ColorRange() vision.ColorRange {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.color
}

// TuneHue shifts the tracked hue window by delta, for live adjustment to
// lighting and object color.
func (a *App) TuneHue(delta float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.color = a.color.ShiftHue(delta)
}

// Layout returns the pad layout.
func (a *App) Layout() *kit.Layout {
	return a.layout
}

// Hits returns the strike detector.
func (a *App) Hits() *kit.Detector {
	return a.hits
}

// Camera returns the capture device.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}
