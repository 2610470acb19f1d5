package app

import (
	"image"
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/arian/airdrum/internal/capture"
	"github.com/arian/airdrum/internal/kit"
	"github.com/arian/airdrum/internal/vision"
)

// recordingPlayer records which samples were triggered.
type recordingPlayer struct {
	mu     sync.Mutex
	played []string
}

func (p *recordingPlayer) Play(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, name)
}

func (p *recordingPlayer) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.played...)
}

// paintSquare draws a solid blue square centered in the pad's region, large
// enough to clear the default minimum blob area.
func paintSquare(frame *gocv.Mat, bounds image.Rectangle) {
	cx := bounds.Min.X + bounds.Dx()/2
	cy := bounds.Min.Y + bounds.Dy()/2
	for y := cy - 15; y < cy+15; y++ {
		for x := cx - 15; x < cx+15; x++ {
			frame.SetUCharAt(y, x*3+0, 255)
			frame.SetUCharAt(y, x*3+1, 0)
			frame.SetUCharAt(y, x*3+2, 0)
		}
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Config{Width: 640, Height: 480})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestNew_InvalidColorRange(t *testing.T) {
	_, err := New(Config{
		Color: vision.ColorRange{
			Lower: vision.HSV{H: 150},
			Upper: vision.HSV{H: 100, S: 255, V: 255},
		},
	})
	if err == nil {
		t.Error("expected error for inverted color range")
	}
}

func TestApp_ProcessFrame_StrikePipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a := newTestApp(t)

	player := &recordingPlayer{}
	a.SetPlayer(player)

	var events []kit.StrikeEvent
	a.OnStrike(func(ev kit.StrikeEvent) {
		events = append(events, ev)
	})

	kick, _ := a.Layout().Pad(kit.PadKick)

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	paintSquare(&frame, kick.Bounds)

	start := time.Now()

	// First tick: rising edge, one strike.
	ev, struck := a.ProcessFrame(&frame, start, nil)
	if !struck {
		t.Fatal("expected strike on first frame")
	}
	if ev.Pad != kit.PadKick {
		t.Errorf("pad = %s, want %s", ev.Pad, kit.PadKick)
	}

	// Lingering inside the cooldown window: no further strikes.
	for tick := 1; tick < 6; tick++ {
		now := start.Add(time.Duration(tick) * 33 * time.Millisecond)
		if _, struck := a.ProcessFrame(&frame, now, nil); struck {
			t.Errorf("unexpected strike at tick %d inside cooldown", tick)
		}
	}

	// After the cooldown the lingering object strikes again.
	if _, struck := a.ProcessFrame(&frame, start.Add(400*time.Millisecond), nil); !struck {
		t.Error("expected strike after cooldown expiry")
	}

	if got := player.names(); len(got) != 2 || got[0] != "kick-808" || got[1] != "kick-808" {
		t.Errorf("played samples = %v, want two kick-808", got)
	}
	if len(events) != 2 {
		t.Errorf("strike callbacks = %d, want 2", len(events))
	}
}

func TestApp_ProcessFrame_NoDetection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a := newTestApp(t)
	player := &recordingPlayer{}
	a.SetPlayer(player)

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	if _, struck := a.ProcessFrame(&frame, time.Now(), nil); struck {
		t.Error("strike on an all-black frame")
	}
	if len(player.names()) != 0 {
		t.Errorf("samples played with no detection: %v", player.names())
	}
}

func TestApp_ModeTransitions(t *testing.T) {
	a := newTestApp(t)
	mock := capture.NewMockCamera(nil, false)
	a.SetCamera(mock)

	if a.Mode() != ModeMenu {
		t.Errorf("initial mode = %s, want menu", a.Mode())
	}

	a.SetMode(ModePlaying)
	if a.Mode() != ModePlaying {
		t.Errorf("mode = %s, want playing", a.Mode())
	}
	if mock.FPS() != PlayFPS {
		t.Errorf("camera FPS = %d, want %d while playing", mock.FPS(), PlayFPS)
	}

	a.SetMode(ModeMenu)
	if mock.FPS() != MenuFPS {
		t.Errorf("camera FPS = %d, want %d in menu", mock.FPS(), MenuFPS)
	}
}

func TestApp_SetModeResetsCooldowns(t *testing.T) {
	a := newTestApp(t)

	kick, _ := a.Layout().Pad(kit.PadKick)
	center := image.Pt(
		kick.Bounds.Min.X+kick.Bounds.Dx()/2,
		kick.Bounds.Min.Y+kick.Bounds.Dy()/2,
	)

	now := time.Now()
	a.SetMode(ModePlaying)
	if _, struck := a.Hits().Tick(center, true, now); !struck {
		t.Fatal("expected strike")
	}

	// Leaving play clears cooldown state; re-entering allows an immediate
	// strike even within the old window.
	a.SetMode(ModeMenu)
	a.SetMode(ModePlaying)

	if _, struck := a.Hits().Tick(center, true, now.Add(10*time.Millisecond)); !struck {
		t.Error("cooldown carried across play sessions")
	}
}

func TestApp_HandleKey(t *testing.T) {
	a := newTestApp(t)

	if quit := a.handleKey('p'); quit || a.Mode() != ModePlaying {
		t.Errorf("after 'p': mode = %s, quit = %v", a.Mode(), quit)
	}
	if quit := a.handleKey('b'); quit || a.Mode() != ModeMenu {
		t.Errorf("after 'b': mode = %s, quit = %v", a.Mode(), quit)
	}
	if quit := a.handleKey('c'); quit || a.Mode() != ModeCredits {
		t.Errorf("after 'c': mode = %s, quit = %v", a.Mode(), quit)
	}
	if quit := a.handleKey('b'); quit || a.Mode() != ModeMenu {
		t.Errorf("credits 'b': mode = %s, quit = %v", a.Mode(), quit)
	}
	if quit := a.handleKey('q'); !quit {
		t.Error("'q' in menu should quit")
	}

	// Unknown keys do nothing.
	if quit := a.handleKey(-1); quit || a.Mode() != ModeMenu {
		t.Errorf("no-key: mode = %s, quit = %v", a.Mode(), quit)
	}
}

func TestApp_TuneHue(t *testing.T) {
	a := newTestApp(t)
	a.SetMode(ModePlaying)

	before := a.ColorRange()
	a.handleKey(']')
	after := a.ColorRange()

	if after.Lower.H != before.Lower.H+HueTuneStep {
		t.Errorf("lower hue = %v, want %v", after.Lower.H, before.Lower.H+HueTuneStep)
	}

	a.handleKey('[')
	if got := a.ColorRange(); got != before {
		t.Errorf("range after tune up/down = %+v, want original %+v", got, before)
	}
}
