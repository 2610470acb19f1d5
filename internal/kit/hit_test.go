package kit

import (
	"errors"
	"image"
	"testing"
	"time"
)

// snareLayout is a single 100x100 pad at (50,50)-(150,150).
func snareLayout(t *testing.T) *Layout {
	t.Helper()
	l, err := NewLayout([]Pad{
		{ID: PadSnare, Label: "Snare", Sound: "snare-808", Bounds: image.Rect(50, 50, 150, 150)},
	})
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}
	return l
}

func TestNewDetector(t *testing.T) {
	l := snareLayout(t)

	d, err := NewDetector(l, 0)
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}
	if d.Cooldown() != DefaultCooldown {
		t.Errorf("Cooldown() = %v, want %v", d.Cooldown(), DefaultCooldown)
	}

	if _, err := NewDetector(nil, time.Second); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("NewDetector(nil) error = %v, want ErrEmptyLayout", err)
	}
}

func TestDetector_RisingEdge(t *testing.T) {
	d, err := NewDetector(snareLayout(t), 300*time.Millisecond)
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}

	start := time.Now()
	inside := image.Pt(110, 110)

	// Holding the centroid inside the pad for N consecutive ticks within
	// the cooldown window yields exactly one strike.
	strikes := 0
	for tick := 0; tick < 8; tick++ {
		now := start.Add(time.Duration(tick) * 33 * time.Millisecond)
		if _, struck := d.Tick(inside, true, now); struck {
			strikes++
		}
	}

	if strikes != 1 {
		t.Errorf("strikes = %d, want 1 for a lingering centroid", strikes)
	}
}

func TestDetector_CooldownExpiry(t *testing.T) {
	// Strike at t=0, nothing at t=100ms, a second strike at t=350ms once
	// the 300ms cooldown has passed.
	d, err := NewDetector(snareLayout(t), 300*time.Millisecond)
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}

	start := time.Now()
	inside := image.Pt(110, 110)

	ev, struck := d.Tick(inside, true, start)
	if !struck {
		t.Fatal("expected strike at t=0")
	}
	if ev.Pad != PadSnare {
		t.Errorf("pad = %s, want %s", ev.Pad, PadSnare)
	}
	if !ev.At.Equal(start) {
		t.Errorf("event time = %v, want %v", ev.At, start)
	}
	if ev.ID == "" {
		t.Error("event ID empty")
	}

	if _, struck := d.Tick(inside, true, start.Add(100*time.Millisecond)); struck {
		t.Error("unexpected strike at t=100ms, inside cooldown")
	}

	second, struck := d.Tick(inside, true, start.Add(350*time.Millisecond))
	if !struck {
		t.Fatal("expected strike at t=350ms, after cooldown")
	}
	if second.ID == ev.ID {
		t.Error("second strike reused the first event's ID")
	}
}

func TestDetector_LeaveAndReenterWithinCooldown(t *testing.T) {
	// Cooldown is pad-bound and time-bound, not presence-bound: leaving
	// the pad and re-entering before expiry must not retrigger.
	d, err := NewDetector(snareLayout(t), 300*time.Millisecond)
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}

	start := time.Now()
	inside := image.Pt(110, 110)
	outside := image.Pt(300, 300)

	if _, struck := d.Tick(inside, true, start); !struck {
		t.Fatal("expected initial strike")
	}
	if _, struck := d.Tick(outside, true, start.Add(50*time.Millisecond)); struck {
		t.Error("strike outside every pad")
	}
	if _, struck := d.Tick(inside, true, start.Add(100*time.Millisecond)); struck {
		t.Error("early re-entry retriggered inside the cooldown window")
	}
}

func TestDetector_AbsentCentroid(t *testing.T) {
	d, err := NewDetector(snareLayout(t), 300*time.Millisecond)
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}

	now := time.Now()
	if _, struck := d.Tick(image.Point{}, false, now); struck {
		t.Error("strike without a detection")
	}

	// Cooldown still expires with no input: strike, wait past expiry with
	// absent centroids, then re-enter.
	inside := image.Pt(110, 110)
	if _, struck := d.Tick(inside, true, now); !struck {
		t.Fatal("expected initial strike")
	}
	d.Tick(image.Point{}, false, now.Add(150*time.Millisecond))
	if _, struck := d.Tick(inside, true, now.Add(400*time.Millisecond)); !struck {
		t.Error("expected strike after cooldown expired during absence")
	}
}

func TestDetector_IndependentPads(t *testing.T) {
	l, err := NewLayout([]Pad{
		{ID: "left", Bounds: image.Rect(0, 0, 100, 100)},
		{ID: "right", Bounds: image.Rect(100, 0, 200, 100)},
	})
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}
	d, err := NewDetector(l, 300*time.Millisecond)
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}

	start := time.Now()

	if _, struck := d.Tick(image.Pt(50, 50), true, start); !struck {
		t.Fatal("expected strike on left pad")
	}

	// The right pad is idle even while the left pad is cooling down.
	ev, struck := d.Tick(image.Pt(150, 50), true, start.Add(50*time.Millisecond))
	if !struck {
		t.Fatal("expected strike on right pad during left pad's cooldown")
	}
	if ev.Pad != "right" {
		t.Errorf("pad = %s, want right", ev.Pad)
	}
}

func TestDetector_ActiveHighlight(t *testing.T) {
	d, err := NewDetector(snareLayout(t), 300*time.Millisecond)
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}

	start := time.Now()

	if d.Active(PadSnare, start) {
		t.Error("pad active before any strike")
	}

	d.Tick(image.Pt(110, 110), true, start)

	if !d.Active(PadSnare, start.Add(100*time.Millisecond)) {
		t.Error("pad not active during cooldown")
	}
	if d.Active(PadSnare, start.Add(301*time.Millisecond)) {
		t.Error("highlight did not decay after cooldown")
	}
}

func TestDetector_Reset(t *testing.T) {
	d, err := NewDetector(snareLayout(t), time.Hour)
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}

	start := time.Now()
	inside := image.Pt(110, 110)

	d.Tick(inside, true, start)
	d.Reset()

	if d.Active(PadSnare, start.Add(time.Millisecond)) {
		t.Error("pad still active after Reset")
	}
	if _, struck := d.Tick(inside, true, start.Add(time.Millisecond)); !struck {
		t.Error("expected strike immediately after Reset")
	}
}
