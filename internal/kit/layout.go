// Package kit models the virtual drum kit: the fixed pad layout overlaid on
// the video frame and the per-pad strike state machine that turns tracked
// centroid positions into discrete strike events.
package kit

import (
	"errors"
	"image"
)

// ErrEmptyLayout is returned when a layout is constructed with no pads.
var ErrEmptyLayout = errors.New("layout has no pads")

// PadID identifies a single drum pad.
type PadID string

// Pad identifiers for the stock kit.
const (
	PadKick  PadID = "kick"
	PadSnare PadID = "snare"
	PadHiHat PadID = "hihat"
	PadTom1  PadID = "tom1"
	PadTom2  PadID = "tom2"
	PadCrash PadID = "crash"
)

// Layout geometry constants, relative to the target frame size.
const (
	// PadRowHeight is the height of the bottom pad row in pixels.
	PadRowHeight = 100
	// CrashWidthDivisor sets the crash pad width to frame width / divisor.
	CrashWidthDivisor = 4
)

// Pad is a fixed screen region bound to one instrument sound. Bounds use
// image coordinates within the frame; Sound names the sample to trigger.
type Pad struct {
	ID     PadID
	Label  string
	Sound  string
	Bounds image.Rectangle
}

// Layout is a static set of pads positioned for a given frame size. It is
// built once at startup (or rebuilt on a frame size change) and never mutated
// per frame.
type Layout struct {
	pads []Pad
	byID map[PadID]int
}

// NewLayout creates a layout from the given pads. Pad order is significant:
// when regions overlap, HitTest resolves to the earliest declared pad. A
// layout with zero pads is an invalid configuration.
func NewLayout(pads []Pad) (*Layout, error) {
	if len(pads) == 0 {
		return nil, ErrEmptyLayout
	}

	byID := make(map[PadID]int, len(pads))
	for i, p := range pads {
		byID[p.ID] = i
	}

	return &Layout{
		pads: append([]Pad(nil), pads...),
		byID: byID,
	}, nil
}

// DefaultLayout builds the stock six-pad kit for a frame of the given size:
// five equal-width pads along the bottom edge (Kick, Snare, Hi-Hat, Tom1,
// Tom2) and a Crash pad in the top-left corner.
func DefaultLayout(width, height int) (*Layout, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("layout: frame dimensions must be positive")
	}

	bottomRow := []struct {
		id    PadID
		label string
		sound string
	}{
		{PadKick, "Kick", "kick-808"},
		{PadSnare, "Snare", "snare-808"},
		{PadHiHat, "Hi-Hat", "hihat-808"},
		{PadTom1, "Tom1", "tom-lofi"},
		{PadTom2, "Tom2", "tom-rototom"},
	}

	padWidth := width / len(bottomRow)
	top := height - PadRowHeight

	pads := make([]Pad, 0, len(bottomRow)+1)
	for i, d := range bottomRow {
		x := i * padWidth
		pads = append(pads, Pad{
			ID:     d.id,
			Label:  d.label,
			Sound:  d.sound,
			Bounds: image.Rect(x, top, x+padWidth, height),
		})
	}

	pads = append(pads, Pad{
		ID:     PadCrash,
		Label:  "Crash",
		Sound:  "crash-808",
		Bounds: image.Rect(0, 0, width/CrashWidthDivisor, PadRowHeight),
	})

	return NewLayout(pads)
}

// HitTest returns the pad whose region contains the point. When the point
// lies in more than one pad, the earliest declared pad wins. The boolean is
// false when the point is outside every pad.
func (l *Layout) HitTest(p image.Point) (PadID, bool) {
	for _, pad := range l.pads {
		if p.In(pad.Bounds) {
			return pad.ID, true
		}
	}
	return "", false
}

// Pads returns the pads in declaration (priority) order.
func (l *Layout) Pads() []Pad {
	return l.pads
}

// Pad returns the pad with the given ID.
func (l *Layout) Pad(id PadID) (Pad, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Pad{}, false
	}
	return l.pads[i], true
}
