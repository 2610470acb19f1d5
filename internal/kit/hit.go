package kit

import (
	"image"
	"time"

	"github.com/google/uuid"
)

// DefaultCooldown is the per-pad refractory period after a strike. It is
// wall-clock based so behavior does not depend on the capture frame rate.
const DefaultCooldown = 300 * time.Millisecond

// StrikeEvent records the tracked object entering a pad while that pad was
// idle. Events are produced at most once per pad per cooldown window and are
// meant to be consumed immediately (play the sound, log the hit), not
// retained.
type StrikeEvent struct {
	ID  string
	Pad PadID
	At  time.Time
}

// Detector is the per-pad strike state machine. Each pad is either idle or
// in cooldown until some instant; a strike fires only when the centroid
// resolves to an idle pad. Lingering on a pad, or leaving and re-entering it
// before its cooldown expires, emits nothing — the cooldown is fixed
// duration, bound to the pad, and never refreshed by continued presence.
//
// Detector is not safe for concurrent use; the frame loop calls Tick once
// per captured frame with a monotonic clock reading taken for that tick.
type Detector struct {
	layout        *Layout
	cooldown      time.Duration
	cooldownUntil map[PadID]time.Time
}

// NewDetector creates a Detector over the given layout. A cooldown of 0 or
// less falls back to DefaultCooldown.
func NewDetector(layout *Layout, cooldown time.Duration) (*Detector, error) {
	if layout == nil || len(layout.pads) == 0 {
		return nil, ErrEmptyLayout
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Detector{
		layout:        layout,
		cooldown:      cooldown,
		cooldownUntil: make(map[PadID]time.Time, len(layout.pads)),
	}, nil
}

// Cooldown returns the configured per-pad cooldown duration.
func (d *Detector) Cooldown() time.Duration {
	return d.cooldown
}

// Tick advances the state machine by one frame. present reports whether a
// qualifying blob was found this tick; centroid is its position when present.
// now is the monotonic clock reading for this tick.
//
// At most one strike can fire per tick, since a single centroid resolves to
// at most one pad. Pads in cooldown expire purely by the passage of time;
// no input is required for them to return to idle.
func (d *Detector) Tick(centroid image.Point, present bool, now time.Time) (StrikeEvent, bool) {
	if !present {
		return StrikeEvent{}, false
	}

	id, hit := d.layout.HitTest(centroid)
	if !hit {
		return StrikeEvent{}, false
	}

	if now.Before(d.cooldownUntil[id]) {
		// Pad is in cooldown: no event, and the window is not extended.
		return StrikeEvent{}, false
	}

	d.cooldownUntil[id] = now.Add(d.cooldown)

	return StrikeEvent{
		ID:  uuid.NewString(),
		Pad: id,
		At:  now,
	}, true
}

// Active reports whether the pad is currently in its cooldown window. The
// renderer uses this as the highlight state; it decays on its own as time
// passes.
func (d *Detector) Active(id PadID, now time.Time) bool {
	return now.Before(d.cooldownUntil[id])
}

// Reset returns every pad to idle. Used when leaving play mode so stale
// cooldowns do not carry into the next session.
func (d *Detector) Reset() {
	for id := range d.cooldownUntil {
		delete(d.cooldownUntil, id)
	}
}
