package app

import (
	"errors"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/arian/airdrum/internal/capture"
	"github.com/arian/airdrum/internal/kit"
	"github.com/arian/airdrum/internal/render"
	"github.com/arian/airdrum/internal/vision"
)

// WindowTitle is the display window name.
const WindowTitle = "Air Drum Kit"

// Run opens the camera and the display window and drives the main loop
// until the user quits. One iteration handles exactly one captured frame:
// mirror, mode dispatch, draw, key handling.
func (a *App) Run() error {
	if err := a.Camera().Open(); err != nil {
		return err
	}
	defer a.Camera().Close()

	a.Camera().SetFPS(MenuFPS)

	overlay := render.NewOverlay(a.layout, a.config.AssetsDir)
	defer overlay.Close()

	window := gocv.NewWindow(WindowTitle)
	defer window.Close()
	window.ResizeWindow(a.config.Width, a.config.Height)

	for {
		frame, err := a.Camera().ReadFrame()
		if err != nil {
			if errors.Is(err, capture.ErrCameraNotOpen) {
				return err
			}
			log.Printf("Error reading frame: %v", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}

		if a.config.Mirror {
			gocv.Flip(*frame, frame, 1)
		}

		switch a.Mode() {
		case ModeMenu:
			render.DrawMenu(frame)
		case ModeCredits:
			render.DrawCredits(frame)
		case ModePlaying:
			a.ProcessFrame(frame, time.Now(), overlay)
		}

		window.IMShow(*frame)
		key := window.WaitKey(1)
		frame.Close()

		if quit := a.handleKey(key); quit {
			return nil
		}
	}
}

// ProcessFrame runs one tick of the tracking pipeline on the frame:
// segment the configured color, locate the largest blob, feed its centroid
// to the strike detector, then draw the kit overlay and tracking marker.
// Returns the strike fired this tick, if any.
//
// A frame with no trackable object is a normal outcome; pads in cooldown
// still expire by wall clock regardless of what this tick saw.
func (a *App) ProcessFrame(frame *gocv.Mat, now time.Time, overlay *render.Overlay) (kit.StrikeEvent, bool) {
	mask := vision.Segment(frame, a.ColorRange())
	defer mask.Close()

	det, found := a.locator.Locate(&mask)

	event, struck := a.hits.Tick(det.Center, found, now)
	if struck {
		a.fireStrike(event)
	}

	if overlay != nil {
		overlay.Draw(frame, a.layout, func(id kit.PadID) bool {
			return a.hits.Active(id, now)
		})
		if found {
			render.DrawTracker(frame, det.Center)
		}
	}

	return event, struck
}

// fireStrike triggers the pad's sample and notifies the strike callback.
func (a *App) fireStrike(event kit.StrikeEvent) {
	a.mu.RLock()
	player := a.player
	onStrike := a.onStrike
	a.mu.RUnlock()

	pad, ok := a.layout.Pad(event.Pad)
	if ok && player != nil {
		player.Play(pad.Sound)
	}

	log.Printf("Strike %s on %s", event.ID, event.Pad)

	if onStrike != nil {
		onStrike(event)
	}
}

// handleKey applies one key press against the current mode and reports
// whether the application should quit.
func (a *App) handleKey(key int) bool {
	switch a.Mode() {
	case ModeMenu:
		switch key {
		case 'p':
			a.SetMode(ModePlaying)
		case 'c':
			a.SetMode(ModeCredits)
		case 'q':
			return true
		}

	case ModeCredits:
		switch key {
		case 'b':
			a.SetMode(ModeMenu)
		case 'q':
			return true
		}

	case ModePlaying:
		switch key {
		case 'b':
			a.SetMode(ModeMenu)
		case '[':
			a.TuneHue(-HueTuneStep)
			log.Printf("Hue range tuned down: %+v", a.ColorRange())
		case ']':
			a.TuneHue(HueTuneStep)
			log.Printf("Hue range tuned up: %+v", a.ColorRange())
		case 'q':
			return true
		}
	}

	return false
}
