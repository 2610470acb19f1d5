// Package vision provides color-based object tracking using GoCV (OpenCV):
// HSV segmentation of a target color range and centroid extraction of the
// largest matching blob.
package vision

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Segmentation constants
const (
	// MedianBlurKernel is the kernel size used to denoise the binary mask.
	MedianBlurKernel = 5
	// MaxHue is the upper limit of OpenCV's hue channel.
	MaxHue = 179
	// MaxChannel is the upper limit of the saturation and value channels.
	MaxChannel = 255
)

// HSV is a single point in hue/saturation/value space using OpenCV ranges
// (hue 0-179, saturation and value 0-255).
type HSV struct {
	H float64
	S float64
	V float64
}

// ColorRange is an inclusive lower/upper bound pair in HSV space describing
// the appearance of the tracked object. It is configuration, not per-frame
// state; callers pass it explicitly into Segment on every call.
type ColorRange struct {
	Lower HSV
	Upper HSV
}

// DefaultBlueRange returns the strict blue range used for the stock tracking
// object (a blue drumstick or marker).
func DefaultBlueRange() ColorRange {
	return ColorRange{
		Lower: HSV{H: 100, S: 150, V: 100},
		Upper: HSV{H: 120, S: 255, V: 255},
	}
}

// Validate checks that every channel's lower bound does not exceed its upper
// bound and that all values fall inside OpenCV's HSV ranges. A violation is a
// programmer error and is reported at configuration time, never per frame.
func (r ColorRange) Validate() error {
	if r.Lower.H > r.Upper.H || r.Lower.S > r.Upper.S || r.Lower.V > r.Upper.V {
		return fmt.Errorf("color range: lower bound exceeds upper bound (%+v > %+v)", r.Lower, r.Upper)
	}
	if r.Lower.H < 0 || r.Upper.H > MaxHue {
		return fmt.Errorf("color range: hue out of [0,%d]: %v-%v", MaxHue, r.Lower.H, r.Upper.H)
	}
	if r.Lower.S < 0 || r.Upper.S > MaxChannel {
		return fmt.Errorf("color range: saturation out of [0,%d]: %v-%v", MaxChannel, r.Lower.S, r.Upper.S)
	}
	if r.Lower.V < 0 || r.Upper.V > MaxChannel {
		return fmt.Errorf("color range: value out of [0,%d]: %v-%v", MaxChannel, r.Lower.V, r.Upper.V)
	}
	return nil
}

// ShiftHue returns a copy of the range with both hue bounds moved by delta,
// clamped to the valid hue interval. Used for live tuning of the tracked
// color without touching saturation or value.
func (r ColorRange) ShiftHue(delta float64) ColorRange {
	shifted := r
	shifted.Lower.H = clampHue(r.Lower.H + delta)
	shifted.Upper.H = clampHue(r.Upper.H + delta)
	if shifted.Lower.H > shifted.Upper.H {
		shifted.Lower.H = shifted.Upper.H
	}
	return shifted
}

func clampHue(h float64) float64 {
	if h < 0 {
		return 0
	}
	if h > MaxHue {
		return MaxHue
	}
	return h
}

// Segment converts a BGR frame to HSV and returns a binary mask marking the
// pixels whose hue, saturation, and value all fall within the given inclusive
// range. The mask is median-blurred to suppress single-pixel noise. The
// caller owns the returned Mat and must Close it.
//
// Segment is a pure function of the frame and range: it keeps no state
// between calls. A nil or empty frame yields an empty mask, which downstream
// stages treat as "no detection" for this tick.
func Segment(frame *gocv.Mat, r ColorRange) gocv.Mat {
	mask := gocv.NewMat()
	if frame == nil || frame.Empty() {
		return mask
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(*frame, &hsv, gocv.ColorBGRToHSV)

	lower := gocv.NewScalar(r.Lower.H, r.Lower.S, r.Lower.V, 0)
	upper := gocv.NewScalar(r.Upper.H, r.Upper.S, r.Upper.V, 0)
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	gocv.MedianBlur(mask, &mask, MedianBlurKernel)

	return mask
}
