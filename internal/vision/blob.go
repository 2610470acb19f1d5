package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// DefaultMinArea is the minimum blob size in pixels required for a
// detection. Smaller regions are treated as noise.
const DefaultMinArea = 500

// Detection is the centroid of the largest qualifying blob in a mask, plus
// its pixel count as a size/confidence signal.
type Detection struct {
	Center image.Point
	Area   int
}

// Locator extracts the largest connected region from a binary mask.
type Locator struct {
	minArea int
}

// NewLocator creates a Locator with the given minimum blob area. Values less
// than or equal to 0 fall back to DefaultMinArea.
func NewLocator(minArea int) *Locator {
	if minArea <= 0 {
		minArea = DefaultMinArea
	}
	return &Locator{minArea: minArea}
}

// MinArea returns the configured minimum blob area.
func (l *Locator) MinArea() int {
	return l.minArea
}

// Locate finds connected regions of set pixels in the mask (8-connectivity),
// picks the one with the greatest pixel count, and returns its area-weighted
// centroid and area. The boolean is false when the mask is empty or no region
// reaches the minimum area; that is a normal per-tick outcome, not an error.
//
// Ties between equally sized regions resolve to the region labeled first in
// row-major scan order, so results are deterministic for a given mask.
func (l *Locator) Locate(mask *gocv.Mat) (Detection, bool) {
	if mask == nil || mask.Empty() {
		return Detection{}, false
	}

	labels := gocv.NewMat()
	defer labels.Close()
	stats := gocv.NewMat()
	defer stats.Close()
	centroids := gocv.NewMat()
	defer centroids.Close()

	count := gocv.ConnectedComponentsWithStats(*mask, &labels, &stats, &centroids)

	// Label 0 is the background; scan the rest for the largest region.
	best := -1
	bestArea := 0
	for label := 1; label < count; label++ {
		area := int(stats.GetIntAt(label, int(gocv.CCStatArea)))
		if area > bestArea {
			best = label
			bestArea = area
		}
	}

	if best < 0 || bestArea < l.minArea {
		return Detection{}, false
	}

	cx := centroids.GetDoubleAt(best, 0)
	cy := centroids.GetDoubleAt(best, 1)

	center := image.Pt(int(cx+0.5), int(cy+0.5))
	center = clampToBounds(center, mask.Cols(), mask.Rows())

	return Detection{Center: center, Area: bestArea}, true
}

// clampToBounds keeps a point inside a width x height grid. The component
// centroid already lies inside the mask; this guards the rounding at the
// right and bottom edges.
func clampToBounds(p image.Point, width, height int) image.Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.X >= width {
		p.X = width - 1
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y >= height {
		p.Y = height - 1
	}
	return p
}
