package render

import (
	"image"
	"image/color"
	"log"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/arian/airdrum/internal/kit"
)

// Drawing palette.
var (
	colorWhite   = color.RGBA{255, 255, 255, 0}
	colorBlack   = color.RGBA{20, 20, 20, 0}
	colorYellow  = color.RGBA{255, 255, 0, 0}
	colorRed     = color.RGBA{255, 0, 0, 0}
	colorGreen   = color.RGBA{0, 255, 0, 0}
	colorBlue    = color.RGBA{0, 0, 255, 0}
	colorMenuBtn = color.RGBA{0, 100, 255, 0}
)

// Red-tint blend weights for a struck pad.
const (
	hitImageWeight = 0.7
	hitTintWeight  = 0.3
)

// TrackerRadius is the radius of the centroid marker.
const TrackerRadius = 5

// Overlay draws the drum kit onto frames. Pad artwork is loaded once, sized
// to each pad's bounds.
type Overlay struct {
	images map[kit.PadID]gocv.Mat
}

// NewOverlay loads pad artwork from assetsDir for every pad in the layout.
// Pads whose artwork cannot be loaded get a placeholder; the overlay is
// always usable.
func NewOverlay(layout *kit.Layout, assetsDir string) *Overlay {
	o := &Overlay{
		images: make(map[kit.PadID]gocv.Mat, len(layout.Pads())),
	}

	for _, pad := range layout.Pads() {
		w := pad.Bounds.Dx()
		h := pad.Bounds.Dy()

		path := filepath.Join(assetsDir, "images", padImageFiles[pad.ID])
		mat, err := LoadPadImage(path, w, h)
		if err != nil {
			log.Printf("Pad image for %s unavailable (%v), using placeholder", pad.ID, err)
			mat = PlaceholderImage(w, h)
		}
		o.images[pad.ID] = mat
	}

	return o
}

// Close releases the pad artwork Mats.
func (o *Overlay) Close() {
	for id, mat := range o.images {
		mat.Close()
		delete(o.images, id)
	}
}

// Draw renders every pad onto the frame. active reports whether a pad's
// strike highlight is currently on; struck pads are blended with a red tint
// and their labels invert for visibility.
func (o *Overlay) Draw(frame *gocv.Mat, layout *kit.Layout, active func(kit.PadID) bool) {
	for _, pad := range layout.Pads() {
		isHit := active(pad.ID)
		o.drawPad(frame, pad, isHit)
		drawPadLabel(frame, pad, isHit)
	}

	gocv.PutText(frame, "Press 'B' for Menu", image.Pt(10, 20),
		gocv.FontHersheySimplex, 0.5, colorWhite, 2)
}

// drawPad copies the pad image into its region of the frame, red-tinted
// while the pad's highlight is active.
func (o *Overlay) drawPad(frame *gocv.Mat, pad kit.Pad, isHit bool) {
	img, ok := o.images[pad.ID]
	if !ok {
		return
	}

	region := frame.Region(pad.Bounds)
	defer region.Close()

	if !isHit {
		img.CopyTo(&region)
		return
	}

	tint := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 255, 0),
		img.Rows(), img.Cols(), gocv.MatTypeCV8UC3)
	defer tint.Close()

	blended := gocv.NewMat()
	defer blended.Close()
	gocv.AddWeighted(img, hitImageWeight, tint, hitTintWeight, 0, &blended)
	blended.CopyTo(&region)
}

// drawPadLabel draws the pad name centered in the pad. The crash pad's label
// sits below center so the cymbal artwork stays visible.
func drawPadLabel(frame *gocv.Mat, pad kit.Pad, isHit bool) {
	size := gocv.GetTextSize(pad.Label, gocv.FontHersheySimplex, 1, 2)
	cx := pad.Bounds.Min.X + pad.Bounds.Dx()/2
	cy := pad.Bounds.Min.Y + pad.Bounds.Dy()/2

	y := cy - 30
	if pad.ID == kit.PadCrash {
		y = cy + 30
	}

	textColor := colorRed
	if isHit {
		textColor = color.RGBA{0, 0, 0, 0}
	}

	gocv.PutText(frame, pad.Label, image.Pt(cx-size.X/2, y),
		gocv.FontHersheySimplex, 1, textColor, 2)
}

// DrawTracker marks the tracked object's centroid with a filled dot.
func DrawTracker(frame *gocv.Mat, p image.Point) {
	gocv.Circle(frame, p, TrackerRadius, colorBlue, -1)
}
