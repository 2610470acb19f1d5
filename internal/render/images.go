// Package render draws the drum kit interface onto video frames: pad images
// with strike feedback, the tracking marker, and the menu and credits
// screens.
package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/gift"
	"gocv.io/x/gocv"

	"github.com/arian/airdrum/internal/kit"
)

// padImageFiles maps each pad to its artwork file under the assets images
// directory. Both toms share one image, as in the stock asset pack.
var padImageFiles = map[kit.PadID]string{
	kit.PadKick:  "kick_drum.png",
	kit.PadSnare: "snare_drum.png",
	kit.PadHiHat: "hi_hat.png",
	kit.PadTom1:  "tom.png",
	kit.PadTom2:  "tom.png",
	kit.PadCrash: "crash_cymbal.png",
}

// LoadPadImage loads an image file and resizes it to the target dimensions,
// returning a BGR Mat ready to overlay. The caller owns the Mat.
func LoadPadImage(path string, width, height int) (gocv.Mat, error) {
	f, err := os.Open(path)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("decode %s: %w", path, err)
	}

	g := gift.New(gift.Resize(width, height, gift.LanczosResampling))
	resized := image.NewRGBA(g.Bounds(src.Bounds()))
	g.Draw(resized, src)

	mat, err := gocv.ImageToMatRGB(resized)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("convert %s: %w", path, err)
	}

	return mat, nil
}

// PlaceholderImage builds a dark Mat with a "NO IMAGE" marker, used when pad
// artwork is missing or unreadable.
func PlaceholderImage(width, height int) gocv.Mat {
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)

	text := "NO IMAGE"
	size := gocv.GetTextSize(text, gocv.FontHersheySimplex, 0.5, 1)
	org := image.Pt(width/2-size.X/2, height/2+size.Y/2)
	gocv.PutText(&mat, text, org, gocv.FontHersheySimplex, 0.5, colorYellow, 1)

	return mat
}
