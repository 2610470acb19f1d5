package render

import (
	"image"

	"gocv.io/x/gocv"
)

// menuButton is one selectable entry on the main menu.
type menuButton struct {
	label   string
	primary bool
}

var menuButtons = []menuButton{
	{label: "PLAY DRUMS (P)", primary: true},
	{label: "CREDITS (C)"},
	{label: "EXIT (Q)"},
}

// Menu geometry, relative to frame center.
const (
	buttonHalfWidth = 150
	buttonHeight    = 70
	buttonSpacing   = 110
	menuFirstOffset = -100
)

// DrawMenu paints the main menu over the frame.
func DrawMenu(frame *gocv.Mat) {
	w := frame.Cols()
	h := frame.Rows()

	gocv.Rectangle(frame, image.Rect(0, 0, w, h), colorBlack, -1)

	title := "AIR DRUM KIT"
	gocv.PutText(frame, title, image.Pt(w/2-150, h/2-150),
		gocv.FontHersheySimplex, 1.5, colorYellow, 3)

	y := h/2 + menuFirstOffset
	for _, btn := range menuButtons {
		rect := image.Rect(w/2-buttonHalfWidth, y, w/2+buttonHalfWidth, y+buttonHeight)

		fill := colorMenuBtn
		if btn.primary {
			fill = colorGreen
		}
		gocv.Rectangle(frame, rect, fill, -1)
		gocv.Rectangle(frame, rect, colorWhite, 3)

		size := gocv.GetTextSize(btn.label, gocv.FontHersheySimplex, 1, 2)
		textX := rect.Min.X + rect.Dx()/2 - size.X/2
		gocv.PutText(frame, btn.label, image.Pt(textX, rect.Max.Y-25),
			gocv.FontHersheySimplex, 1, colorBlack, 2)

		y += buttonSpacing
	}
}

var creditsLines = []string{
	"AIR DRUM KIT",
	"",
	"Developed by Arian Khademolghorani",
	"Computer Vision: GoCV / OpenCV",
	"Sound Engine: beep",
	"Sound Samples: 99Sounds",
	"Tracking Method: HSV Color Filtering",
	"",
	"Press 'B' to go back to the menu.",
}

// DrawCredits paints the credits screen over the frame.
func DrawCredits(frame *gocv.Mat) {
	w := frame.Cols()
	h := frame.Rows()

	gocv.Rectangle(frame, image.Rect(0, 0, w, h), colorBlack, -1)

	gocv.PutText(frame, "CREDITS", image.Pt(w/2-100, 50),
		gocv.FontHersheySimplex, 1.2, colorYellow, 3)

	y := 120
	for _, line := range creditsLines {
		gocv.PutText(frame, line, image.Pt(w/4, y),
			gocv.FontHersheySimplex, 0.7, colorWhite, 2)
		y += 40
	}
}
