package layout

import (
	"image"

	"github.com/artiscan/artiscan/domain/window"
)

// reference is a calibrated coordinate table at one reference resolution.
// Field rectangles are pane-relative; the grid block is window-relative.
// Calibration numbers come from measured screenshots per aspect family.
type reference struct {
	w, h int

	pane   image.Rectangle
	fields map[Field]image.Rectangle

	gridOrigin        image.Point
	cellW, cellH      int
	gapX, gapY        int
	rows, cols        int
	scrollTicksPerRow int
}

// paneFields is shared by every family: inside the pane the layout is
// identical, only the pane's placement in the window moves.
var paneFields = map[Field]image.Rectangle{
	FieldTitle:         image.Rect(10, 30, 322, 62),
	FieldMainStatName:  image.Rect(20, 170, 200, 196),
	FieldMainStatValue: image.Rect(20, 200, 200, 236),
	FieldStars:         image.Rect(20, 242, 190, 272),
	FieldLevel:         image.Rect(25, 292, 85, 316),
	FieldSubStat1:      image.Rect(35, 330, 310, 356),
	FieldSubStat2:      image.Rect(35, 362, 310, 388),
	FieldSubStat3:      image.Rect(35, 394, 310, 420),
	FieldSubStat4:      image.Rect(35, 426, 310, 452),
	FieldEquip:         image.Rect(100, 776, 322, 806),
}

func makeRef(w, h int) reference {
	// Pane anchored to the right edge; grid block anchored to the left.
	// Column count follows the width left of the pane, so narrow families
	// show fewer columns and the grid never runs under the pane.
	const (
		cellW, cellH = 104, 126
		gapX, gapY   = 21, 21
		gridX        = 100
	)
	paneMinX := w - 430
	cols := (paneMinX - gridX - gapX) / (cellW + gapX)
	return reference{
		w: w, h: h,
		pane:              image.Rect(paneMinX, 45, w-100, 855),
		fields:            paneFields,
		gridOrigin:        image.Pt(gridX, 186),
		cellW:             cellW,
		cellH:             cellH,
		gapX:              gapX,
		gapY:              gapY,
		rows:              5,
		cols:              cols,
		scrollTicksPerRow: 5,
	}
}

// references holds one calibrated table per supported aspect family, all
// normalized to 900 reference lines so the vertical metrics coincide.
var references = map[window.AspectClass]reference{
	window.Aspect16x9:  makeRef(1600, 900),
	window.Aspect8x5:   makeRef(1440, 900),
	window.Aspect4x3:   makeRef(1200, 900),
	window.Aspect43x18: makeRef(2150, 900),
	window.Aspect7x3:   makeRef(2100, 900),
}
