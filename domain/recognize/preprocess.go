package recognize

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Input normalization. Every caller of a Recognizer must feed images through
// Preprocess; the steps and their order are part of the weights' contract:
//
//  1. grayscale
//  2. min-max rescale to the full range
//  3. resize to ModelHeight preserving aspect
//  4. pad (or right-crop) to ModelWidth on a black canvas
//
// The result is a CHW float32 tensor with C=1 and values in [0,1].

// Preprocess normalizes img into a 1×ModelHeight×ModelWidth float32 tensor.
func Preprocess(img image.Image) []float32 {
	gray := imaging.Grayscale(img)

	// Min-max rescale over the crop itself, before any padding exists, so
	// the field's own background level stretches to zero rather than
	// riding on the canvas black. A flat crop maps to all zeros.
	lo, hi := uint8(255), uint8(0)
	for i := 0; i < len(gray.Pix); i += 4 {
		v := gray.Pix[i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi > lo {
		scale := 255.0 / float64(hi-lo)
		for i := 0; i < len(gray.Pix); i += 4 {
			v := uint8(float64(gray.Pix[i]-lo)*scale + 0.5)
			gray.Pix[i], gray.Pix[i+1], gray.Pix[i+2] = v, v, v
		}
	} else {
		for i := 0; i < len(gray.Pix); i += 4 {
			gray.Pix[i], gray.Pix[i+1], gray.Pix[i+2] = 0, 0, 0
		}
	}

	// Resize to the model height, width following the aspect ratio.
	b := gray.Bounds()
	w := b.Dx() * ModelHeight / max(b.Dy(), 1)
	if w < 1 {
		w = 1
	}
	if w > ModelWidth {
		w = ModelWidth
	}
	resized := imaging.Resize(gray, w, ModelHeight, imaging.Linear)

	// Paste left-aligned onto a black canvas of the fixed model width.
	canvas := imaging.New(ModelWidth, ModelHeight, color.NRGBA{0, 0, 0, 255})
	canvas = imaging.Paste(canvas, resized, image.Pt(0, 0))

	data := make([]float32, ModelHeight*ModelWidth)
	for y := 0; y < ModelHeight; y++ {
		for x := 0; x < ModelWidth; x++ {
			data[y*ModelWidth+x] = float32(canvas.NRGBAAt(x, y).R) / 255
		}
	}
	return data
}
