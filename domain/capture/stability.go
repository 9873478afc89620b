package capture

import "image"

// Frame-stability check. A capture taken mid-transition (the pane still
// fading in after a selection click) produces garbage recognitions, so the
// scanner re-captures until two consecutive frames agree.

const (
	// pixelDiffThreshold is the per-channel delta below which two pixels
	// count as identical.
	pixelDiffThreshold = 8
	// stableRatio is the fraction of sampled pixels that must be identical
	// for two frames to count as stable.
	stableRatio = 0.995
	// sampleStride keeps the comparison cheap on large panes.
	sampleStride = 2
)

// FramesStable reports whether two same-sized frames are pixel-stable.
// Frames of different sizes are never stable.
func FramesStable(a, b *image.RGBA) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Bounds().Size() != b.Bounds().Size() {
		return false
	}
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	var same, total int
	for y := 0; y < h; y += sampleStride {
		ao := a.PixOffset(a.Bounds().Min.X, a.Bounds().Min.Y+y)
		bo := b.PixOffset(b.Bounds().Min.X, b.Bounds().Min.Y+y)
		for x := 0; x < w; x += sampleStride {
			i := ao + x*4
			j := bo + x*4
			if absDiff(a.Pix[i], b.Pix[j]) <= pixelDiffThreshold &&
				absDiff(a.Pix[i+1], b.Pix[j+1]) <= pixelDiffThreshold &&
				absDiff(a.Pix[i+2], b.Pix[j+2]) <= pixelDiffThreshold {
				same++
			}
			total++
		}
	}
	if total == 0 {
		return false
	}
	return float64(same)/float64(total) >= stableRatio
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
