package scan

import "image"

// Star counting. The rarity row renders one to five gold star icons on a
// dark pane. Counting bright-gold column segments is far more reliable than
// pushing an icon strip through a text model.

const (
	// goldMinR/G and goldMaxB bound the star fill color with headroom for
	// compression and scaling artifacts.
	goldMinR = 180
	goldMinG = 120
	goldMaxB = 120
)

// CountStars returns the number of distinct star icons in the crop.
func CountStars(img *image.RGBA) int {
	if img == nil {
		return 0
	}
	b := img.Bounds()
	count := 0
	inStar := false
	for x := b.Min.X; x < b.Max.X; x++ {
		hit := false
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := img.PixOffset(x, y)
			r, g, bl := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
			if r >= goldMinR && g >= goldMinG && bl <= goldMaxB {
				hit = true
				break
			}
		}
		if hit && !inStar {
			count++
		}
		inStar = hit
	}
	return count
}
