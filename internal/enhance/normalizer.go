// Package enhance prepares label photos for text recognition.
package enhance

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	contrastGain   = 1.5
	brightnessBias = -30
)

// Normalize applies the fixed recognition-friendly transform: full
// desaturation followed by a per-channel affine adjustment
// out = 1.5*in - 30, clamped to [0, 255], alpha untouched. Output has
// the same dimensions as the input. The transform is pure and
// deterministic; identical input produces byte-identical output.
func Normalize(img image.Image) *image.NRGBA {
	gray := imaging.Grayscale(img)
	return imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: stretchChannel(c.R),
			G: stretchChannel(c.G),
			B: stretchChannel(c.B),
			A: c.A,
		}
	})
}

func stretchChannel(v uint8) uint8 {
	out := contrastGain*float64(v) + brightnessBias
	if out < 0 {
		return 0
	}
	if out > 255 {
		return 255
	}
	return uint8(out)
}
