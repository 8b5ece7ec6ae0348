package enhance

import (
	"image"
	"image/draw"

	"gonum.org/v1/gonum/stat"
)

// Quality is an advisory pre-recognition assessment of a label photo.
// It only drives warnings; a poor photo still goes through the pipeline.
type Quality struct {
	LaplacianVar float64
	AvgLuminance float64
	Blurry       bool
	TooDark      bool
	TooBright    bool
}

const (
	blurThreshold   = 100.0
	darkThreshold   = 40.0
	brightThreshold = 220.0
)

// Warnings lists human-readable notices for the detected issues.
func (q Quality) Warnings() []string {
	var w []string
	if q.Blurry {
		w = append(w, "image looks blurry, recognition may miss text")
	}
	if q.TooDark {
		w = append(w, "image looks too dark")
	}
	if q.TooBright {
		w = append(w, "image looks too bright")
	}
	return w
}

// CheckQuality computes blur and exposure metrics over the photo.
func CheckQuality(img image.Image) Quality {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)

	variance := laplacianVariance(gray)
	luminance := averageLuminance(gray)

	return Quality{
		LaplacianVar: variance,
		AvgLuminance: luminance,
		Blurry:       variance < blurThreshold,
		TooDark:      luminance < darkThreshold,
		TooBright:    luminance > brightThreshold,
	}
}

func averageLuminance(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return 0
	}
	values := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			values = append(values, float64(gray.GrayAt(x, y).Y))
		}
	}
	return stat.Mean(values, nil)
}

// laplacianVariance measures sharpness; low variance means few edges
// survive the Laplacian kernel, which reads as blur.
func laplacianVariance(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 3 || height < 3 {
		return 0
	}

	// Laplacian kernel: [0, 1, 0; 1, -4, 1; 0, 1, 0]
	responses := make([]float64, 0, (width-2)*(height-2))
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			center := float64(gray.GrayAt(x, y).Y)
			top := float64(gray.GrayAt(x, y-1).Y)
			bottom := float64(gray.GrayAt(x, y+1).Y)
			left := float64(gray.GrayAt(x-1, y).Y)
			right := float64(gray.GrayAt(x+1, y).Y)

			responses = append(responses, -4*center+top+bottom+left+right)
		}
	}

	if len(responses) < 2 {
		return 0
	}
	return stat.Variance(responses, nil)
}
