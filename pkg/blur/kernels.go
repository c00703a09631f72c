package blur

import (
	"image"

	bildblur "github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/gift"
)

// gaussianAlgorithm uses bild's Gaussian blur. bild parallelises over
// GOMAXPROCS on its own, so Request.NumThreads is not consulted.
type gaussianAlgorithm struct{}

func (gaussianAlgorithm) Blur(src *image.RGBA, req Request) (*image.RGBA, error) {
	return bildblur.Gaussian(src, float64(req.Radius)), nil
}

// boxAlgorithm uses bild's box blur. Like gaussianAlgorithm it ignores
// Request.NumThreads.
type boxAlgorithm struct{}

func (boxAlgorithm) Blur(src *image.RGBA, req Request) (*image.RGBA, error) {
	return bildblur.Box(src, float64(req.Radius)), nil
}

// meanAlgorithm uses gift's disk mean filter. A single requested thread
// disables gift's parallelisation.
type meanAlgorithm struct{}

func (meanAlgorithm) Blur(src *image.RGBA, req Request) (*image.RGBA, error) {
	g := gift.New(gift.Mean(2*req.Radius+1, true))
	g.SetParallelization(req.NumThreads != 1)
	dst := image.NewRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst, nil
}
