package images

import (
	"math"

	"github.com/nfnt/resize"
)

// Placement describes where a foreground lands on the output canvas.
type Placement struct {
	// ScaledW, ScaledH is the foreground size after the fit.
	ScaledW, ScaledH int
	// X, Y is the paste position of the foreground's top-left corner.
	X, Y int
}

// FitWithin computes the scale-to-fit placement of a (fw,fh) foreground
// on a (tw,th) canvas with a padding fraction reserved on each side.
//
// The inner box is floor(tw*(1-2p)) x floor(th*(1-2p)). The foreground
// shrinks to fit it preserving aspect ratio but is never enlarged: a
// foreground that already fits keeps its size (thumbnail semantics).
// Centering uses integer floor division.
func FitWithin(fw, fh, tw, th int, padding float64) Placement {
	innerW := int(float64(tw) * (1 - 2*padding))
	innerH := int(float64(th) * (1 - 2*padding))

	scale := 1.0
	if fw > innerW {
		scale = float64(innerW) / float64(fw)
	}
	if s := float64(innerH) / float64(fh); fh > innerH && s < scale {
		scale = s
	}

	sw := int(math.Floor(float64(fw)*scale + 0.5))
	sh := int(math.Floor(float64(fh)*scale + 0.5))
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}

	return Placement{
		ScaledW: sw,
		ScaledH: sh,
		X:       (tw - sw) / 2,
		Y:       (th - sh) / 2,
	}
}

// ScaleToFit resamples the foreground to the placement size with a
// Lanczos filter. A placement that keeps the original size returns a
// plain copy so the stage still owns its buffer.
func ScaleToFit(r *Raster, p Placement) (*Raster, error) {
	if p.ScaledW == r.Width && p.ScaledH == r.Height {
		return r.Clone(), nil
	}
	scaled := resize.Resize(uint(p.ScaledW), uint(p.ScaledH), r.ToNRGBA(), resize.Lanczos3)
	return FromImage(scaled)
}
