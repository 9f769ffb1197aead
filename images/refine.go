package images

import (
	"github.com/lumapix/studioshot/images/kernels"
)

// Strength selects how aggressively Refine erodes the alpha mask.
type Strength string

const (
	// StrengthLight runs one erosion pass. The right choice for masks
	// that already have clean edges.
	StrengthLight Strength = "light"
	// StrengthMedium runs two erosion passes.
	StrengthMedium Strength = "medium"
	// StrengthHeavy runs three erosion passes, for masks with a wide
	// halo fringe.
	StrengthHeavy Strength = "heavy"
)

// erodePasses maps a strength to its erosion pass count. Unknown
// strengths fall back to medium.
func erodePasses(s Strength) int {
	switch s {
	case StrengthLight:
		return 1
	case StrengthHeavy:
		return 3
	default:
		return 2
	}
}

// Alpha classification and thresholding bounds, on the 0-255 domain.
const (
	// edgeAlphaLow/edgeAlphaHigh bound the open interval of edge
	// (semi-transparent) pixels; above the high bound a pixel counts
	// as solid.
	edgeAlphaLow  = 5
	edgeAlphaHigh = 240
	// killBelow zeroes faint fringe alpha; saturateAbove promotes
	// nearly-opaque alpha to full coverage.
	killBelow     = 8
	saturateAbove = 245
	// featherRadius is the post-erosion smoothing blur.
	featherRadius = 0.5
)

// Refine removes background color bleed and halo fringe from a cutout.
// Four fixed steps, all integer-domain with clamping:
//
//  1. Color decontamination: edge pixels (alpha in (5,240)) are pulled
//     partway toward the mean color of the solid pixels (alpha > 240).
//  2. Hard threshold: alpha < 8 becomes 0, alpha > 245 becomes 255.
//  3. Erosion: a 3x3 minimum filter over alpha, 1-3 passes by strength.
//  4. Feather: Gaussian radius 0.5 over alpha, then the step-2
//     threshold again.
//
// The input is not mutated; a new raster is returned. Fully opaque or
// fully transparent inputs pass through with only threshold effects.
func Refine(r *Raster, strength Strength) *Raster {
	out := r.Clone()

	decontaminate(out)

	alpha := out.AlphaPlane()
	thresholdAlpha(alpha)

	for i := 0; i < erodePasses(strength); i++ {
		alpha = kernels.MinFilter3(alpha, out.Width, out.Height)
	}

	alpha = kernels.GaussianPlane(alpha, out.Width, out.Height, featherRadius)
	thresholdAlpha(alpha)

	// Plane length is ours; the error path is unreachable.
	_ = out.SetAlphaPlane(alpha)
	return out
}

// decontaminate blends edge-pixel color toward the mean solid color.
// The blend deliberately does not normalize: the solid-color term is
// scaled by 0.3 and the retained-color term by 0.7 of the inverse
// blend factor. Keep the formula literal.
func decontaminate(r *Raster) {
	var sumR, sumG, sumB float64
	var solid int
	for i := 0; i < len(r.Pix); i += 4 {
		if r.Pix[i+3] > edgeAlphaHigh {
			sumR += float64(r.Pix[i])
			sumG += float64(r.Pix[i+1])
			sumB += float64(r.Pix[i+2])
			solid++
		}
	}
	if solid == 0 {
		return
	}

	mean := [3]float32{
		float32(sumR / float64(solid)),
		float32(sumG / float64(solid)),
		float32(sumB / float64(solid)),
	}

	for i := 0; i < len(r.Pix); i += 4 {
		a := r.Pix[i+3]
		if a <= edgeAlphaLow || a >= edgeAlphaHigh {
			continue
		}
		bf := float32(a) / 255
		inv := 1 - bf
		for c := 0; c < 3; c++ {
			v := float32(r.Pix[i+c])
			v = v*bf + mean[c]*inv*0.3 + v*inv*0.7
			r.Pix[i+c] = truncByte(v)
		}
	}
}

// thresholdAlpha applies the hard threshold in place.
func thresholdAlpha(plane []uint8) {
	for i, a := range plane {
		if a < killBelow {
			plane[i] = 0
		} else if a > saturateAbove {
			plane[i] = 255
		}
	}
}

// truncByte clamps into [0,255] and truncates the fraction.
func truncByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
