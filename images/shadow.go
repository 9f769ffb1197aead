package images

import (
	"image"

	"github.com/lumapix/studioshot/images/kernels"
)

// ShadowOptions configures the cast half of the grounding shadow. The
// contact half is fixed; see the constants below.
type ShadowOptions struct {
	// Offset displaces the cast shadow from the foreground position.
	Offset image.Point
	// BlurRadius softens the cast shadow.
	BlurRadius float64
	// Opacity scales the cast shadow's alpha, in [0,1].
	Opacity float64
}

// DefaultShadowOptions returns the cast-shadow configuration used by
// the pipeline: a soft shadow falling down and slightly right.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Offset:     image.Pt(6, 14),
		BlurRadius: 22,
		Opacity:    0.35,
	}
}

const (
	// silhouetteThreshold binarizes the foreground alpha into the
	// shadow silhouette.
	silhouetteThreshold = 20
	// Contact shadow parameters are fixed regardless of the cast
	// shadow's options: a tight, slightly darker shadow that grounds
	// the object on the surface.
	contactOffsetX = 2
	contactOffsetY = 4
	contactBlur    = 5
	contactOpacity = 0.4
)

// SynthesizeShadow derives the combined contact+cast shadow layer for
// a foreground pasted at (pasteX,pasteY) on a canvasW x canvasH canvas.
//
// Both sub-shadows reuse one silhouette: the foreground alpha
// binarized at the silhouette threshold. Each silhouette is placed on
// a transparent canvas, blurred at full opacity, and only THEN scaled
// down to its target opacity. Scaling before the blur would spread an
// already-faint mask toward invisibility; the ordering is load-bearing.
//
// The contact shadow is the base layer with the cast shadow composited
// on top. The returned layer is canvas-sized, black, and lives only
// until it is composited under the foreground.
func SynthesizeShadow(fg *Raster, canvasW, canvasH, pasteX, pasteY int, opts ShadowOptions) *Raster {
	sil := silhouette(fg)

	cast := placeSilhouette(sil, fg.Width, fg.Height, canvasW, canvasH,
		pasteX+opts.Offset.X, pasteY+opts.Offset.Y)
	cast = kernels.GaussianPlane(cast, canvasW, canvasH, float32(opts.BlurRadius))
	scalePlane(cast, opts.Opacity)

	contact := placeSilhouette(sil, fg.Width, fg.Height, canvasW, canvasH,
		pasteX+contactOffsetX, pasteY+contactOffsetY)
	contact = kernels.GaussianPlane(contact, canvasW, canvasH, contactBlur)
	scalePlane(contact, contactOpacity)

	// Cast over contact with the over operator. Both layers are pure
	// black, so only alpha needs combining.
	combined := make([]uint8, len(contact))
	for i := range combined {
		ta := float64(cast[i]) / 255
		ba := float64(contact[i]) / 255
		combined[i] = roundChannel((ta + ba*(1-ta)) * 255)
	}

	layer := &Raster{Width: canvasW, Height: canvasH, Pix: make([]uint8, canvasW*canvasH*4)}
	for i, a := range combined {
		layer.Pix[i*4+3] = a
	}
	return layer
}

// silhouette binarizes the foreground alpha: above the threshold is
// full coverage, everything else empty.
func silhouette(fg *Raster) []uint8 {
	plane := make([]uint8, fg.Width*fg.Height)
	for i := range plane {
		if fg.Pix[i*4+3] > silhouetteThreshold {
			plane[i] = 255
		}
	}
	return plane
}

// placeSilhouette pastes a (w,h) plane onto an empty (cw,ch) plane at
// (x,y), clipping to the canvas.
func placeSilhouette(sil []uint8, w, h, cw, ch, x, y int) []uint8 {
	out := make([]uint8, cw*ch)

	sx0, sy0 := 0, 0
	if x < 0 {
		sx0 = -x
		x = 0
	}
	if y < 0 {
		sy0 = -y
		y = 0
	}
	cols := w - sx0
	if over := x + cols - cw; over > 0 {
		cols -= over
	}
	rows := h - sy0
	if over := y + rows - ch; over > 0 {
		rows -= over
	}
	if cols <= 0 || rows <= 0 {
		return out
	}

	for row := 0; row < rows; row++ {
		copy(out[(y+row)*cw+x:(y+row)*cw+x+cols], sil[(sy0+row)*w+sx0:(sy0+row)*w+sx0+cols])
	}
	return out
}

// scalePlane multiplies every sample by opacity, truncating the
// fraction.
func scalePlane(plane []uint8, opacity float64) {
	for i, v := range plane {
		plane[i] = uint8(float64(v) * opacity)
	}
}
