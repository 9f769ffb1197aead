package images

import "github.com/pkg/errors"

// AlphaOver composites top over bottom with the standard straight-alpha
// over operator and returns a new raster:
//
//	out_a = top_a + bottom_a*(1-top_a)
//	out_c = (top_c*top_a + bottom_c*bottom_a*(1-top_a)) / out_a
//
// Where out_a is zero the pixel is fully transparent and its color is
// irrelevant (stored as zero). Both rasters must be the same size.
func AlphaOver(bottom, top *Raster) (*Raster, error) {
	if top.Width != bottom.Width || top.Height != bottom.Height {
		return nil, errors.Errorf(
			"layer size mismatch: %dx%d over %dx%d",
			top.Width, top.Height, bottom.Width, bottom.Height,
		)
	}

	out := &Raster{Width: bottom.Width, Height: bottom.Height, Pix: make([]uint8, len(bottom.Pix))}
	for i := 0; i < len(out.Pix); i += 4 {
		overPixel(out.Pix[i:i+4:i+4], bottom.Pix[i:i+4:i+4], top.Pix[i:i+4:i+4])
	}
	return out, nil
}

// PasteOver composites src over dst at offset (x,y), clipping src to
// the destination bounds, and returns a new raster. A src placed fully
// outside dst is a no-op copy.
func PasteOver(dst, src *Raster, x, y int) *Raster {
	out := dst.Clone()

	x0, y0 := x, y
	sx0, sy0 := 0, 0
	if x0 < 0 {
		sx0 = -x0
		x0 = 0
	}
	if y0 < 0 {
		sy0 = -y0
		y0 = 0
	}
	w := src.Width - sx0
	if over := x0 + w - dst.Width; over > 0 {
		w -= over
	}
	h := src.Height - sy0
	if over := y0 + h - dst.Height; over > 0 {
		h -= over
	}
	if w <= 0 || h <= 0 {
		return out
	}

	for row := 0; row < h; row++ {
		dOff := ((y0+row)*dst.Width + x0) * 4
		sOff := ((sy0+row)*src.Width + sx0) * 4
		for col := 0; col < w; col++ {
			d := out.Pix[dOff : dOff+4 : dOff+4]
			overPixel(d, d, src.Pix[sOff:sOff+4:sOff+4])
			dOff += 4
			sOff += 4
		}
	}
	return out
}

// FlattenOpaque composites the working canvas over an opaque color
// fill and drops transparency: every output pixel has alpha 255. This
// is the final stage, so the result is the opaque RGB product photo.
func FlattenOpaque(canvas *Raster, bg RGB) *Raster {
	out := &Raster{Width: canvas.Width, Height: canvas.Height, Pix: make([]uint8, len(canvas.Pix))}
	for i := 0; i < len(out.Pix); i += 4 {
		a := float64(canvas.Pix[i+3]) / 255
		inv := 1 - a
		out.Pix[i+0] = roundChannel(float64(canvas.Pix[i+0])*a + float64(bg.R)*inv)
		out.Pix[i+1] = roundChannel(float64(canvas.Pix[i+1])*a + float64(bg.G)*inv)
		out.Pix[i+2] = roundChannel(float64(canvas.Pix[i+2])*a + float64(bg.B)*inv)
		out.Pix[i+3] = 255
	}
	return out
}

// overPixel writes top-over-bottom into out. The three slices may
// alias; bottom is read before out is written.
func overPixel(out, bottom, top []uint8) {
	ta := float64(top[3]) / 255
	ba := float64(bottom[3]) / 255
	outA := ta + ba*(1-ta)
	if outA <= 0 {
		out[0], out[1], out[2], out[3] = 0, 0, 0, 0
		return
	}
	for c := 0; c < 3; c++ {
		v := (float64(top[c])*ta + float64(bottom[c])*ba*(1-ta)) / outA
		out[c] = roundChannel(v)
	}
	out[3] = roundChannel(outA * 255)
}

// roundChannel rounds to nearest and clamps into [0,255].
func roundChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
