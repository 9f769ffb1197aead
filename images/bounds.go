package images

import "image"

// DefaultContentThreshold is the alpha level a pixel must exceed to
// count as content when locating the bounding box.
const DefaultContentThreshold = 10

// ContentBox returns the tightest half-open rectangle enclosing pixels
// with alpha above threshold. When no pixel qualifies (an all-
// transparent mask) it returns the full raster extent - an explicit
// fallback, not a failure, so downstream stages degrade gracefully.
func ContentBox(r *Raster, threshold uint8) image.Rectangle {
	minX, minY := r.Width, r.Height
	maxX, maxY := -1, -1

	i := 3
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if r.Pix[i] > threshold {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				maxY = y
			}
			i += 4
		}
	}

	if maxX < 0 {
		return r.Bounds()
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Crop copies the given sub-rectangle into a new raster. The rectangle
// is clipped to the raster bounds.
func Crop(r *Raster, rect image.Rectangle) *Raster {
	rect = rect.Intersect(r.Bounds())
	out := &Raster{
		Width:  rect.Dx(),
		Height: rect.Dy(),
		Pix:    make([]uint8, rect.Dx()*rect.Dy()*4),
	}
	for y := 0; y < out.Height; y++ {
		srcOff := ((rect.Min.Y+y)*r.Width + rect.Min.X) * 4
		copy(out.Pix[y*out.Width*4:(y+1)*out.Width*4], r.Pix[srcOff:srcOff+out.Width*4])
	}
	return out
}

// CropToContent crops the raster to its content bounding box at the
// default threshold.
func CropToContent(r *Raster) *Raster {
	return Crop(r, ContentBox(r, DefaultContentThreshold))
}
