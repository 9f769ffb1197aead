// Package images - the product-photo compositing core: straight-alpha
// rasters, edge refinement, content layout, shadow synthesis and the
// flattening pipeline.
package images

import (
	"image"

	"github.com/pkg/errors"
)

// Raster is an in-memory RGBA pixel buffer with straight
// (non-premultiplied) alpha, 8 bits per channel. Pix holds
// Width*Height interleaved R,G,B,A quads, row-major.
type Raster struct {
	// Width of the raster in pixels.
	Width int
	// Height of the raster in pixels.
	Height int
	// Pix is the contiguous pixel buffer, len = Width*Height*4.
	Pix []uint8
}

// NewRaster allocates a fully transparent raster of the given size.
//
// Arguments:
//   - width: The width in pixels. Must be > 0.
//   - height: The height in pixels. Must be > 0.
//
// Returns:
//   - *Raster: The zeroed raster.
//   - error: An error if the dimensions violate the decode contract.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid raster dimensions %dx%d", width, height)
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}, nil
}

// FromPix wraps an existing interleaved RGBA buffer. The buffer length
// must be exactly width*height*4; anything else is a malformed channel
// count from the decoder's side.
func FromPix(width, height int, pix []uint8) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid raster dimensions %dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, errors.Errorf(
			"pixel buffer length %d does not match %dx%d RGBA (want %d)",
			len(pix), width, height, width*height*4,
		)
	}
	return &Raster{Width: width, Height: height, Pix: pix}, nil
}

// FromImage converts any image.Image into a straight-alpha raster.
// NRGBA sources are copied byte-for-byte; everything else goes through
// a color-model conversion.
func FromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, errors.New("nil source image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.Errorf("invalid raster dimensions %dx%d", b.Dx(), b.Dy())
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				nrgba.Set(x-b.Min.X, y-b.Min.Y, img.At(x, y))
			}
		}
		return FromPix(b.Dx(), b.Dy(), nrgba.Pix)
	}

	out, err := NewRaster(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < out.Height; y++ {
		srcOff := (y+b.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride + (b.Min.X-nrgba.Rect.Min.X)*4
		copy(out.Pix[y*out.Width*4:(y+1)*out.Width*4], nrgba.Pix[srcOff:srcOff+out.Width*4])
	}
	return out, nil
}

// ToNRGBA returns the raster as a zero-origin *image.NRGBA sharing no
// storage with the receiver.
func (r *Raster) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Pix)
	return img
}

// Clone returns a deep copy.
func (r *Raster) Clone() *Raster {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Width: r.Width, Height: r.Height, Pix: pix}
}

// Bounds returns the raster extent as a zero-origin rectangle.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// AlphaPlane materializes the alpha channel as a standalone
// single-channel buffer, len = Width*Height.
func (r *Raster) AlphaPlane() []uint8 {
	plane := make([]uint8, r.Width*r.Height)
	for i := range plane {
		plane[i] = r.Pix[i*4+3]
	}
	return plane
}

// SetAlphaPlane writes a single-channel buffer back into the alpha
// channel. The plane length must match Width*Height.
func (r *Raster) SetAlphaPlane(plane []uint8) error {
	if len(plane) != r.Width*r.Height {
		return errors.Errorf("alpha plane length %d does not match %dx%d", len(plane), r.Width, r.Height)
	}
	for i, a := range plane {
		r.Pix[i*4+3] = a
	}
	return nil
}

// validate re-checks the buffer invariant on rasters that arrive from
// the caller rather than from our own constructors.
func (r *Raster) validate() error {
	if r == nil {
		return errors.New("nil raster")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return errors.Errorf("invalid raster dimensions %dx%d", r.Width, r.Height)
	}
	if len(r.Pix) != r.Width*r.Height*4 {
		return errors.Errorf(
			"pixel buffer length %d does not match %dx%d RGBA (want %d)",
			len(r.Pix), r.Width, r.Height, r.Width*r.Height*4,
		)
	}
	return nil
}
