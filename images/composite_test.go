package images

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphaOverOpaqueTopWins(t *testing.T) {
	bottom := solidPatch(t, 2, 2, image.Rect(0, 0, 2, 2), [4]uint8{10, 20, 30, 255})
	top := solidPatch(t, 2, 2, image.Rect(0, 0, 2, 2), [4]uint8{200, 100, 50, 255})

	out, err := AlphaOver(bottom, top)
	require.NoError(t, err)
	assert.Equal(t, []uint8{200, 100, 50, 255}, out.Pix[:4])
}

func TestAlphaOverTransparentTopKeepsBottom(t *testing.T) {
	bottom := solidPatch(t, 2, 2, image.Rect(0, 0, 2, 2), [4]uint8{10, 20, 30, 200})
	top, err := NewRaster(2, 2)
	require.NoError(t, err)

	out, err := AlphaOver(bottom, top)
	require.NoError(t, err)
	assert.Equal(t, []uint8{10, 20, 30, 200}, out.Pix[:4])
}

func TestAlphaOverBlendsHalfCoverage(t *testing.T) {
	bottom := solidPatch(t, 1, 1, image.Rect(0, 0, 1, 1), [4]uint8{0, 0, 0, 255})
	top := solidPatch(t, 1, 1, image.Rect(0, 0, 1, 1), [4]uint8{255, 255, 255, 128})

	out, err := AlphaOver(bottom, top)
	require.NoError(t, err)
	// out_a = 1; out_c = 255*(128/255) = 128.
	assert.Equal(t, uint8(255), out.Pix[3])
	assert.InDelta(t, 128, int(out.Pix[0]), 1)
}

func TestAlphaOverBothTransparentStaysTransparent(t *testing.T) {
	a, err := NewRaster(3, 3)
	require.NoError(t, err)
	b, err := NewRaster(3, 3)
	require.NoError(t, err)

	out, err := AlphaOver(a, b)
	require.NoError(t, err)
	for _, v := range out.Pix {
		assert.Equal(t, uint8(0), v)
	}
}

func TestAlphaOverSizeMismatch(t *testing.T) {
	a, err := NewRaster(3, 3)
	require.NoError(t, err)
	b, err := NewRaster(4, 3)
	require.NoError(t, err)

	_, err = AlphaOver(a, b)
	assert.Error(t, err)
}

func TestPasteOverClipsAtEdges(t *testing.T) {
	dst, err := NewRaster(4, 4)
	require.NoError(t, err)
	src := solidPatch(t, 3, 3, image.Rect(0, 0, 3, 3), [4]uint8{255, 0, 0, 255})

	out := PasteOver(dst, src, -1, 3)
	// Only a 2x1 sliver lands: source columns 1..2, row 0, at (0,3).
	assert.Equal(t, uint8(255), out.Pix[(3*4+0)*4+3])
	assert.Equal(t, uint8(255), out.Pix[(3*4+1)*4+3])
	assert.Equal(t, uint8(0), out.Pix[(3*4+2)*4+3])
	assert.Equal(t, uint8(0), out.Pix[(2*4+0)*4+3])
}

func TestPasteOverOutsideIsNoOp(t *testing.T) {
	dst := solidPatch(t, 3, 3, image.Rect(0, 0, 3, 3), [4]uint8{7, 7, 7, 7})
	src := solidPatch(t, 2, 2, image.Rect(0, 0, 2, 2), [4]uint8{255, 255, 255, 255})

	out := PasteOver(dst, src, 5, 5)
	assert.Equal(t, dst.Pix, out.Pix)
}

func TestFlattenOpaqueFillsBackground(t *testing.T) {
	canvas, err := NewRaster(2, 1)
	require.NoError(t, err)
	// Left pixel transparent, right pixel half-covered white.
	copy(canvas.Pix[4:8], []uint8{255, 255, 255, 128})

	out := FlattenOpaque(canvas, RGB{R: 0, G: 0, B: 255})
	assert.Equal(t, []uint8{0, 0, 255, 255}, out.Pix[:4], "transparent pixels take the fill color exactly")
	assert.Equal(t, uint8(255), out.Pix[7], "every output pixel is opaque")
	assert.InDelta(t, 128, int(out.Pix[4]), 1)
	assert.InDelta(t, 128+127, int(out.Pix[6]), 1)
}
