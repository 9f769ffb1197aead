package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapix/studioshot/images"
)

func grayRaster(t *testing.T, w, h int, v uint8) *images.Raster {
	t.Helper()
	r, err := images.NewRaster(w, h)
	require.NoError(t, err)
	for i := 0; i < len(r.Pix); i += 4 {
		r.Pix[i+0] = v
		r.Pix[i+1] = v
		r.Pix[i+2] = v
		r.Pix[i+3] = 255
	}
	return r
}

func TestPreprocessShapeAndLayout(t *testing.T) {
	data := preprocess(grayRaster(t, 64, 48, 128), 32)
	assert.Len(t, data, 3*32*32, "NCHW with three channel planes")
}

func TestPreprocessAppliesImageNetNormalization(t *testing.T) {
	const size = 16
	data := preprocess(grayRaster(t, size, size, 255), size)

	plane := size * size
	for c := 0; c < 3; c++ {
		want := (1 - imagenetMean[c]) / imagenetStd[c]
		assert.InDelta(t, want, data[c*plane], 1e-3, "channel %d white point", c)
	}

	data = preprocess(grayRaster(t, size, size, 0), size)
	for c := 0; c < 3; c++ {
		want := -imagenetMean[c] / imagenetStd[c]
		assert.InDelta(t, want, data[c*plane+plane/2], 1e-3, "channel %d black point", c)
	}
}

func TestPreprocessResizesToModelInput(t *testing.T) {
	// A half-black, half-white source: the resized tensor must hold
	// both populations, so the model sees the whole photo.
	r, err := images.NewRaster(40, 40)
	require.NoError(t, err)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			off := (y*40 + x) * 4
			v := uint8(0)
			if x >= 20 {
				v = 255
			}
			r.Pix[off], r.Pix[off+1], r.Pix[off+2], r.Pix[off+3] = v, v, v, 255
		}
	}

	data := preprocess(r, 20)
	left := data[10*20+2]
	right := data[10*20+17]
	assert.Less(t, left, right, "dark and bright halves must survive the resize")
}
