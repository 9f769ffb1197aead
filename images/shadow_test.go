package images

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesizeShadowIsBlack(t *testing.T) {
	fg := solidSquare(t, 20, 10)
	layer := SynthesizeShadow(fg, 60, 60, 20, 20, DefaultShadowOptions())

	assert.Equal(t, 60, layer.Width)
	assert.Equal(t, 60, layer.Height)
	for i := 0; i < len(layer.Pix); i += 4 {
		if layer.Pix[i] != 0 || layer.Pix[i+1] != 0 || layer.Pix[i+2] != 0 {
			t.Fatalf("shadow color must be pure black at pixel %d", i/4)
		}
	}
}

func TestSynthesizeShadowOpacityScalesAfterBlur(t *testing.T) {
	// A large solid silhouette: deep inside it the blurred mask is
	// still fully opaque, so the cast alpha after scaling is exactly
	// trunc(255*0.35) = 89 and the contact alpha trunc(255*0.4) = 102.
	fg := solidPatch(t, 200, 200, image.Rect(0, 0, 200, 200), [4]uint8{0, 0, 0, 255})
	opts := DefaultShadowOptions()
	layer := SynthesizeShadow(fg, 400, 400, 100, 100, opts)

	// Combined interior alpha: cast over contact.
	ta, ba := 89.0/255, 102.0/255
	want := uint8((ta+ba*(1-ta))*255 + 0.5)
	center := (200*400 + 200) * 4
	assert.Equal(t, want, layer.Pix[center+3],
		"interior alpha must reflect full-opacity blur followed by scaling")
}

func TestSynthesizeShadowFollowsCastOffset(t *testing.T) {
	fg := solidPatch(t, 10, 10, image.Rect(0, 0, 10, 10), [4]uint8{0, 0, 0, 255})
	opts := ShadowOptions{Offset: image.Pt(30, 0), BlurRadius: 1, Opacity: 1}
	layer := SynthesizeShadow(fg, 100, 100, 10, 10, opts)

	// Cast shadow sits around x in [40,50); contact around [12,22).
	castCenter := (15*100 + 45) * 4
	assert.Equal(t, uint8(255), layer.Pix[castCenter+3], "cast shadow lands at paste+offset")

	contactCenter := (15*100 + 17) * 4
	assert.NotZero(t, layer.Pix[contactCenter+3], "contact shadow stays at its fixed offset")

	farRight := (15*100 + 90) * 4
	assert.Zero(t, layer.Pix[farRight+3], "nothing falls outside both footprints")
}

func TestSynthesizeShadowIgnoresFaintAlpha(t *testing.T) {
	fg := solidPatch(t, 10, 10, image.Rect(0, 0, 10, 10), [4]uint8{0, 0, 0, 20})
	layer := SynthesizeShadow(fg, 40, 40, 5, 5, DefaultShadowOptions())

	for i := 3; i < len(layer.Pix); i += 4 {
		if layer.Pix[i] != 0 {
			t.Fatalf("alpha at the binarization threshold must cast no shadow (pixel %d)", i/4)
		}
	}
}

func TestSynthesizeShadowClipsOffCanvasSilhouette(t *testing.T) {
	fg := solidPatch(t, 10, 10, image.Rect(0, 0, 10, 10), [4]uint8{0, 0, 0, 255})
	layer := SynthesizeShadow(fg, 30, 30, -50, -50, DefaultShadowOptions())

	for i := 3; i < len(layer.Pix); i += 4 {
		if layer.Pix[i] != 0 {
			t.Fatalf("a fully off-canvas paste must be a no-op (pixel %d)", i/4)
		}
	}
}
