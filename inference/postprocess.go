package inference

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
)

// maskFromLogits turns the authoritative per-scale logit map into an
// 8-bit alpha plane at the photo's resolution. The model emits logits,
// so sigmoid first, then scale to 0-255 and Lanczos-resize back up.
func maskFromLogits(logits []float32, maskW, maskH, dstW, dstH int) []uint8 {
	gray := image.NewGray(image.Rect(0, 0, maskW, maskH))
	for i, v := range logits[:maskW*maskH] {
		p := 1 / (1 + math32.Exp(-v))
		if p < 0 {
			p = 0
		} else if p > 1 {
			p = 1
		}
		gray.Pix[i] = uint8(p * 255)
	}

	if maskW == dstW && maskH == dstH {
		return gray.Pix
	}

	resized := resize.Resize(uint(dstW), uint(dstH), gray, resize.Lanczos3)
	out, ok := resized.(*image.Gray)
	if ok && out.Stride == dstW {
		return out.Pix
	}

	plane := make([]uint8, dstW*dstH)
	b := resized.Bounds()
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			g, _, _, _ := resized.At(b.Min.X+x, b.Min.Y+y).RGBA()
			plane[y*dstW+x] = uint8(g >> 8)
		}
	}
	return plane
}
