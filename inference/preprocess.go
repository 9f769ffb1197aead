package inference

import (
	"image"

	"github.com/nfnt/resize"

	"github.com/lumapix/studioshot/images"
)

// ImageNet channel statistics; BiRefNet was trained with these.
var (
	imagenetMean = [3]float32{0.485, 0.456, 0.406}
	imagenetStd  = [3]float32{0.229, 0.224, 0.225}
)

// preprocess resizes the photo to the square model input with a
// Lanczos filter and normalizes it into an NCHW float32 tensor.
func preprocess(src *images.Raster, size int) []float32 {
	resized := resize.Resize(uint(size), uint(size), src.ToNRGBA(), resize.Lanczos3)

	nrgba, ok := resized.(*image.NRGBA)
	if !ok {
		tmp := image.NewNRGBA(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				tmp.Set(x, y, resized.At(x, y))
			}
		}
		nrgba = tmp
	}

	data := make([]float32, 3*size*size)
	plane := size * size
	for y := 0; y < size; y++ {
		rowOff := y * nrgba.Stride
		for x := 0; x < size; x++ {
			off := rowOff + x*4
			for c := 0; c < 3; c++ {
				v := float32(nrgba.Pix[off+c]) / 255
				data[c*plane+y*size+x] = (v - imagenetMean[c]) / imagenetStd[c]
			}
		}
	}
	return data
}
