// Package kernels - separable filter kernels over owned single-channel
// pixel planes. Every function returns a new buffer; inputs are never
// mutated, so pipeline stages stay free of aliasing.
package kernels

import (
	"sync"

	"github.com/chewxy/math32"
)

// clampCoord maps an out-of-range coordinate back into [0, n) by
// repeating the edge sample.
func clampCoord(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// gaussianTaps builds the one-sided normalized kernel for the given
// radius. The radius is the standard deviation; taps extend to 3σ.
// Index 0 is the center weight.
func gaussianTaps(radius float32) []float32 {
	extent := int(math32.Ceil(radius * 3))
	if extent < 1 {
		extent = 1
	}
	taps := make([]float32, extent+1)
	sum := float32(0)
	for i := 0; i <= extent; i++ {
		w := math32.Exp(-float32(i*i) / (2 * radius * radius))
		taps[i] = w
		if i == 0 {
			sum += w
		} else {
			sum += 2 * w
		}
	}
	for i := range taps {
		taps[i] /= sum
	}
	return taps
}

// GaussianPlane blurs a single-channel plane with a separable Gaussian.
// A radius <= 0 returns an unmodified copy. Sampling past the plane
// edge repeats the edge pixel. Output values round to nearest.
//
// Arguments:
//   - src: The plane, len = w*h, row-major.
//   - w: Plane width in pixels.
//   - h: Plane height in pixels.
//   - radius: Standard deviation of the Gaussian, in pixels.
//
// Returns:
//   - []uint8: A new blurred plane of the same size.
func GaussianPlane(src []uint8, w, h int, radius float32) []uint8 {
	out := make([]uint8, len(src))
	if radius <= 0 || w == 0 || h == 0 {
		copy(out, src)
		return out
	}

	taps := gaussianTaps(radius)
	tmp := make([]uint8, len(src))

	// Horizontal pass, then vertical. Rows (and columns) are
	// independent, so each pass splits into parallel chunks.
	parallelRows(h, func(y int) {
		row := src[y*w : (y+1)*w]
		dst := tmp[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			acc := taps[0] * float32(row[x])
			for i := 1; i < len(taps); i++ {
				acc += taps[i] * float32(row[clampCoord(x-i, w)])
				acc += taps[i] * float32(row[clampCoord(x+i, w)])
			}
			dst[x] = roundByte(acc)
		}
	})

	parallelRows(w, func(x int) {
		for y := 0; y < h; y++ {
			acc := taps[0] * float32(tmp[y*w+x])
			for i := 1; i < len(taps); i++ {
				acc += taps[i] * float32(tmp[clampCoord(y-i, h)*w+x])
				acc += taps[i] * float32(tmp[clampCoord(y+i, h)*w+x])
			}
			out[y*w+x] = roundByte(acc)
		}
	})

	return out
}

// roundByte rounds to nearest and clamps into [0,255].
func roundByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// parallelRows runs task(i) for i in [0,n), chunked across goroutines.
// Small inputs run inline; goroutine setup costs more than the work.
func parallelRows(n int, task func(i int)) {
	const minParallel = 256
	if n < minParallel {
		for i := 0; i < n; i++ {
			task(i)
		}
		return
	}

	chunk := (n + 7) / 8
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				task(i)
			}
		}(start, end)
	}
	wg.Wait()
}
