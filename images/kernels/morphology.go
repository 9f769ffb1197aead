package kernels

// MinFilter3 applies one pass of a 3x3 minimum filter (morphological
// erosion) to a single-channel plane. The 3x3 window minimum separates
// into a horizontal min-of-3 followed by a vertical min-of-3, which
// keeps the pass at two reads of the plane rather than nine samples
// per pixel. Edge sampling repeats the edge pixel, matching the
// Gaussian pass. The kernel size is fixed; it does not scale with
// resolution.
func MinFilter3(src []uint8, w, h int) []uint8 {
	out := make([]uint8, len(src))
	if w == 0 || h == 0 {
		return out
	}

	tmp := make([]uint8, len(src))

	parallelRows(h, func(y int) {
		row := src[y*w : (y+1)*w]
		dst := tmp[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			m := row[x]
			if l := row[clampCoord(x-1, w)]; l < m {
				m = l
			}
			if r := row[clampCoord(x+1, w)]; r < m {
				m = r
			}
			dst[x] = m
		}
	})

	parallelRows(w, func(x int) {
		for y := 0; y < h; y++ {
			m := tmp[y*w+x]
			if u := tmp[clampCoord(y-1, h)*w+x]; u < m {
				m = u
			}
			if d := tmp[clampCoord(y+1, h)*w+x]; d < m {
				m = d
			}
			out[y*w+x] = m
		}
	})

	return out
}
