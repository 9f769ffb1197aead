package kernels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinFilter3ErodesSquare(t *testing.T) {
	const n = 9
	src := make([]uint8, n*n)
	for y := 2; y < 7; y++ {
		for x := 2; x < 7; x++ {
			src[y*n+x] = 255
		}
	}

	out := MinFilter3(src, n, n)

	// The 5x5 block shrinks to 3x3: any pixel touching the boundary
	// sees a zero in its window.
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			want := uint8(0)
			if x >= 3 && x < 6 && y >= 3 && y < 6 {
				want = 255
			}
			assert.Equal(t, want, out[y*n+x], "pixel (%d,%d)", x, y)
		}
	}
}

func TestMinFilter3RemovesIsolatedSpeck(t *testing.T) {
	const n = 5
	src := make([]uint8, n*n)
	src[2*n+2] = 200

	out := MinFilter3(src, n, n)
	for i, v := range out {
		assert.Equal(t, uint8(0), v, "index %d", i)
	}
}

func TestMinFilter3FullPlaneIsStable(t *testing.T) {
	const n = 6
	src := make([]uint8, n*n)
	for i := range src {
		src[i] = 180
	}

	out := MinFilter3(src, n, n)
	// Edge replication means a constant plane is a fixed point; the
	// filter cannot invent darker samples past the border.
	assert.Equal(t, src, out)
}

func TestMinFilter3PicksWindowMinimum(t *testing.T) {
	src := []uint8{
		9, 8, 7,
		6, 5, 4,
		3, 2, 1,
	}
	out := MinFilter3(src, 3, 3)
	assert.Equal(t, uint8(1), out[4], "center takes the window minimum")
	assert.Equal(t, uint8(5), out[0], "corner window covers the 2x2 neighborhood only")
}

func TestMinFilter3DoesNotMutateInput(t *testing.T) {
	src := []uint8{1, 2, 3, 4}
	_ = MinFilter3(src, 2, 2)
	assert.Equal(t, []uint8{1, 2, 3, 4}, src)
}
