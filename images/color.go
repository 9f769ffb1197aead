package images

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// RGB is an opaque background fill color.
type RGB struct {
	R, G, B uint8
}

// ParseHexColor parses a 6-hex-digit string ("FF00FF") into an RGB
// triple. No "#" prefix, no shorthand forms. Fails before any buffer
// work so a bad color never produces partial output.
func ParseHexColor(s string) (RGB, error) {
	if len(s) != 6 {
		return RGB{}, errors.Errorf("background color must be 6 hex digits, got %q", s)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return RGB{}, errors.Wrapf(err, "background color %q is not valid hex", s)
	}
	return RGB{R: raw[0], G: raw[1], B: raw[2]}, nil
}
