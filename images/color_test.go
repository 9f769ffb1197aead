package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("FF00FF")
	assert.NoError(t, err)
	assert.Equal(t, RGB{R: 255, G: 0, B: 255}, c)

	c, err = ParseHexColor("0a141e")
	assert.NoError(t, err, "lowercase hex is accepted")
	assert.Equal(t, RGB{R: 10, G: 20, B: 30}, c)
}

func TestParseHexColorRejectsMalformedInput(t *testing.T) {
	cases := []string{"", "FFF", "FFFFFFF", "#FFFFF", "GGGGGG", "FF00F "}
	for _, s := range cases {
		_, err := ParseHexColor(s)
		assert.Error(t, err, "input %q should be rejected", s)
	}
}
