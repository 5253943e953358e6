package render

import (
	"image/color"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/colornames"
)

func TestParseColorNames(t *testing.T) {
	for name, expected := range map[string]color.RGBA{
		"orange": colornames.Orange,
		"Red":    colornames.Red,
		" black": colornames.Black,
		"white":  colornames.White,
	} {
		parsed, err := ParseColor(name)
		assert.Nil(t, err)
		assert.Equal(t, parsed, expected)
	}
}

func TestParseColorHex(t *testing.T) {
	parsed, err := ParseColor("#f80")
	assert.Nil(t, err)
	assert.Equal(t, parsed, color.NRGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff})

	parsed, err = ParseColor("#102030")
	assert.Nil(t, err)
	assert.Equal(t, parsed, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})

	parsed, err = ParseColor("#ff000080")
	assert.Nil(t, err)
	assert.Equal(t, parsed, color.NRGBA{R: 0xff, A: 0x80})
}

func TestParseColorIncorrect(t *testing.T) {
	for _, value := range []string{"", "nocolor", "#", "#12", "#12345", "#gggggg"} {
		_, err := ParseColor(value)
		assert.Equal(t, errors.Cause(err), ErrUnknownColor, value)
	}
}

func TestNewPalette(t *testing.T) {
	palette, err := NewPalette("orange", "red")
	assert.Nil(t, err)
	assert.Equal(t, palette.Stroke, colornames.Orange)
	assert.Equal(t, palette.Fill, colornames.Red)

	_, err = NewPalette("orange", "reddish")
	assert.NotNil(t, err)

	_, err = NewPalette("#xyz", "red")
	assert.NotNil(t, err)
}
