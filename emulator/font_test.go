package emulator

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextPixelsEmpty(t *testing.T) {
	assert.Empty(t, textPixels("", 0, 0))
	assert.Empty(t, textPixels("   ", 0, 0))
}

func TestTextPixelsStayInsideCells(t *testing.T) {
	const x, y = 100, 40
	s := "V0 = FF"
	points := textPixels(s, x, y)
	assert.NotEmpty(t, points)

	bounds := image.Rect(x, y, x+len(s)*face.Advance, y+face.Height)
	for _, p := range points {
		assert.True(t, p.In(bounds), "point %v outside %v", p, bounds)
	}
}

func TestTextPixelsAdvance(t *testing.T) {
	a := textPixels("8", 0, 0)
	b := textPixels(" 8", 0, 0)
	assert.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Add(image.Pt(face.Advance, 0)), b[i])
	}
}

func TestKeyRow(t *testing.T) {
	var keys [16]bool
	keys[0x2] = true
	keys[0xc] = true
	assert.Equal(t, "0101", keyRow(keys, 0x1, 0x2, 0x3, 0xc))
}
