package emulator

import (
	"image"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// textPixels returns the lit pixels of s drawn with its top left corner at (x, y).
func textPixels(s string, x, y int) []image.Point {
	var points []image.Point
	dot := fixed.P(x, y+face.Ascent)
	for _, r := range s {
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if !ok {
			dr, mask, maskp, advance, _ = face.Glyph(dot, '?')
		}
		for py := dr.Min.Y; py < dr.Max.Y; py++ {
			for px := dr.Min.X; px < dr.Max.X; px++ {
				_, _, _, a := mask.At(maskp.X+px-dr.Min.X, maskp.Y+py-dr.Min.Y).RGBA()
				if a >= 0x8000 {
					points = append(points, image.Point{X: px, Y: py})
				}
			}
		}
		dot.X += advance
	}
	return points
}
