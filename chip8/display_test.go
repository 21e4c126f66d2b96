package chip8

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func frameWith(points ...[2]int) [DisplayW * DisplayH]uint8 {
	var f [DisplayW * DisplayH]uint8
	for _, p := range points {
		f[p[1]*DisplayW+p[0]] = 1
	}
	return f
}

func TestDrawFullRow(t *testing.T) {
	var fb Framebuffer
	fb.clear()
	fb.ClearDirty()

	collision := fb.draw(0, 0, []uint8{0xFF})
	assert.False(t, collision)
	assert.True(t, fb.Dirty())

	want := frameWith([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0},
		[2]int{4, 0}, [2]int{5, 0}, [2]int{6, 0}, [2]int{7, 0})
	if diff := cmp.Diff(want, fb.Frame()); diff != "" {
		t.Errorf("frame (-want, +got)\n%s", diff)
	}
}

func TestDrawTwiceErases(t *testing.T) {
	var fb Framebuffer
	assert.False(t, fb.draw(10, 5, []uint8{0xFF, 0x81}))
	assert.True(t, fb.draw(10, 5, []uint8{0xFF, 0x81}))

	if diff := cmp.Diff(frameWith(), fb.Frame()); diff != "" {
		t.Errorf("frame (-want, +got)\n%s", diff)
	}
}

func TestDrawCollisionOnlyOnSetPixels(t *testing.T) {
	var fb Framebuffer
	fb.draw(0, 0, []uint8{0xF0})
	assert.False(t, fb.draw(0, 0, []uint8{0x0F}))
	assert.True(t, fb.draw(0, 0, []uint8{0x01}))
}

func TestDrawWrapsEachAxis(t *testing.T) {
	var fb Framebuffer
	fb.draw(62, 31, []uint8{0xC0 | 0x20, 0x80})

	want := frameWith(
		[2]int{62, 31}, [2]int{63, 31}, [2]int{0, 31}, // row 0 wraps on x
		[2]int{62, 0}, // row 1 wraps on y
	)
	if diff := cmp.Diff(want, fb.Frame()); diff != "" {
		t.Errorf("frame (-want, +got)\n%s", diff)
	}
}

func TestDrawCoordinatesAboveScreen(t *testing.T) {
	var fb Framebuffer
	fb.draw(64+3, 32+2, []uint8{0x80})
	assert.Equal(t, uint8(1), fb.Pixel(3, 2))
}

func TestClearDirty(t *testing.T) {
	var fb Framebuffer
	assert.False(t, fb.Dirty())
	fb.draw(0, 0, nil)
	assert.True(t, fb.Dirty())
	fb.ClearDirty()
	assert.False(t, fb.Dirty())
}
