package chip8

const (
	DisplayW = 64
	DisplayH = 32
)

// Framebuffer is the monochrome display. Pixels hold 0 or 1.
type Framebuffer struct {
	pixels [DisplayW * DisplayH]uint8
	dirty  bool
}

func (f *Framebuffer) clear() {
	for i := range f.pixels {
		f.pixels[i] = 0
	}
	f.dirty = true
}

// draw XORs an 8 pixel wide sprite onto the display at (x, y). Each axis wraps
// around on its own. It reports whether any set pixel was turned off.
func (f *Framebuffer) draw(x, y uint8, sprite []uint8) bool {
	collision := false
	for iy, row := range sprite {
		ty := (int(y) + iy) % DisplayH
		for ix := 0; ix < 8; ix++ {
			d := (row >> (7 - ix)) & 0x01
			if d == 0 {
				continue
			}
			tx := (int(x) + ix) % DisplayW
			p := &f.pixels[ty*DisplayW+tx]
			if *p == 1 {
				collision = true
			}
			*p ^= d
		}
	}
	f.dirty = true
	return collision
}

// Pixel returns the pixel at (x, y); coordinates wrap like sprite drawing.
func (f *Framebuffer) Pixel(x, y int) uint8 {
	return f.pixels[(y%DisplayH)*DisplayW+(x%DisplayW)]
}

// Frame returns a copy of the pixels in row-major order.
func (f *Framebuffer) Frame() [DisplayW * DisplayH]uint8 {
	return f.pixels
}

// Dirty reports whether the display changed since the last ClearDirty.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// ClearDirty is called by the renderer after it consumed a frame.
func (f *Framebuffer) ClearDirty() {
	f.dirty = false
}
