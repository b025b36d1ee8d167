// Package framebuffer implements the monochrome CHIP-8 display buffer.
package framebuffer

import (
	"strings"

	"github.com/cespare/xxhash"
)

// Display dimensions.
const (
	Width  = 64             // Display width in pixels.
	Height = 32             // Display height in pixels.
	Size   = Width * Height // Number of pixels in the buffer.
)

// Framebuffer holds one byte per pixel, row-major. A pixel is either 0 (off) or 1 (on).
// It is only ever mutated through Clear and Draw.
type Framebuffer struct {
	pixels [Size]byte
}

// New creates a new, blank framebuffer.
func New() *Framebuffer {
	return &Framebuffer{}
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	f.pixels = [Size]byte{}
}

// Draw XORs the given sprite onto the buffer with its top-left corner at x, y.
// Each sprite byte is one row, most significant bit leftmost. Coordinates wrap
// around both edges of the display.
//
// Returns true if any pixel that was on has been turned off.
func (f *Framebuffer) Draw(x, y int, sprite []byte) bool {
	var collision bool

	for r, row := range sprite {
		py := wrap(y+r, Height) * Width

		for b := 0; b < 8; b++ {
			bit := (row >> (7 - uint(b))) & 1
			if bit == 0 {
				continue
			}

			p := &f.pixels[py+wrap(x+b, Width)]
			if *p == 1 {
				collision = true
			}
			*p ^= 1
		}
	}

	return collision
}

// Pixel returns true if the pixel at x, y is on. Coordinates wrap.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.pixels[wrap(y, Height)*Width+wrap(x, Width)] == 1
}

// Pixels returns the row-major pixel data. The returned slice aliases the
// buffer and must not be modified.
func (f *Framebuffer) Pixels() []byte {
	return f.pixels[:]
}

// Digest returns a hash of the current buffer contents. Two buffers with
// the same contents yield the same digest.
func (f *Framebuffer) Digest() uint64 {
	return xxhash.Sum64(f.pixels[:])
}

// String renders the buffer as Height lines of '#' (on) and '.' (off).
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)

	for y := 0; y < Height; y++ {
		for _, p := range f.pixels[y*Width : (y+1)*Width] {
			if p == 1 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// wrap returns v modulo n, in the range [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
