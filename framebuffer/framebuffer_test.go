package framebuffer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var glyph0 = []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}

func TestClear(t *testing.T) {
	fb := New()
	fb.Draw(3, 4, glyph0)
	fb.Clear()

	if diff := cmp.Diff(make([]byte, Size), fb.Pixels()); diff != "" {
		t.Fatalf("buffer not cleared (-want, +have)\n%s", diff)
	}
}

func TestDraw(t *testing.T) {
	fb := New()

	if fb.Draw(0, 0, []byte{0x81}) {
		t.Fatalf("unexpected collision on empty buffer")
	}

	want := map[[2]int]bool{{0, 0}: true, {7, 0}: true}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if have := fb.Pixel(x, y); have != want[[2]int{x, y}] {
				t.Fatalf("pixel %d,%d: want %v; have %v", x, y, want[[2]int{x, y}], have)
			}
		}
	}
}

func TestDrawWraps(t *testing.T) {
	fb := New()
	fb.Draw(Width-4, Height-1, []byte{0xFF, 0xFF})

	tests := []struct {
		x, y int
		want bool
	}{
		{Width - 4, Height - 1, true},
		{Width - 1, Height - 1, true},
		{0, Height - 1, true},
		{3, Height - 1, true},
		{4, Height - 1, false},
		{Width - 4, 0, true},
		{3, 0, true},
		{4, 0, false},
		{Width - 5, 0, false},
	}

	for _, tt := range tests {
		if have := fb.Pixel(tt.x, tt.y); have != tt.want {
			t.Errorf("pixel %d,%d: want %v; have %v", tt.x, tt.y, tt.want, have)
		}
	}
}

func TestDrawSelfInverse(t *testing.T) {
	fb := New()
	fb.Draw(10, 10, []byte{0x3C})
	before := append([]byte(nil), fb.Pixels()...)

	if fb.Draw(20, 5, glyph0) {
		t.Fatalf("unexpected collision on first draw")
	}

	if !fb.Draw(20, 5, glyph0) {
		t.Fatalf("expected collision on second draw")
	}

	if diff := cmp.Diff(before, fb.Pixels()); diff != "" {
		t.Fatalf("second draw did not restore buffer (-want, +have)\n%s", diff)
	}
}

func TestDrawEmptySprite(t *testing.T) {
	fb := New()
	fb.Draw(0, 0, []byte{0xFF})

	if fb.Draw(0, 0, []byte{0x00, 0x00}) {
		t.Fatalf("blank sprite must not collide")
	}

	if fb.Draw(0, 0, nil) {
		t.Fatalf("empty sprite must not collide")
	}
}

func TestDigest(t *testing.T) {
	a := New()
	b := New()

	if a.Digest() != b.Digest() {
		t.Fatalf("blank buffers have different digests")
	}

	a.Draw(1, 1, glyph0)
	if a.Digest() == b.Digest() {
		t.Fatalf("different buffers have equal digests")
	}

	b.Draw(1, 1, glyph0)
	if a.Digest() != b.Digest() {
		t.Fatalf("equal buffers have different digests")
	}
}

func TestString(t *testing.T) {
	fb := New()
	fb.Draw(0, 0, []byte{0xC0})

	lines := strings.Split(strings.TrimSuffix(fb.String(), "\n"), "\n")
	if len(lines) != Height {
		t.Fatalf("want %d lines; have %d", Height, len(lines))
	}

	if want := "##" + strings.Repeat(".", Width-2); lines[0] != want {
		t.Fatalf("line 0:\nwant %s\nhave %s", want, lines[0])
	}
}
