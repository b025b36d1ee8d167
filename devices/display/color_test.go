package display

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"ffffff", White, true},
		{"#000000", Black, true},
		{"#ff0000", Color{1, 0, 0}, true},
		{"00FF00", Color{0, 1, 0}, true},
		{"fff", Color{}, false},
		{"#gggggg", Color{}, false},
		{"", Color{}, false},
	}

	for _, tt := range tests {
		have, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("%q: unexpected error state: %v", tt.in, err)
			continue
		}

		if have != tt.want {
			t.Errorf("%q: want %v; have %v", tt.in, tt.want, have)
		}
	}
}

func TestColorString(t *testing.T) {
	for _, s := range []string{"#ffffff", "#000000", "#33ff66", "#0a0b0c"} {
		c, err := ParseColor(s)
		if err != nil {
			t.Fatal(err)
		}

		if c.String() != s {
			t.Errorf("want %s; have %s", s, c)
		}
	}
}
