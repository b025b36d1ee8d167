package display

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Color defines an RGB color with components in the range [0, 1].
type Color [3]float32

// Default colors.
var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
)

// ParseColor parses a hexadecimal RRGGBB color, optionally prefixed with '#'.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, errors.Errorf("invalid color %q: want RRGGBB", s)
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, errors.Wrapf(err, "invalid color %q", s)
	}

	return Color{
		float32((n>>16)&0xff) / 255,
		float32((n>>8)&0xff) / 255,
		float32(n&0xff) / 255,
	}, nil
}

// String returns the color in RRGGBB notation.
func (c Color) String() string {
	var sb strings.Builder
	sb.WriteByte('#')
	for _, v := range c {
		b := strconv.FormatUint(uint64(v*255+0.5), 16)
		if len(b) < 2 {
			sb.WriteByte('0')
		}
		sb.WriteString(b)
	}
	return sb.String()
}
