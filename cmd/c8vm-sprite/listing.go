package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hexaflex/c8vm/framebuffer"
)

// writeListing writes the sprites as byte listings, each row annotated with
// its pixels.
func writeListing(w io.Writer, sprites [][]byte) error {
	for i, s := range sprites {
		if _, err := fmt.Fprintf(w, "// sprite %d, %d bytes\n", i, len(s)); err != nil {
			return err
		}

		rows := preview(s)
		for j, b := range s {
			if _, err := fmt.Fprintf(w, "0x%02X, // %s\n", b, rows[j]); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// preview draws the sprite the way the interpreter would and returns its rows.
func preview(sprite []byte) []string {
	fb := framebuffer.New()
	fb.Draw(0, 0, sprite)

	lines := strings.Split(fb.String(), "\n")
	rows := make([]string, len(sprite))

	for i := range rows {
		if i < len(lines) {
			rows[i] = lines[i][:SpriteWidth]
		}
	}

	return rows
}
