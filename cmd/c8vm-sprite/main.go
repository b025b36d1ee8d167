package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
)

// SpriteWidth is the fixed pixel width of a sprite; DRW draws one byte per row.
const SpriteWidth = 8

// MaxSpriteHeight is the largest row count a single DRW instruction can draw.
const MaxSpriteHeight = 15

func main() {
	config := parseArgs()

	if err := run(config); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *Config) error {
	img, err := loadImage(c.Input, c.Height)
	if err != nil {
		return err
	}

	out, close, err := makeWriter(c.Output)
	if err != nil {
		return err
	}

	defer close()

	sprites := encode(img, c.Height)

	if c.Raw {
		for _, s := range sprites {
			if _, err := out.Write(s); err != nil {
				return errors.Wrapf(err, "write output")
			}
		}
		return nil
	}

	return writeListing(out, sprites)
}

// encode slices the image into SpriteWidth x height tiles, row by row, and
// returns the sprite bytes for each tile. Pixels with a non-zero red
// component are lit.
func encode(img image.Image, height int) [][]byte {
	r := img.Bounds()
	w := r.Dx() / SpriteWidth
	h := r.Dy() / height

	sprites := make([][]byte, 0, w*h)

	for y := 0; y < h; y++ {
		sy := r.Min.Y + y*height

		for x := 0; x < w; x++ {
			sx := r.Min.X + x*SpriteWidth
			sprite := make([]byte, height)

			for py := 0; py < height; py++ {
				for px := 0; px < SpriteWidth; px++ {
					red, _, _, _ := img.At(sx+px, sy+py).RGBA()
					if red != 0 {
						sprite[py] |= 0x80 >> px
					}
				}
			}

			sprites = append(sprites, sprite)
		}
	}

	return sprites
}

// loadImage loads an image from the input file.
func loadImage(file string, height int) (image.Image, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", file)
	}

	r := img.Bounds()
	if r.Dx() < SpriteWidth || r.Dy() < height {
		return nil, errors.Errorf("source image is too small; expected at least %d x %d pixels", SpriteWidth, height)
	}

	return img, nil
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(file string) (io.Writer, func(), error) {
	if file == "" {
		return os.Stdout, func() {}, nil
	}

	dir, _ := filepath.Split(file)
	if dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			return nil, nil, err
		}
	}

	fd, err := os.Create(file)
	if err != nil {
		return nil, nil, err
	}

	return fd, func() { fd.Close() }, nil
}
