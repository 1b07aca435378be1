package assets

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// LoadProfileImage returns the picture at path cropped to a size×size circle.
// Any failure yields false; the caller shows a placeholder instead.
func LoadProfileImage(path string, size int) (*ebiten.Image, bool) {
	img, err := decodeFile(path)
	if err != nil || size <= 0 {
		return nil, false
	}
	return ebiten.NewImageFromImage(CircleCrop(img, size)), true
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// CircleCrop center-crops src to a square, resizes it to size×size and masks
// everything outside the inscribed circle to transparent.
func CircleCrop(src image.Image, size int) *image.RGBA {
	b := src.Bounds()
	side := min(b.Dx(), b.Dy())
	square := image.Rect(0, 0, side, side).Add(image.Pt(
		b.Min.X+(b.Dx()-side)/2,
		b.Min.Y+(b.Dy()-side)/2,
	))

	fitted := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(fitted, fitted.Bounds(), src, square, draw.Src, nil)

	out := image.NewRGBA(fitted.Bounds())
	draw.DrawMask(out, out.Bounds(), fitted, image.Point{}, circle{size: size}, image.Point{}, draw.Over)
	return out
}

// circle is an alpha mask that is opaque inside the disc inscribed in a
// size×size square.
type circle struct {
	size int
}

func (c circle) ColorModel() color.Model { return color.AlphaModel }

func (c circle) Bounds() image.Rectangle { return image.Rect(0, 0, c.size, c.size) }

func (c circle) At(x, y int) color.Color {
	r := float64(c.size) / 2
	dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
	if dx*dx+dy*dy <= r*r {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}
