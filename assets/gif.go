// Package assets loads the pet's animation frames and profile picture from
// disk and uploads them as ebiten images.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// ErrNoFrames is returned when an animation file decodes to zero frames.
var ErrNoFrames = errors.New("assets: no frames")

// LoadAnimation decodes dir/file, keeps at most maxFrames frames (all when
// maxFrames <= 0), scales them and uploads them to the GPU.
func LoadAnimation(dir, file string, maxFrames int, scale float64) ([]*ebiten.Image, error) {
	path := filepath.Join(dir, file)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer f.Close()

	frames, err := DecodeGIF(f, maxFrames, scale)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	out := make([]*ebiten.Image, len(frames))
	for i, fr := range frames {
		out[i] = ebiten.NewImageFromImage(fr)
	}
	return out, nil
}

// DecodeGIF returns the fully composited frames of an animated GIF, honoring
// each frame's disposal method, scaled by scale.
func DecodeGIF(r io.Reader, maxFrames int, scale float64) ([]image.Image, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	w, h := g.Config.Width, g.Config.Height
	if w <= 0 || h <= 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}
	n := len(g.Image)
	if maxFrames > 0 && maxFrames < n {
		n = maxFrames
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	frames := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		frame := g.Image[i]
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var saved *image.RGBA
		if disposal == gif.DisposalPrevious {
			saved = cloneRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		frames = append(frames, Scale(canvas, scale))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = saved
		}
	}
	return frames, nil
}

// Scale returns a copy of src resized by factor using Catmull-Rom filtering.
// Each dimension is at least one pixel.
func Scale(src image.Image, factor float64) *image.RGBA {
	b := src.Bounds()
	if factor <= 0 {
		factor = 1
	}
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
