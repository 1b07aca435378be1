package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeGIF(t *testing.T, w, h int, fills []color.Color, disposal []byte) []byte {
	t.Helper()
	pal := color.Palette{color.RGBA{}}
	pal = append(pal, fills...)
	g := &gif.GIF{Config: image.Config{Width: w, Height: h, ColorModel: pal}}
	for i, c := range fills {
		// Each frame only covers the left half so compositing is observable.
		frame := image.NewPaletted(image.Rect(0, 0, w/2, h), pal)
		for y := 0; y < h; y++ {
			for x := 0; x < w/2; x++ {
				frame.Set(x, y, c)
			}
		}
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 10)
		g.Disposal = append(g.Disposal, disposal[i])
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))
	return buf.Bytes()
}

func TestDecodeGIF(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	data := encodeGIF(t, 20, 10, []color.Color{red, blue, red}, []byte{gif.DisposalNone, gif.DisposalNone, gif.DisposalNone})

	cases := []struct {
		name       string
		maxFrames  int
		scale      float64
		wantFrames int
		wantW      int
		wantH      int
	}{
		{"all frames", 0, 1, 3, 20, 10},
		{"capped", 2, 1, 2, 20, 10},
		{"cap above count", 9, 1, 3, 20, 10},
		{"scaled down", 0, 0.5, 3, 10, 5},
		{"tiny scale keeps a pixel", 1, 0.001, 1, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			frames, err := DecodeGIF(bytes.NewReader(data), c.maxFrames, c.scale)
			require.NoError(t, err)
			require.Len(t, frames, c.wantFrames)
			for _, f := range frames {
				assert.Equal(t, c.wantW, f.Bounds().Dx())
				assert.Equal(t, c.wantH, f.Bounds().Dy())
			}
		})
	}
}

func TestDecodeGIFComposites(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	data := encodeGIF(t, 20, 10, []color.Color{red, blue}, []byte{gif.DisposalBackground, gif.DisposalNone})

	frames, err := DecodeGIF(bytes.NewReader(data), 0, 1)
	require.NoError(t, err)
	require.Len(t, frames, 2)

	_, _, b, a := frames[1].At(2, 2).RGBA()
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)
	_, _, _, a = frames[0].At(15, 2).RGBA()
	assert.Zero(t, a, "uncovered area stays transparent")
}

func TestDecodeGIFRejectsGarbage(t *testing.T) {
	_, err := DecodeGIF(bytes.NewReader([]byte("not a gif")), 0, 1)
	assert.Error(t, err)
}

func TestCircleCrop(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	out := CircleCrop(src, 10)
	assert.Equal(t, image.Rect(0, 0, 10, 10), out.Bounds())

	cases := []struct {
		name   string
		x, y   int
		opaque bool
	}{
		{"center", 5, 5, true},
		{"top left corner", 0, 0, false},
		{"bottom right corner", 9, 9, false},
		{"left edge middle", 0, 5, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, _, a := out.At(c.x, c.y).RGBA()
			if c.opaque {
				assert.Equal(t, uint32(0xffff), a)
			} else {
				assert.Zero(t, a)
			}
		})
	}
}

func TestLoadProfileImageMissing(t *testing.T) {
	img, ok := LoadProfileImage("does/not/exist.png", 80)
	assert.False(t, ok)
	assert.Nil(t, img)
}
