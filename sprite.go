package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/desktopcat/pet"
)

// Sprite is the pet's on-screen body. The scheduler and typing mode drive it
// through pet.Renderer; Game draws it and places the window from its position.
type Sprite struct {
	frames map[string][]*ebiten.Image
	clip   string
	frame  int
	pos    pet.Position
	w, h   int
}

func NewSprite(frames map[string][]*ebiten.Image) (*Sprite, error) {
	idle := frames[pet.ClipIdle]
	if len(idle) == 0 {
		return nil, errors.New("sprite: no idle frames")
	}
	b := idle[0].Bounds()
	return &Sprite{
		frames: frames,
		clip:   pet.ClipIdle,
		w:      b.Dx(),
		h:      b.Dy(),
	}, nil
}

// ShowFrame implements pet.Renderer.
func (s *Sprite) ShowFrame(clip string, frame int) {
	if _, ok := s.frames[clip]; !ok {
		panic(fmt.Sprintf("sprite: unknown clip %q", clip))
	}
	s.clip, s.frame = clip, frame
}

// MoveTo implements pet.Renderer.
func (s *Sprite) MoveTo(p pet.Position) { s.pos = p }

func (s *Sprite) Position() pet.Position { return s.pos }

func (s *Sprite) Size() (int, int) { return s.w, s.h }

// Current returns the clip and frame index on display.
func (s *Sprite) Current() (string, int) { return s.clip, s.frame }

// Image returns the frame on display. Frame indices wrap.
func (s *Sprite) Image() *ebiten.Image {
	frames := s.frames[s.clip]
	return frames[s.frame%len(frames)]
}

// Hit reports whether window pixel (x, y) falls on the sprite drawn at (ox, oy).
func (s *Sprite) Hit(x, y, ox, oy int) bool {
	return x >= ox && x < ox+s.w && y >= oy && y < oy+s.h
}

func (s *Sprite) Draw(dst *ebiten.Image, ox, oy int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(ox), float64(oy))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(s.Image(), op)
}
