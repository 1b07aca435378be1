package pet

import "github.com/milk9111/desktopcat/common"

// Position is the sprite's top-left corner in screen pixels.
type Position struct {
	X, Y int
}

// Bounds is the inclusive range the sprite's top-left corner may occupy so
// that the whole sprite stays on screen.
type Bounds struct {
	MaxX, MaxY int
}

func NewBounds(screenW, screenH, spriteW, spriteH int) Bounds {
	return Bounds{
		MaxX: max(0, screenW-spriteW),
		MaxY: max(0, screenH-spriteH),
	}
}

func (b Bounds) Contains(p Position) bool {
	return common.InRange(p.X, 0, b.MaxX) && common.InRange(p.Y, 0, b.MaxY)
}

func (b Bounds) Clamp(p Position) Position {
	return Position{X: common.Clamp(p.X, 0, b.MaxX), Y: common.Clamp(p.Y, 0, b.MaxY)}
}

// Step translates p horizontally by dx. A step that would leave the bounds is
// skipped entirely and p is returned unchanged.
func (b Bounds) Step(p Position, dx int) Position {
	x := p.X + dx
	if !common.InRange(x, 0, b.MaxX) {
		return p
	}
	p.X = x
	return p
}

// HomePosition is the resting spot near the bottom-right corner of the
// screen, inset by the sprite size plus the given margins.
func HomePosition(screenW, screenH, spriteW, spriteH, marginX, marginY int) Position {
	b := NewBounds(screenW, screenH, spriteW, spriteH)
	return b.Clamp(Position{X: screenW - spriteW - marginX, Y: screenH - spriteH - marginY})
}
