package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	doubleClickWindow = 400 * time.Millisecond
	doubleClickSlop   = 6 // pixels
)

// Input holds the per-frame input state the pet reacts to.
type Input struct {
	// CursorX/Y are the cursor position in window pixels.
	CursorX, CursorY int
	// ClickPressed is true on the frame the left button went down.
	ClickPressed bool
	// ClosePressed is true on the frame Escape went down.
	ClosePressed bool
	// CopyPressed is true on the frame Ctrl+Shift+C completed.
	CopyPressed bool
}

// Update polls mouse and keyboard.
func (i *Input) Update() {
	i.CursorX, i.CursorY = ebiten.CursorPosition()
	i.ClickPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	i.ClosePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	i.CopyPressed = ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyC)
}

// clickTracker turns single presses into double clicks: two presses within
// doubleClickWindow of each other and doubleClickSlop pixels apart.
type clickTracker struct {
	armed bool
	at    time.Duration
	x, y  int
}

// press records a press and reports whether it completes a double click.
func (c *clickTracker) press(now time.Duration, x, y int) bool {
	if c.armed && now-c.at <= doubleClickWindow && abs(x-c.x) <= doubleClickSlop && abs(y-c.y) <= doubleClickSlop {
		c.armed = false
		return true
	}
	c.armed, c.at, c.x, c.y = true, now, x, y
	return false
}

func (c *clickTracker) reset() { c.armed = false }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
