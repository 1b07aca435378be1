package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/desktopcat/pet"
)

// windowLayout places the OS window around the sprite and, while a chat is
// open, the chat panel beside it. Coordinates inside the window are relative
// to its top-left corner.
type windowLayout struct {
	X, Y          int
	Width, Height int

	SpriteX, SpriteY int

	Panel          bool
	PanelLeft      bool
	PanelX, PanelY int
}

// layoutWindow computes the window for a sprite whose top-left screen position
// is pos. The panel goes to the sprite's left when there is room on screen,
// otherwise to its right; both are bottom-aligned.
func layoutWindow(pos pet.Position, spriteW, spriteH int, panelW, panelH int, chatOpen bool) windowLayout {
	if !chatOpen {
		return windowLayout{X: pos.X, Y: pos.Y, Width: spriteW, Height: spriteH}
	}

	l := windowLayout{
		Panel:  true,
		Width:  spriteW + panelW,
		Height: max(spriteH, panelH),
	}
	bottom := pos.Y + spriteH
	l.Y = max(0, bottom-l.Height)
	l.SpriteY = pos.Y - l.Y
	l.PanelY = bottom - l.Y - panelH
	if l.PanelY < 0 {
		l.PanelY = 0
	}

	if pos.X >= panelW {
		l.PanelLeft = true
		l.X = pos.X - panelW
		l.SpriteX = panelW
		l.PanelX = 0
	} else {
		l.X = pos.X
		l.SpriteX = 0
		l.PanelX = spriteW
	}
	return l
}

// osWindow is the slice of the ebiten window API the pet drives.
type osWindow interface {
	SetTitle(title string)
	SetSize(w, h int)
	SetPosition(x, y int)
}

type ebitenWindow struct{}

func (ebitenWindow) SetTitle(title string) { ebiten.SetWindowTitle(title) }
func (ebitenWindow) SetSize(w, h int)      { ebiten.SetWindowSize(w, h) }
func (ebitenWindow) SetPosition(x, y int)  { ebiten.SetWindowPosition(x, y) }

// windowPlacer applies layouts to the OS window, touching only what changed.
// The title is set once, on the first layout, and never again.
type windowPlacer struct {
	win    osWindow
	title  string
	layout windowLayout
	placed bool
}

// apply reports whether the layout differed from the last one applied.
func (p *windowPlacer) apply(l windowLayout) bool {
	if p.placed && l == p.layout {
		return false
	}
	if !p.placed {
		p.win.SetTitle(p.title)
	}
	if !p.placed || l.Width != p.layout.Width || l.Height != p.layout.Height {
		p.win.SetSize(l.Width, l.Height)
	}
	if !p.placed || l.X != p.layout.X || l.Y != p.layout.Y {
		p.win.SetPosition(l.X, l.Y)
	}
	p.layout, p.placed = l, true
	return true
}
