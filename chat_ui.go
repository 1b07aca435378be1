package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/desktopcat/chat"
	"github.com/milk9111/desktopcat/config"
)

var (
	orange    = color.NRGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	white     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black     = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	panelGray = color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xf0}
	logGray   = color.NRGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}
)

// ChatUI hosts chat panels inside the pet's window. It implements
// chat.WindowFactory; at most one panel is attached at a time.
type ChatUI struct {
	UI   *ebitenui.UI
	root *widget.Container
	face ebtext.Face

	settings config.ChatSpec
	profile  *ebiten.Image

	current *chatPanel
}

// NewChatUI builds the widget root. profile may be nil, in which case panels
// show a placeholder where the picture would go.
func NewChatUI(spec config.ChatSpec, profile *ebiten.Image) *ChatUI {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	return &ChatUI{
		UI:       &ebitenui.UI{Container: root},
		root:     root,
		face:     face,
		settings: spec,
		profile:  profile,
	}
}

// Open reports whether a panel is attached.
func (c *ChatUI) Open() bool { return c.current != nil }

// PanelSize returns the configured panel dimensions.
func (c *ChatUI) PanelSize() (int, int) { return c.settings.Width, c.settings.Height }

// SetSide anchors the open panel to the left or right edge of the window.
func (c *ChatUI) SetSide(left bool) {
	p := c.current
	if p == nil || p.left == left {
		return
	}
	p.left = left
	p.container.GetWidget().LayoutData = panelAnchor(left)
	c.root.RequestRelayout()
}

func panelAnchor(left bool) widget.AnchorLayoutData {
	h := widget.AnchorLayoutPositionEnd
	if left {
		h = widget.AnchorLayoutPositionStart
	}
	return widget.AnchorLayoutData{HorizontalPosition: h, VerticalPosition: widget.AnchorLayoutPositionEnd}
}

// Update forwards input to the widgets and scrolls the log with the wheel.
func (c *ChatUI) Update() {
	if c.current != nil {
		_, dy := ebiten.Wheel()
		if dy != 0 {
			c.current.scrollBy(-dy * 0.1)
		}
	}
	c.UI.Update()
}

func (c *ChatUI) Draw(screen *ebiten.Image) {
	if c.current != nil {
		c.UI.Draw(screen)
	}
}

// NewWindow implements chat.WindowFactory.
func (c *ChatUI) NewWindow(spec chat.WindowSpec) (chat.Window, error) {
	if c.current != nil {
		// A panel the controller did not tear down first; drop it.
		_ = c.current.Destroy()
	}
	face := &c.face
	p := &chatPanel{ui: c, face: face, wrap: c.settings.WrapWidth, left: true}

	header := c.header(spec, face)

	p.log = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
		)),
	)
	p.scroll = widget.NewScrollContainer(
		widget.ScrollContainerOpts.Content(p.log),
		widget.ScrollContainerOpts.StretchContentWidth(),
		widget.ScrollContainerOpts.Image(&widget.ScrollContainerImage{
			Idle: imageui.NewNineSliceColor(logGray),
			Mask: imageui.NewNineSliceColor(logGray),
		}),
	)

	p.entry = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(200, 28)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     imageui.NewNineSliceColor(white),
			Disabled: imageui.NewNineSliceColor(logGray),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     black,
			Disabled: color.Gray{Y: 120},
			Caret:    black,
		}),
		widget.TextInputOpts.Face(face),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			spec.OnSubmit(args.InputText)
		}),
	)
	send := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    imageui.NewNineSliceColor(orange),
			Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0xe0, G: 0x90, B: 0x00, A: 0xff}),
		}),
		widget.ButtonOpts.Text("Send", face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			spec.OnSubmit(p.entry.GetText())
		}),
	)
	entryRow := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{true, false}, []bool{true}),
			widget.GridLayoutOpts.Spacing(6, 0),
			widget.GridLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 8, Left: 8, Right: 8}),
		)),
	)
	entryRow.AddChild(p.entry)
	entryRow.AddChild(send)

	p.container = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelGray)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{false, true, false}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(c.settings.Width, c.settings.Height),
			widget.WidgetOpts.LayoutData(panelAnchor(p.left)),
		),
	)
	p.container.AddChild(header)
	p.container.AddChild(p.scroll)
	p.container.AddChild(entryRow)

	c.root.AddChild(p.container)
	c.current = p
	p.entry.Focus(true)
	return p, nil
}

// header shows the profile picture, the persona's name and tagline and the
// close button on an orange strip.
func (c *ChatUI) header(spec chat.WindowSpec, face *ebtext.Face) *widget.Container {
	header := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(orange)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(3),
			widget.GridLayoutOpts.Stretch([]bool{false, true, false}, []bool{true}),
			widget.GridLayoutOpts.Spacing(10, 0),
			widget.GridLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
		)),
	)

	if c.profile != nil {
		header.AddChild(widget.NewGraphic(widget.GraphicOpts.Image(c.profile)))
	} else {
		header.AddChild(widget.NewText(
			widget.TextOpts.Text("[no profile image]", face, white),
		))
	}

	names := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)
	names.AddChild(widget.NewText(widget.TextOpts.Text(spec.Title, face, white)))
	names.AddChild(widget.NewText(widget.TextOpts.Text(spec.PersonaName, face, white)))
	names.AddChild(widget.NewText(
		widget.TextOpts.Text(spec.Tagline, face, white),
		widget.TextOpts.MaxWidth(float64(c.settings.Width-120)),
	))
	header.AddChild(names)

	header.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0xcc, G: 0x55, B: 0x00, A: 0xff}),
			Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x99, G: 0x33, B: 0x00, A: 0xff}),
		}),
		widget.ButtonOpts.Text("X", face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.GridLayoutData{VerticalPosition: widget.GridLayoutPositionStart})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			spec.OnClose()
		}),
	))
	return header
}

// chatPanel is one session's panel. It implements chat.Window.
type chatPanel struct {
	ui        *ChatUI
	face      *ebtext.Face
	wrap      int
	left      bool
	destroyed bool

	container *widget.Container
	scroll    *widget.ScrollContainer
	log       *widget.Container
	entry     *widget.TextInput
}

func (p *chatPanel) AppendBubble(b chat.Bubble) {
	if p.destroyed {
		return
	}
	bg, fg, pos := white, black, widget.RowLayoutPositionStart
	if b.Align == chat.AlignRight {
		bg, fg, pos = orange, white, widget.RowLayoutPositionEnd
	}
	bubble := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 8, Right: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: pos})),
	)
	bubble.AddChild(widget.NewText(
		widget.TextOpts.Text(b.Text, p.face, fg),
		widget.TextOpts.MaxWidth(float64(p.wrap)),
	))
	p.log.AddChild(bubble)
}

func (p *chatPanel) ScrollToLatest() {
	if p.destroyed {
		return
	}
	p.scroll.ScrollTop = 1
}

func (p *chatPanel) scrollBy(d float64) {
	p.scroll.ScrollTop = min(1, max(0, p.scroll.ScrollTop+d))
}

func (p *chatPanel) ClearEntry() {
	if p.destroyed {
		return
	}
	p.entry.SetText("")
}

// Destroy detaches the panel. A second call reports chat.ErrWindowClosed.
func (p *chatPanel) Destroy() error {
	if p.destroyed {
		return chat.ErrWindowClosed
	}
	p.destroyed = true
	p.ui.root.RemoveChild(p.container)
	if p.ui.current == p {
		p.ui.current = nil
	}
	return nil
}
