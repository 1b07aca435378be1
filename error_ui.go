package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const (
	errorWidth  = 520
	errorHeight = 180
)

// errorScreen is shown instead of the pet when start-up fails. It quits on
// the button, Escape or the window close button.
type errorScreen struct {
	ui   *ebitenui.UI
	quit bool
}

func newErrorScreen(err error) *errorScreen {
	s := &errorScreen{}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	textColor := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	title := widget.NewText(
		widget.TextOpts.Text("The cat could not start", &face, color.NRGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	msg := widget.NewText(
		widget.TextOpts.Text(err.Error(), &face, textColor),
		widget.TextOpts.MaxWidth(errorWidth-60),
	)
	quitBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Quit", &face, &widget.ButtonTextColor{Idle: textColor}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			s.quit = true
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(errorWidth, errorHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(msg)
	panel.AddChild(quitBtn)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	s.ui = &ebitenui.UI{Container: root}
	return s
}

func (s *errorScreen) Update() error {
	s.ui.Update()
	if s.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return nil
}

func (s *errorScreen) Draw(screen *ebiten.Image) {
	s.ui.Draw(screen)
}

func (s *errorScreen) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return errorWidth, errorHeight
}

func (s *errorScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
