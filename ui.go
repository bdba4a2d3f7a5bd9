package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/reactor/common"
	"golang.org/x/image/font/basicfont"
)

var (
	uiTextColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	uiPanelColor  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	uiButtonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	uiHoverColor  = color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255}
)

// uiKit holds the shared face and images so each screen is built the same way.
type uiKit struct {
	face   ebtext.Face
	panel  *imageui.NineSlice
	button *widget.ButtonImage
}

func newUIKit() *uiKit {
	btn := imageui.NewNineSliceColor(uiButtonColor)
	return &uiKit{
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
		panel:  imageui.NewNineSliceColor(uiPanelColor),
		button: &widget.ButtonImage{Idle: btn, Hover: imageui.NewNineSliceColor(uiHoverColor), Pressed: btn},
	}
}

func (k *uiKit) text(label string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &k.face, uiTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (k *uiKit) btn(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(k.button),
		widget.ButtonOpts.Text(label, &k.face, &widget.ButtonTextColor{Idle: uiTextColor}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 32),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

// column is a vertical row layout anchored at (h, v) in a full-screen root.
func (k *uiKit) column(h, v widget.AnchorLayoutPosition, background bool, children ...widget.PreferredSizeLocateableWidget) *ebitenui.UI {
	opts := []widget.ContainerOpt{
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: h, VerticalPosition: v}),
		),
	}
	if background {
		pw, ph := menuPanelSize()
		opts = append(opts,
			widget.ContainerOpts.BackgroundImage(k.panel),
			widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(pw, ph)),
		)
	}
	panel := widget.NewContainer(opts...)
	for _, c := range children {
		panel.AddChild(c)
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// loadingScreen shows "Loading" with a growing run of dots.
type loadingScreen struct {
	ui    *ebitenui.UI
	label *widget.Text
}

func newLoadingScreen(k *uiKit) *loadingScreen {
	label := k.text(loadingLabel(0))
	return &loadingScreen{
		ui:    k.column(widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionCenter, false, label),
		label: label,
	}
}

func (s *loadingScreen) SetFrame(frame int) {
	s.label.Label = loadingLabel(frame)
}

// loadingLabel cycles one, two and three dots, advancing every loadingDotFrames.
func loadingLabel(frame int) string {
	if frame < 0 {
		frame = 0
	}
	n := frame/loadingDotFrames%3 + 1
	return "Loading" + "..."[:n]
}

func newMenuUI(k *uiKit, onIntro, onPlay, onExit func()) *ebitenui.UI {
	title := k.text("Reactor")
	return k.column(widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionCenter, true,
		title,
		k.btn("Intro (if first time)", onIntro),
		k.btn("Play", onPlay),
		k.btn("Exit", onExit),
	)
}

func newPlayingUI(k *uiKit, onExit func()) *ebitenui.UI {
	return k.column(widget.AnchorLayoutPositionEnd, widget.AnchorLayoutPositionStart, false,
		k.btn("Exit", onExit),
	)
}

// menuPanelSize is the minimum size of the menu panel, half the base resolution.
func menuPanelSize() (int, int) {
	return common.BaseWidth / 2, common.BaseHeight / 2
}
