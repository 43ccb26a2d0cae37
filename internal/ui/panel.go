//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"voxca/internal/core"
	"voxca/internal/runner"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Panel renders the queue and result list to the left of the voxel view and
// reports clicks on results.
type Panel struct {
	width  int
	height int
	panel  *ebiten.Image
	pixel  *ebiten.Image
	rows   []Row
	scroll int

	Selected int
	Status   string
}

// NewPanel constructs a panel of the given size.
func NewPanel(width, height int) *Panel {
	p := &Panel{width: width, height: height, Selected: -1}
	p.panel = ebiten.NewImage(width, height)
	p.pixel = ebiten.NewImage(1, 1)
	p.pixel.Fill(color.White)
	return p
}

// Width returns the panel width in pixels.
func (p *Panel) Width() int { return p.width }

// Update rebuilds the rows and returns the result index the user clicked,
// or -1.
func (p *Panel) Update(snap runner.Snapshot, records []core.ResultRecord) int {
	p.rows = Layout(snap, records, p.width)

	_, wheel := ebiten.Wheel()
	p.scroll -= int(wheel * textLine * 2)
	if p.scroll < 0 {
		p.scroll = 0
	}
	if len(p.rows) > 0 {
		maxScroll := p.rows[len(p.rows)-1].Rect.Max.Y - p.height + panelPadding
		if maxScroll < 0 {
			maxScroll = 0
		}
		if p.scroll > maxScroll {
			p.scroll = maxScroll
		}
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return -1
	}
	x, y := ebiten.CursorPosition()
	if x < 0 || x >= p.width {
		return -1
	}
	row, ok := RowAt(p.rows, x, y+p.scroll)
	if !ok || row.Kind != RowResult {
		return -1
	}
	return row.Index
}

// Draw paints the panel at the left edge of screen.
func (p *Panel) Draw(screen *ebiten.Image) {
	p.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	face := basicfont.Face7x13
	for _, row := range p.rows {
		rect := row.Rect.Sub(image.Pt(0, p.scroll))
		if rect.Max.Y < 0 || rect.Min.Y > p.height {
			continue
		}
		fg := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		switch row.Kind {
		case RowHeader:
			fg = color.RGBA{R: 200, G: 200, B: 210, A: 255}
		case RowFailure:
			fg = color.RGBA{R: 230, G: 120, B: 110, A: 255}
		case RowResult:
			if row.Index == p.Selected {
				p.fillRect(rect, color.RGBA{R: 54, G: 56, B: 64, A: 255})
			}
		}
		for i, line := range row.Lines {
			text.Draw(p.panel, line, face, panelPadding, rect.Min.Y+(i+1)*textLine-3, fg)
		}
	}
	if p.Status != "" {
		p.fillRect(image.Rect(0, p.height-textLine-6, p.width, p.height), color.RGBA{R: 32, G: 34, B: 40, A: 255})
		text.Draw(p.panel, truncate(p.Status, p.width/7-2), face, panelPadding, p.height-6, color.RGBA{R: 160, G: 160, B: 170, A: 255})
	}
	screen.DrawImage(p.panel, nil)
}

func (p *Panel) fillRect(rect image.Rectangle, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	p.panel.DrawImage(p.pixel, op)
}
