//go:build ebiten

package app

import (
	"fmt"
	"sync/atomic"

	"voxca/internal/metrics"
	"voxca/internal/render"
	"voxca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	panelWidth = 320
	viewWidth  = 640
	viewHeight = 480
)

// Game adapts the queue and gallery to the ebiten.Game interface.
type Game struct {
	core  *Core
	view  *render.Voxels
	panel *ui.Panel

	requests chan int
	selected int
	quit     atomic.Bool
}

// New constructs a Game for the provided core.
func New(c *Core) *Game {
	return &Game{
		core:     c,
		view:     render.NewVoxels(viewWidth, viewHeight),
		panel:    ui.NewPanel(panelWidth, viewHeight),
		requests: make(chan int, 8),
		selected: -1,
	}
}

// Request asks for result i to be displayed. It is safe to call from any
// goroutine; the render happens on the next Update.
func (g *Game) Request(i int) {
	select {
	case g.requests <- i:
	default:
	}
}

// Quit makes the next Update end the game loop.
func (g *Game) Quit() { g.quit.Store(true) }

// Update handles input and applies pending selection requests.
func (g *Game) Update() error {
	if g.quit.Load() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	records := g.core.Gallery.Records()
	if clicked := g.panel.Update(g.core.Runner.Snapshot(), records); clicked >= 0 {
		g.Request(clicked)
	}

	next := g.panel.Selected
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && next+1 < len(records) {
		next++
		g.panel.Selected = next
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) && next > 0 {
		next--
		g.panel.Selected = next
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && next >= 0 {
		g.Request(next)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.selected >= 0 {
		g.Request(g.selected)
	}

	for {
		select {
		case i := <-g.requests:
			g.show(i)
		default:
			return nil
		}
	}
}

func (g *Game) show(i int) {
	if err := g.core.Gallery.Select(i, g.view); err != nil {
		metrics.Renders.WithLabelValues(metrics.OutcomeError).Inc()
		g.core.Log.Error().Err(err).Int("result", i).Msg("render failed")
		g.panel.Status = fmt.Sprintf("result %d: %v", i, err)
		return
	}
	metrics.Renders.WithLabelValues(metrics.OutcomeOK).Inc()
	g.selected = i
	g.panel.Selected = i
	g.panel.Status = fmt.Sprintf("showing result %d", i)
}

// Draw renders the panel and the cached voxel view.
func (g *Game) Draw(screen *ebiten.Image) {
	g.panel.Draw(screen)
	g.view.Draw(screen, g.panel.Width(), 0)
}

// Layout keeps a fixed logical resolution; ebiten scales it to the window.
func (g *Game) Layout(int, int) (int, int) {
	return panelWidth + viewWidth, viewHeight
}

// Size returns the logical screen size.
func (g *Game) Size() (int, int) { return g.Layout(0, 0) }
