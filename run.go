package knob

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ClearColor    Color
	ShowFPS       bool

	// UpdateFunc, if set, runs once per tick after the panel has processed
	// input. Returning an error stops the game loop.
	UpdateFunc func() error
}

// Run opens a window and drives panel until the window is closed or
// UpdateFunc fails. For a custom game loop, call Panel.Update and Panel.Draw
// from your own ebiten.Game instead.
func Run(panel *Panel, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{panel: panel, cfg: cfg})
}

// game adapts a Panel to ebiten.Game.
type game struct {
	panel *Panel
	cfg   RunConfig
}

func (g *game) Update() error {
	g.panel.Update()
	if g.cfg.UpdateFunc != nil {
		return g.cfg.UpdateFunc()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor.A > 0 {
		screen.Fill(g.cfg.ClearColor.toRGBA())
	}
	g.panel.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
