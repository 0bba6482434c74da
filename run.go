package qraft

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run. Zero values select the
// defaults noted on each field.
type RunConfig struct {
	Title  string
	Width  int // default 800
	Height int // default 600
	// Background, when non-nil, replaces the scene's ClearColor.
	Background *Color
	// ShowFPS draws the measured FPS and TPS in the top-left corner.
	ShowFPS bool
	// Debug turns on the scene's debug mode.
	Debug bool
	// Controls attaches a FlyController with the default key bindings to the
	// scene camera.
	Controls bool
}

// Run opens a window and drives scene at 60 ticks per second until the
// window is closed or Escape is pressed.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Background != nil {
		scene.ClearColor = *cfg.Background
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	if cfg.Controls {
		scene.Animate(NewFlyController(scene.Camera, NewEbitenInput(nil)))
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(60)

	g := &game{scene: scene, cfg: cfg}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene   *Scene
	cfg     RunConfig
	surface *EbitenSurface
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.surface == nil {
		g.surface = NewEbitenSurface(screen)
	} else {
		g.surface.SetTarget(screen)
	}
	g.scene.Draw(g.surface)

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
