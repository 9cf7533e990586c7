package aevum

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Resizable lets the user resize the window; the scene follows and
	// scrub timelines re-measure.
	Resizable bool
	// ExitOnScriptDone ends the loop once an attached TestRunner finishes.
	ExitOnScriptDone bool
	// MaxFrames ends the loop after this many frames. 0 runs until closed.
	MaxFrames uint64
}

// Run opens a window and drives the scene until it is closed, the update
// function returns an error, or one of the exit conditions in cfg is met.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	scene.Resize(float64(cfg.Width), float64(cfg.Height))

	err := ebiten.RunGame(&game{scene: scene, cfg: cfg})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	scene *Scene
	cfg   RunConfig

	fpsText    string
	fpsUpdated time.Time
}

func (g *game) Update() error {
	if err := g.scene.Update(); err != nil {
		return err
	}
	if g.cfg.ExitOnScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() &&
		g.scene.PendingScreenshots() == 0 {
		return ebiten.Termination
	}
	if g.cfg.MaxFrames > 0 && g.scene.Frame() >= g.cfg.MaxFrames {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if !g.cfg.ShowFPS {
		return
	}
	// Refreshed twice a second so the readout stays legible.
	if now := time.Now(); now.Sub(g.fpsUpdated) >= 500*time.Millisecond {
		g.fpsUpdated = now
		g.fpsText = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nScroll: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS(),
			g.scene.camera.ScrollOffset())
	}
	ebitenutil.DebugPrintAt(screen, g.fpsText, 4, screen.Bounds().Dy()-48)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	if g.cfg.Resizable {
		g.scene.Resize(float64(outsideW), float64(outsideH))
		return outsideW, outsideH
	}
	return g.cfg.Width, g.cfg.Height
}
