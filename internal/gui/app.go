//go:build gui

package gui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Anthony-Giacinto/pendulum/internal/config"
	"github.com/Anthony-Giacinto/pendulum/internal/pendulum"
)

const tps = 60

var (
	colBg    = color.RGBA{10, 10, 10, 255}
	colShelf = color.RGBA{220, 220, 220, 255}
	colRod   = color.RGBA{200, 60, 60, 255}
	colBob   = color.RGBA{230, 80, 80, 255}
	colTrail = color.RGBA{160, 160, 160, 255}
	colText  = color.RGBA{150, 150, 150, 255}
)

// Game adapts the pendulum simulation to the ebiten.Game interface.
type Game struct {
	cfg   *config.Config
	integ *pendulum.Integrator
	state pendulum.State

	pivotX, pivotY float32
	scale          float32

	trail   [][2]float32
	paused  bool
	stopped bool
	resets  int

	stepsPerTick int
}

// New constructs the window-sized game for the provided configuration.
func New(cfg *config.Config) *Game {
	steps := cfg.AnimationRate / tps
	if steps < 1 {
		steps = 1
	}
	w, h := float32(cfg.DisplayWidth), float32(cfg.DisplayHeight)
	reach := w / 2
	if h/2 < reach {
		reach = h / 2
	}
	integ := pendulum.New(cfg.Theta, cfg.Omega, cfg.Params())
	return &Game{
		cfg:          cfg,
		integ:        integ,
		state:        integ.State(),
		pivotX:       w / 2,
		pivotY:       h / 2,
		scale:        0.9 * reach / float32(cfg.RodLength),
		stepsPerTick: steps,
	}
}

func (g *Game) reset() {
	g.integ = pendulum.New(g.cfg.Theta, g.cfg.Omega, g.cfg.Params())
	g.state = g.integ.State()
	g.trail = g.trail[:0]
	g.stopped = false
	g.resets = 0
}

// Update advances the simulation by one display tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}

	if g.paused || g.stopped {
		return nil
	}

	for i := 0; i < g.stepsPerTick; i++ {
		st, status := g.integ.Step()
		g.state = st
		switch status {
		case pendulum.Stopped:
			g.stopped = true
			return nil
		case pendulum.Reset:
			g.resets++
			g.trail = g.trail[:0]
		default:
			if g.cfg.Trail {
				x, y := g.bobScreen(st.Theta)
				g.trail = append(g.trail, [2]float32{x, y})
				if len(g.trail) > 2000 {
					g.trail = g.trail[1:]
				}
			}
		}
	}
	return nil
}

func (g *Game) bobScreen(theta float64) (float32, float32) {
	x, y := pendulum.BobPosition(theta, g.cfg.RodLength)
	return g.pivotX + float32(x)*g.scale, g.pivotY - float32(y)*g.scale
}

// Draw renders shelf, rod, bob and trail.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)

	vector.StrokeLine(screen, g.pivotX-40, g.pivotY-4, g.pivotX+40, g.pivotY-4, 4, colShelf, true)

	for _, pt := range g.trail {
		vector.DrawFilledCircle(screen, pt[0], pt[1], 1.5, colTrail, true)
	}

	bx, by := g.bobScreen(g.state.Theta)
	vector.StrokeLine(screen, g.pivotX, g.pivotY, bx, by, 2, colRod, true)
	vector.DrawFilledCircle(screen, bx, by, 12, colBob, true)

	if g.cfg.Labels {
		ebitenutil.DebugPrintAt(screen, g.labelText(), 10, 10)
	}
}

func (g *Game) labelText() string {
	status := "running"
	if g.stopped {
		status = "stopped"
	} else if g.paused {
		status = "paused"
	}
	return fmt.Sprintf(
		"a = -(g/L)sin(th) - D*w\n\nstarting theta = %g deg\nstarting omega = %g deg/s\ndamping D = %g\ngravity g = %g m/s^2\nrod L = %g m\n\nt = %.2fs  theta = %+.2f deg  [%s]",
		g.cfg.Theta, g.cfg.Omega, g.cfg.Damping, g.cfg.Gravity, g.cfg.RodLength,
		g.state.T, g.state.Theta*180/math.Pi, status,
	)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.DisplayWidth, g.cfg.DisplayHeight
}

// Run opens the window and drives the game loop until quit or stop.
func Run(cfg *config.Config) error {
	ebiten.SetWindowSize(cfg.DisplayWidth, cfg.DisplayHeight)
	ebiten.SetWindowTitle("pendulum")
	ebiten.SetTPS(tps)
	return ebiten.RunGame(New(cfg))
}
