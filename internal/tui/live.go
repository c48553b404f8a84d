// Package tui is a plain ANSI live view for headless-friendly terminals.
// It implements the sim collaborator interfaces directly, so the animation
// driver can push every step while the renderer redraws at its own frame
// rate.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
)

const (
	width       = 70
	height      = 20
	trailRetain = 40
	plotRetain  = 600
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

type point struct{ x, y int }

// LiveRenderer draws rod, bob and trail with ASCII characters, redrawing
// in place at most frameRate times per second regardless of how fast the
// driver steps.
type LiveRenderer struct {
	w         io.Writer
	frameRate int
	lastFrame time.Time
	canvas    [][]rune

	pivotX, pivotY int
	xScale, yScale float64

	bobX, bobY int
	mx, my     float64
	hasBob     bool
	trail      []point

	times  []float64
	thetas []float64
}

func NewLiveRenderer(rodLength float64, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	yScale := float64(height-6) / rodLength
	xScale := 2 * yScale
	if max := float64(width/2-4) / rodLength; xScale > max {
		xScale = max
	}
	return &LiveRenderer{
		w:         os.Stdout,
		frameRate: frameRate,
		canvas:    canvas,
		pivotX:    width / 2,
		pivotY:    3,
		xScale:    xScale,
		yScale:    yScale,
		trail:     make([]point, 0, trailRetain),
	}
}

func (r *LiveRenderer) toScreen(x, y float64) (int, int) {
	return r.pivotX + int(x*r.xScale), r.pivotY - int(y*r.yScale)
}

func (r *LiveRenderer) SetPosition(x, y float64) {
	r.mx, r.my = x, y
	r.bobX, r.bobY = r.toScreen(x, y)
	r.hasBob = true
	r.maybeRender()
}

func (r *LiveRenderer) AppendTrail(x, y float64) {
	sx, sy := r.toScreen(x, y)
	r.trail = append(r.trail, point{sx, sy})
	if len(r.trail) > trailRetain {
		r.trail = r.trail[1:]
	}
}

func (r *LiveRenderer) ClearTrail() { r.trail = r.trail[:0] }

func (r *LiveRenderer) AppendPoint(t, thetaDeg float64) {
	r.times = append(r.times, t)
	r.thetas = append(r.thetas, thetaDeg)
	if len(r.thetas) > plotRetain {
		r.times = r.times[1:]
		r.thetas = r.thetas[1:]
	}
}

func (r *LiveRenderer) Clear() {
	r.times = r.times[:0]
	r.thetas = r.thetas[:0]
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.w, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.w, showCursor) }

func (r *LiveRenderer) maybeRender() {
	if elapsed := time.Since(r.lastFrame); elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.Render()
}

// Render draws one frame unconditionally.
func (r *LiveRenderer) Render() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}

	for i, pt := range r.trail {
		if i < len(r.trail)/2 {
			r.set(pt.x, pt.y, '.')
		} else {
			r.set(pt.x, pt.y, 'o')
		}
	}

	r.set(r.pivotX, r.pivotY, '+')
	if r.hasBob {
		r.line(r.pivotX, r.pivotY, r.bobX, r.bobY, '|')
		r.set(r.bobX, r.bobY, 'O')
	}

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString("  pendulum\n")
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  bob=(%.2f, %.2f) m\n", r.mx, r.my))

	if len(r.thetas) > 1 {
		chart := asciigraph.Plot(r.thetas,
			asciigraph.Height(8),
			asciigraph.Width(width-10),
			asciigraph.Caption(fmt.Sprintf("angle (deg), t=%.2fs", r.times[len(r.times)-1])),
		)
		b.WriteString("\n" + chart + "\n")
	}

	fmt.Fprint(r.w, b.String())
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
