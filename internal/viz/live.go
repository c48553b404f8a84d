package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Anthony-Giacinto/pendulum/internal/config"
	"github.com/Anthony-Giacinto/pendulum/internal/pendulum"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	frameRate    = 60
	plotCapacity = 600
)

type TickMsg time.Time

// Model is the Bubble Tea program for the live pendulum view. Each frame
// advances the integrator by animation_rate/frameRate steps, so the
// simulated rate matches the configured one independently of the frame
// rate.
type Model struct {
	cfg      *config.Config
	integ    *pendulum.Integrator
	renderer *CanvasRenderer
	state    pendulum.State
	stopped  bool
	running  bool
	resets   int
	thetas   []float64 // degrees, one sample per frame
	note     string

	// Snapshot, when set, persists the current canvas and returns the
	// path it was written to. Wired by the command layer to avoid a
	// dependency on the export package here.
	Snapshot func(c *Canvas) (string, error)

	stepsPerFrame int
}

func NewModel(cfg *config.Config) Model {
	integ := pendulum.New(cfg.Theta, cfg.Omega, cfg.Params())
	steps := cfg.AnimationRate / frameRate
	if steps < 1 {
		steps = 1
	}
	return Model{
		cfg:           cfg,
		integ:         integ,
		renderer:      NewCanvasRenderer(canvasWidth, canvasHeight, cfg.RodLength),
		state:         integ.State(),
		running:       true,
		thetas:        make([]float64, 0, plotCapacity),
		stepsPerFrame: steps,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.stopped {
				m.running = !m.running
			}
		case "r":
			m.restart()
		case "s":
			m.snapshot()
		}
	case TickMsg:
		if m.running && !m.stopped {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.stepsPerFrame; i++ {
		st, status := m.integ.Step()
		m.state = st

		x, y := pendulum.BobPosition(st.Theta, m.cfg.RodLength)
		m.renderer.SetPosition(x, y)

		switch status {
		case pendulum.Stopped:
			m.stopped = true
			m.running = false
			return
		case pendulum.Reset:
			m.resets++
			m.renderer.ClearTrail()
			m.thetas = m.thetas[:0]
		default:
			if m.cfg.Trail {
				m.renderer.AppendTrail(x, y)
			}
		}
	}

	if m.cfg.Plot {
		m.thetas = append(m.thetas, m.state.Theta*180/math.Pi)
		if len(m.thetas) > plotCapacity {
			m.thetas = m.thetas[1:]
		}
	}
}

func (m *Model) restart() {
	m.integ = pendulum.New(m.cfg.Theta, m.cfg.Omega, m.cfg.Params())
	m.state = m.integ.State()
	m.renderer.ClearTrail()
	m.thetas = m.thetas[:0]
	m.stopped = false
	m.running = true
	m.resets = 0
	m.note = ""
}

func (m *Model) snapshot() {
	if m.Snapshot == nil {
		return
	}
	path, err := m.Snapshot(m.renderer.Canvas())
	if err != nil {
		m.note = fmt.Sprintf("snapshot failed: %v", err)
		return
	}
	m.note = "saved " + path
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.renderer.Frame())

	status := "RUNNING"
	if m.stopped {
		status = "STOPPED"
	} else if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("PENDULUM") + "\n")
	s.WriteString(status + "\n\n")

	if m.cfg.Plot && len(m.thetas) > 1 {
		chart := asciigraph.Plot(m.thetas,
			asciigraph.Height(5),
			asciigraph.Width(32),
			asciigraph.Caption("angle (deg)"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.state.T)) + "\n")
	s.WriteString(labelStyle.Render("Theta") + valueStyle.Render(fmt.Sprintf("%+.2f°", m.state.Theta*180/math.Pi)) + "\n")
	s.WriteString(labelStyle.Render("Omega") + valueStyle.Render(fmt.Sprintf("%+.2f°/s", m.state.Omega*180/math.Pi)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", pendulum.Energy(m.state, m.integ.Params()))) + "\n")
	if m.resets > 0 {
		s.WriteString(labelStyle.Render("Resets") + valueStyle.Render(fmt.Sprintf("%d", m.resets)) + "\n")
	}

	if m.cfg.Labels {
		s.WriteString("\n" + m.labels())
	}
	if m.note != "" {
		s.WriteString("\n" + m.note + "\n")
	}
	s.WriteString(helpStyle.Render("\nSP:Pause R:Restart S:Snapshot Q:Quit"))

	stats := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, stats)
}

// labels is the parameter overlay shown next to the animation.
func (m Model) labels() string {
	var s strings.Builder
	s.WriteString("α = -(g/L)sin(θ) - Dω\n\n")
	s.WriteString(fmt.Sprintf("Starting θ = %g°\n", m.cfg.Theta))
	s.WriteString(fmt.Sprintf("Starting ω = %g°/s\n", m.cfg.Omega))
	s.WriteString(fmt.Sprintf("Damping D  = %g\n", m.cfg.Damping))
	s.WriteString(fmt.Sprintf("Gravity g  = %g m/s²\n", m.cfg.Gravity))
	s.WriteString(fmt.Sprintf("Rod L      = %g m\n", m.cfg.RodLength))
	return s.String()
}
