package viz

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dialsim/internal/driver"
	"github.com/san-kum/dialsim/internal/geom"
	"github.com/san-kum/dialsim/internal/metrics"
	"github.com/san-kum/dialsim/internal/scene"
)

const (
	statsWidth      = 40
	historyCapacity = 300

	// canvas origin inside the view, from canvasStyle padding
	canvasLeft = 2
	canvasTop  = 1

	tiltStep  = 0.25
	shakeSize = 6.0
)

type TickMsg time.Time

// Model is the live watch face: it ticks the driver, renders the current
// frame and turns keys and mouse events into tilt and pointer calls.
type Model struct {
	drv      *driver.Driver
	scenes   []string
	tick     time.Duration
	canvas   *Canvas
	proj     Projection
	theme    Theme
	tilt     geom.Vec2
	metrics  []metrics.Metric
	kinetic  *metrics.KineticEnergy
	energy   []float64
	frame    scene.Frame
	ready    bool
	paused   bool
	dragging bool
	err      error
}

// NewModel drives drv at tick. scenes is the cycle order for tab.
func NewModel(drv *driver.Driver, scenes []string, gravity geom.Vec2, tick time.Duration) Model {
	if tick <= 0 {
		tick = 33 * time.Millisecond
	}
	m := Model{
		drv:     drv,
		scenes:  scenes,
		tick:    tick,
		canvas:  NewCanvas(60, 30),
		theme:   Themes[0],
		tilt:    gravity,
		metrics: metrics.Default(),
		energy:  make([]float64, 0, historyCapacity),
	}
	for _, mt := range m.metrics {
		if k, ok := mt.(*metrics.KineticEnergy); ok {
			m.kinetic = k
		}
	}
	if m.kinetic == nil {
		m.kinetic = metrics.NewKineticEnergy()
		m.metrics = append(m.metrics, m.kinetic)
	}
	return m
}

func (m Model) Init() tea.Cmd { return m.next() }

func (m Model) next() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if !m.paused {
			m.step(time.Time(msg))
		}
		return m, m.next()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.setTilt(m.tilt.Add(geom.V(-tiltStep, 0)))
	case "right", "l":
		m.setTilt(m.tilt.Add(geom.V(tiltStep, 0)))
	case "up", "k":
		m.setTilt(m.tilt.Add(geom.V(0, -tiltStep)))
	case "down", "j":
		m.setTilt(m.tilt.Add(geom.V(0, tiltStep)))
	case "0":
		m.setTilt(geom.V(0, 1))
	case " ":
		m.drv.Impulse(m.tilt.Neg().Scale(shakeSize))
	case "p":
		m.paused = !m.paused
	case "r":
		m.drv.Reset()
		m.restart()
	case "tab":
		if err := m.drv.Switch(m.nextScene()); err != nil {
			m.err = err
		}
		m.restart()
	case "t":
		m.theme = m.theme.Next()
	}
	return m, nil
}

func (m *Model) setTilt(v geom.Vec2) {
	v.X = max(-1, min(1, v.X))
	v.Y = max(-1, min(1, v.Y))
	m.tilt = v
	m.drv.SetGravity(v.X, v.Y)
}

func (m Model) nextScene() string {
	cur := m.drv.Scene()
	for i, name := range m.scenes {
		if name == cur {
			return m.scenes[(i+1)%len(m.scenes)]
		}
	}
	return cur
}

func (m *Model) restart() {
	m.ready = false
	m.dragging = false
	m.energy = m.energy[:0]
	for _, mt := range m.metrics {
		mt.Reset()
	}
}

// handleMouse maps left-button gestures on the face to world points.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := m.proj.Cell(msg.X-canvasLeft, msg.Y-canvasTop)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = m.drv.Press(p)
		}
	case tea.MouseActionMotion:
		if m.dragging {
			m.drv.Move(p)
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.drv.Release(p)
			m.dragging = false
		}
	}
}

func (m *Model) resize(w, h int) {
	cols := max(w-statsWidth-canvasLeft*2-1, 10)
	rows := max(h-canvasTop*2, 5)
	m.canvas = NewCanvas(cols, rows)
	if m.ready {
		m.proj = Fit(m.frame.World, m.canvas)
		DrawFrame(m.canvas, m.proj, m.frame)
	}
}

func (m *Model) step(now time.Time) {
	if _, err := m.drv.Tick(now); err != nil {
		if !errors.Is(err, scene.ErrNotReady) {
			m.err = err
			log.Printf("tick: %v", err)
		}
		return
	}
	f, err := m.drv.Frame()
	if err != nil {
		return
	}
	if !m.ready {
		m.proj = Fit(f.World, m.canvas)
	}
	m.frame, m.ready, m.err = f, true, nil

	for _, mt := range m.metrics {
		mt.Observe(f)
	}
	if len(m.energy) == historyCapacity {
		m.energy = append(m.energy[:0], m.energy[1:]...)
	}
	m.energy = append(m.energy, m.kinetic.Last())
	DrawFrame(m.canvas, m.proj, f)
}

func (m Model) View() string {
	face := m.theme.face().Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.theme.title().Render(strings.ToUpper(m.drv.Scene())) + "\n")
	if m.paused {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.2fs", m.frame.Time()))
	row("step", fmt.Sprintf("%d", m.frame.Step))
	row("gravity", fmt.Sprintf("%+.2f %+.2f", m.tilt.X, m.tilt.Y))
	row("entities", fmt.Sprintf("%d", len(m.frame.Discs)))
	for _, mt := range m.metrics {
		row(mt.Name(), fmt.Sprintf("%.3g", mt.Last()))
	}

	if len(m.energy) > 1 {
		s.WriteString("\n" + asciigraph.Plot(m.energy,
			asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("kinetic")) + "\n")
		s.WriteString(Sparkline(m.energy, statsWidth-6) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + StatusPaused.Render(m.err.Error()) + "\n")
	}

	s.WriteString(KeyHint.Render("\n←↑↓→ tilt  0 level  space shake\ndrag grab/throw  tab scene  r reset\np pause  t theme  q quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, face, statsStyle.Render(s.String()))
}

// Run starts the live view full screen with mouse tracking.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
