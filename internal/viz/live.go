package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravlab/internal/universe"
)

const (
	canvasWidth     = 80
	canvasHeight    = 28
	historyCapacity = 400
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0, 0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the live terminal shell around a universe: it steps the
// engine once per frame and reads the body collection back for drawing.
// All mutation of the universe happens here, on the bubbletea goroutine.
type Model struct {
	u   *universe.Universe
	gen universe.GenerationSettings

	camera *Camera
	canvas *Canvas

	fps      int
	speed    float64
	paused   bool
	help     bool
	showMass bool
	lastNow  time.Time
	simTime  float64

	massHistory   []float64
	energyHistory []float64
}

func NewModel(u *universe.Universe, gen universe.GenerationSettings, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		u:             u,
		gen:           gen,
		camera:        NewCamera(),
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		fps:           fps,
		speed:         1.0,
		massHistory:   make([]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

// Run starts the live view and blocks until the user quits.
func Run(u *universe.Universe, gen universe.GenerationSettings, fps int) error {
	p := tea.NewProgram(NewModel(u, gen, fps))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		now := time.Time(msg)
		if !m.paused {
			dt := 1.0 / float64(m.fps)
			if !m.lastNow.IsZero() {
				if elapsed := now.Sub(m.lastNow).Seconds(); elapsed > 0 && elapsed < 0.25 {
					dt = elapsed
				}
			}
			m.step(dt * m.speed)
		}
		m.lastNow = now
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) step(dt float64) {
	m.u.Step(dt)
	m.simTime += dt

	m.massHistory = appendBounded(m.massHistory, m.u.TotalMass())
	m.energyHistory = appendBounded(m.energyHistory, m.u.KineticEnergy())
}

func appendBounded(history []float64, v float64) []float64 {
	if len(history) >= historyCapacity {
		history = history[1:]
	}
	return append(history, v)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "n":
		// Single step while paused.
		m.step(1.0 / float64(m.fps) * m.speed)
	case "r":
		m.u.GenerateBodies(m.gen)
		m.simTime = 0
		m.massHistory = m.massHistory[:0]
		m.energyHistory = m.energyHistory[:0]
	case "t":
		m.gen.TangentialVelocity = !m.gen.TangentialVelocity
	case "c":
		m.u.Settings.EnableCollisions = !m.u.Settings.EnableCollisions
	case "g":
		m.u.Settings.GravitationalConstant -= 10
	case "G":
		m.u.Settings.GravitationalConstant += 10
	case "[":
		m.gen.Bodies = max(0, m.gen.Bodies-250)
	case "]":
		m.gen.Bodies += 250
	case "+", "=":
		m.camera.Zoom(1.25)
	case "-":
		m.camera.Zoom(0.8)
	case "up", "k":
		m.camera.Pan(0, 8)
	case "down", "j":
		m.camera.Pan(0, -8)
	case "left", "h":
		m.camera.Pan(-8, 0)
	case "right", "l":
		m.camera.Pan(8, 0)
	case ",":
		m.speed *= 0.5
	case ".":
		m.speed *= 2
	case "e":
		m.showMass = !m.showMass
	case "?":
		m.help = !m.help
	}
	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()

	dotsW, dotsH := canvasWidth*2, canvasHeight*4
	for _, b := range m.u.Bodies() {
		x, y := m.camera.Project(b.Position, dotsW, dotsH)
		m.canvas.FillCircle(x, y, int(b.Radius()*m.camera.Scale))
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(m.statsView()),
	)

	series, caption := m.energyHistory, "kinetic energy"
	if m.showMass {
		series, caption = m.massHistory, "total mass"
	}
	if len(series) > 2 {
		graph := asciigraph.Plot(series,
			asciigraph.Height(6),
			asciigraph.Width(100),
			asciigraph.Caption(caption),
		)
		view = lipgloss.JoinVertical(lipgloss.Left, view, graphStyle.Render(graph))
	}

	if m.help {
		view = lipgloss.JoinVertical(lipgloss.Left, view, helpStyle.Render(helpText))
	} else {
		view = lipgloss.JoinVertical(lipgloss.Left, view,
			helpStyle.Render("space pause · n step · r regenerate · ? help · q quit"))
	}
	return view
}

func (m Model) statsView() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("gravlab"))
	sb.WriteByte('\n')

	status := "running"
	if m.paused {
		sb.WriteString(pausedStyle.Render("paused"))
		status = ""
	}
	if status != "" {
		sb.WriteString(valueStyle.Render(status))
	}
	sb.WriteByte('\n')

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteByte('\n')
	}

	row("sim time", fmt.Sprintf("%.2f s", m.simTime))
	row("speed", fmt.Sprintf("%.2fx", m.speed))
	row("bodies", fmt.Sprintf("%d", m.u.Len()))
	row("interactions", fmt.Sprintf("%d / frame", m.u.Interactions()))
	row("total mass", fmt.Sprintf("%.1f", m.u.TotalMass()))
	row("gravity", fmt.Sprintf("%.1f", m.u.Settings.GravitationalConstant))
	row("collisions", fmt.Sprintf("%v", m.u.Settings.EnableCollisions))
	row("tangential", fmt.Sprintf("%v", m.gen.TangentialVelocity))
	row("next gen", fmt.Sprintf("%d bodies", m.gen.Bodies))
	row("zoom", fmt.Sprintf("%.3f", m.camera.Scale))

	return sb.String()
}

const helpText = `space  pause / resume        g/G  gravity -/+
n      single step           c    toggle collisions
r      regenerate bodies     t    toggle tangential
[/]    next gen bodies -/+   ,/.  speed halve/double
e      graph: energy / mass
+/-    zoom                  arrows/hjkl  pan
?      close help            q    quit`
