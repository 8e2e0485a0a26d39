package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/predprey/internal/chart"
	"github.com/san-kum/predprey/internal/ecosys"
	"github.com/san-kum/predprey/internal/experiment"
	"github.com/san-kum/predprey/internal/series"
)

const (
	frameInterval = time.Second / 20
	maxSpeed      = 64
	sparkWidth    = 30
	plotWindow    = 400
)

// Pane selects what the side panel shows below the counters.
type Pane int

const (
	PaneNone Pane = iota
	PanePlot
	PanePhase
)

type TickMsg time.Time

// Model is the live grid view. It owns the experiment and steps it from
// TickMsg, so the grid is only ever read between ticks.
type Model struct {
	exp     *experiment.Experiment
	history *series.History

	running  bool
	speed    int
	frame    int
	pane     Pane
	theme    Theme
	showHelp bool
	err      error
}

// NewModel wraps exp. The experiment should not have been run yet.
func NewModel(exp *experiment.Experiment) Model {
	h := series.NewHistory()
	exp.AddObserver(h)
	h.OnTick(exp.Grid().Sample())

	return Model{
		exp:     exp,
		history: h,
		running: true,
		speed:   1,
		theme:   Themes[0],
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.running = !m.running
		case "r":
			m.restart()
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "p":
			m.pane = togglePane(m.pane, PanePlot)
		case "f":
			m.pane = togglePane(m.pane, PanePhase)
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.frame++
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func togglePane(current, p Pane) Pane {
	if current == p {
		return PaneNone
	}
	return p
}

func (m *Model) advance() {
	for i := 0; i < m.speed; i++ {
		if !m.exp.Step() {
			m.running = false
			return
		}
	}
}

func (m *Model) restart() {
	if err := m.exp.Restart(); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.err = nil
	m.history.Reset()
	m.history.OnTick(m.exp.Grid().Sample())
	m.running = true
}

func (m Model) Running() bool            { return m.running }
func (m Model) Speed() int               { return m.speed }
func (m Model) Pane() Pane               { return m.pane }
func (m Model) Theme() Theme             { return m.theme }
func (m Model) History() *series.History { return m.history }

func (m Model) View() string {
	g := m.exp.Grid()
	st := g.Status()

	gridView := lipgloss.NewStyle().Padding(1, 2).Render(renderGrid(g))

	var s strings.Builder
	s.WriteString(m.theme.header().Render(GradientText("PREDATOR · PREY", m.theme.Primary, m.theme.Secondary)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(StatusFinished.Render("ERROR: "+m.err.Error()) + "\n\n")
	case st.Finished:
		s.WriteString(StatusFinished.Render(st.String()) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render(AnimatedSpinner(m.frame)+" RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	limit := g.Params().IterationLimit
	s.WriteString(MetricLabel.Render("Step") + MetricValue.Render(fmt.Sprintf("%d / %d", st.Step, limit)) + "\n")
	if limit > 0 {
		s.WriteString(MetricLabel.Render("") + ProgressBar(float64(st.Step)/float64(limit), sparkWidth) + "\n")
	}
	s.WriteString(MetricLabel.Render("Predators") + PredatorStyle.Bold(true).Render(fmt.Sprintf("%d", st.Predators)) + "\n")
	s.WriteString(MetricLabel.Render("") + SparklineChart(m.history.Predators(), sparkWidth, PredatorStyle) + "\n")
	s.WriteString(MetricLabel.Render("Prey") + PreyStyle.Bold(true).Render(fmt.Sprintf("%d", st.Prey)) + "\n")
	s.WriteString(MetricLabel.Render("") + SparklineChart(m.history.Prey(), sparkWidth, PreyStyle) + "\n")
	s.WriteString(MetricLabel.Render("Speed") + m.theme.text().Render(fmt.Sprintf("x%d", m.speed)) + "\n")
	s.WriteString(MetricLabel.Render("Theme") + m.theme.accent().Render(m.theme.Name) + "\n")

	points := m.history.Points()
	if len(points) > plotWindow {
		points = points[len(points)-plotWindow:]
	}
	switch m.pane {
	case PanePlot:
		if len(points) > 1 {
			s.WriteString("\n" + chart.Populations(points, 40, 8, "predators (red) / prey (green)") + "\n")
		}
	case PanePhase:
		s.WriteString("\n" + chart.Phase(points, 40, 10) + "\n")
	}

	s.WriteString("\n" + Separator(40) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause R:Restart Q:Quit\n+/-:Speed P:Plot F:Phase T:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, gridView, m.theme.panel().Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Restart with a new grid  ║
║  + / -    - Double/halve speed       ║
║  P        - Toggle population plot   ║
║  F        - Toggle phase portrait    ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// renderGrid draws two columns per cell, batching runs of the same kind into
// one styled string.
func renderGrid(g *ecosys.Grid) string {
	var sb strings.Builder
	for row := 0; row < g.Rows(); row++ {
		run, runKind := 0, ecosys.Empty
		flush := func() {
			if run > 0 {
				sb.WriteString(cellStyles[runKind].Render(strings.Repeat(glyph(runKind), run)))
			}
		}
		for col := 0; col < g.Cols(); col++ {
			k := g.Cell(row, col).Kind()
			if run > 0 && k != runKind {
				flush()
				run = 0
			}
			runKind = k
			run++
		}
		flush()
		if row < g.Rows()-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func glyph(k ecosys.Kind) string {
	switch k {
	case ecosys.Empty:
		return "··"
	case ecosys.ObstacleKind:
		return "▓▓"
	default:
		return "██"
	}
}

// Run starts the live view on exp and blocks until the user quits.
func Run(exp *experiment.Experiment) error {
	_, err := tea.NewProgram(NewModel(exp), tea.WithAltScreen()).Run()
	return err
}
