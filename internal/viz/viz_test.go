package viz

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/san-kum/predprey/internal/ecosys"
	"github.com/san-kum/predprey/internal/experiment"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, iterations int) Model {
	t.Helper()
	exp, err := experiment.New(experiment.Config{
		Params: ecosys.Params{
			Predators: 6, Prey: 20, Obstacles: 4,
			Rows: 10, Cols: 10,
			PredatorOffspringInterval: 6, PredatorHungerLimit: 5, PreyOffspringInterval: 3,
			IterationLimit: iterations,
		},
		Seed: 1,
	}, log.New(io.Discard))
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	return NewModel(exp)
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t, 50)

	if !m.Running() {
		t.Fatal("expected model to start running")
	}
	m = update(m, key(" "))
	if m.Running() {
		t.Error("space should pause")
	}

	m = update(m, key("+"))
	m = update(m, key("+"))
	if m.Speed() != 4 {
		t.Errorf("expected speed 4, got %d", m.Speed())
	}
	m = update(m, key("-"))
	if m.Speed() != 2 {
		t.Errorf("expected speed 2, got %d", m.Speed())
	}
	for i := 0; i < 5; i++ {
		m = update(m, key("-"))
	}
	if m.Speed() != 1 {
		t.Errorf("speed must not drop below 1, got %d", m.Speed())
	}

	m = update(m, key("p"))
	if m.Pane() != PanePlot {
		t.Errorf("expected plot pane, got %v", m.Pane())
	}
	m = update(m, key("f"))
	if m.Pane() != PanePhase {
		t.Errorf("expected phase pane, got %v", m.Pane())
	}
	m = update(m, key("f"))
	if m.Pane() != PaneNone {
		t.Errorf("expected no pane, got %v", m.Pane())
	}

	before := m.Theme().Name
	m = update(m, key("t"))
	if m.Theme().Name == before {
		t.Error("t should cycle the theme")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, 10)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelTickAdvances(t *testing.T) {
	m := newTestModel(t, 50)

	m = update(m, TickMsg(time.Now()))
	if got := m.History().Len(); got != 2 {
		t.Errorf("expected 2 samples after one tick, got %d", got)
	}

	m = update(m, key(" "))
	m = update(m, TickMsg(time.Now()))
	if got := m.History().Len(); got != 2 {
		t.Errorf("paused model should not tick, got %d samples", got)
	}
}

func TestModelStopsWhenFinished(t *testing.T) {
	m := newTestModel(t, 3)
	for i := 0; i < 10; i++ {
		m = update(m, TickMsg(time.Now()))
	}
	if m.Running() {
		t.Error("expected model to stop once the grid is finished")
	}
	if got := m.History().Len(); got > 4 {
		t.Errorf("expected at most 4 samples, got %d", got)
	}
}

func TestModelRestart(t *testing.T) {
	m := newTestModel(t, 50)
	for i := 0; i < 3; i++ {
		m = update(m, TickMsg(time.Now()))
	}
	m = update(m, key("r"))
	if got := m.History().Len(); got != 1 {
		t.Errorf("restart should keep only the initial sample, got %d", got)
	}
	if !m.Running() {
		t.Error("restart should resume the simulation")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, 50)
	m = update(m, key(" "))
	view := m.View()
	if !strings.Contains(view, "PAUSED") {
		t.Error("expected paused status in view")
	}
	if !strings.Contains(view, "Predators") || !strings.Contains(view, "Prey") {
		t.Error("expected population counters in view")
	}
}

func TestRenderGrid(t *testing.T) {
	g, err := ecosys.New(ecosys.Params{Rows: 2, Cols: 3}, ecosys.NewRand(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Place(1, 1, ecosys.Obstacle{}); err != nil {
		t.Fatal(err)
	}

	out := renderGrid(g)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if strings.Count(out, "▓▓") != 1 {
		t.Error("expected one obstacle glyph")
	}
	if strings.Count(out, "··") != 5 {
		t.Error("expected five empty glyphs")
	}
}

func TestNextTheme(t *testing.T) {
	seen := map[string]bool{}
	th := Themes[0]
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	if len(seen) != len(Themes) || th.Name != Themes[0].Name {
		t.Errorf("expected to cycle through all %d themes, saw %v", len(Themes), seen)
	}
	if GetTheme("missing").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first")
	}
}

func TestSparklineChart(t *testing.T) {
	out := SparklineChart([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 4, PreyStyle)
	if n := len([]rune(stripANSI(out))); n != 4 {
		t.Errorf("expected 4 bars, got %d", n)
	}
}

func TestAppFlow(t *testing.T) {
	a := NewApp(1, log.New(io.Discard))
	if len(a.presets) == 0 {
		t.Fatal("expected presets")
	}

	next, _ := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = next.(App)
	if a.screen != screenConfig {
		t.Fatalf("expected config screen, got %v", a.screen)
	}

	before := a.Config().Predators
	next, _ = a.Update(key("l"))
	a = next.(App)
	if a.Config().Predators != before+1 {
		t.Errorf("expected predators %d, got %d", before+1, a.Config().Predators)
	}

	next, _ = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = next.(App)
	for range 6 {
		next, _ = a.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		a = next.(App)
	}
	next, _ = a.Update(key("7"))
	a = next.(App)
	next, _ = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = next.(App)
	if a.Config().Predators != 7 {
		t.Errorf("expected edited predators 7, got %d", a.Config().Predators)
	}

	next, cmd := a.Update(key("s"))
	a = next.(App)
	if a.screen != screenSim {
		t.Fatalf("expected sim screen, got %v (err %v)", a.screen, a.err)
	}
	if cmd == nil {
		t.Error("expected the live view tick command")
	}
}

func TestAppRejectsInvalidConfig(t *testing.T) {
	a := NewApp(1, log.New(io.Discard))
	next, _ := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = next.(App)

	// shrink the grid until the agents no longer fit
	a.cfg.Width, a.cfg.Height = 1, 1
	next, _ = a.Update(key("s"))
	a = next.(App)
	if a.screen != screenConfig {
		t.Errorf("expected to stay on config screen, got %v", a.screen)
	}
	if a.err == nil {
		t.Error("expected a validation error")
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
