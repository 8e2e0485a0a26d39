package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/experiment"
)

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	hintKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

var presetInfo = map[string]string{
	"classic":  "balanced 40x30 field",
	"small":    "quick 16x12 run",
	"crowded":  "dense 80x40 field",
	"fortress": "maze of obstacles",
}

type screen int

const (
	screenMenu screen = iota
	screenConfig
	screenSim
)

// field is one editable integer of the configuration.
type field struct {
	name string
	ptr  func(c *config.Config) *int
}

var fields = []field{
	{"predators", func(c *config.Config) *int { return &c.Predators }},
	{"prey", func(c *config.Config) *int { return &c.Prey }},
	{"obstacles", func(c *config.Config) *int { return &c.Obstacles }},
	{"width", func(c *config.Config) *int { return &c.Width }},
	{"height", func(c *config.Config) *int { return &c.Height }},
	{"pred offspring", func(c *config.Config) *int { return &c.PredatorOffspringInterval }},
	{"pred hunger", func(c *config.Config) *int { return &c.PredatorHungerLimit }},
	{"prey offspring", func(c *config.Config) *int { return &c.PreyOffspringInterval }},
	{"iterations", func(c *config.Config) *int { return &c.Iterations }},
}

// App picks a preset, lets the user tune it, then hands over to the live
// view.
type App struct {
	screen  screen
	cursor  int
	presets []string
	preset  string

	cfg         config.Config
	fieldCursor int
	editing     bool
	editBuf     string
	err         error

	seed   int64
	logger *log.Logger
	live   Model
}

func NewApp(seed int64, logger *log.Logger) App {
	return App{
		screen:  screenMenu,
		presets: config.ListPresets(),
		seed:    seed,
		logger:  logger,
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.screen == screenSim {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch a.screen {
		case screenMenu:
			return a.menuKey(key)
		case screenConfig:
			return a.configKey(key)
		}
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.preset = a.presets[a.cursor]
		a.cfg = *config.GetPreset(a.preset)
		a.screen, a.fieldCursor, a.err = screenConfig, 0, nil
	}
	return a, nil
}

func (a App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.Atoi(a.editBuf); err == nil && v >= 0 {
				*fields[a.fieldCursor].ptr(&a.cfg) = v
			}
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
				a.editBuf += s
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "q", "esc":
		a.screen = screenMenu
	case "up", "k":
		if a.fieldCursor > 0 {
			a.fieldCursor--
		}
	case "down", "j":
		if a.fieldCursor < len(fields)-1 {
			a.fieldCursor++
		}
	case "enter", " ":
		a.editing, a.editBuf = true, strconv.Itoa(*fields[a.fieldCursor].ptr(&a.cfg))
	case "left", "h":
		if v := fields[a.fieldCursor].ptr(&a.cfg); *v > 0 {
			*v--
		}
	case "right", "l":
		*fields[a.fieldCursor].ptr(&a.cfg)++
	case "s":
		return a.start()
	}
	return a, nil
}

func (a App) start() (App, tea.Cmd) {
	if err := a.cfg.Validate(); err != nil {
		a.err = err
		return a, nil
	}
	exp, err := experiment.New(experiment.Config{Params: a.cfg.GridParams(), Seed: a.seed}, a.logger)
	if err != nil {
		a.err = err
		return a, nil
	}
	a.live = NewModel(exp)
	a.screen = screenSim
	return a, a.live.Init()
}

// Config returns the configuration being edited.
func (a App) Config() config.Config { return a.cfg }

func (a App) View() string {
	switch a.screen {
	case screenConfig:
		return a.viewConfig()
	case screenSim:
		return a.live.View()
	default:
		return a.viewMenu()
	}
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(hintKeyStyle.Render(pairs[i]) + idleStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (a App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("PREDPREY", "#00cccc", "#ff88ff") + "\n    " + Subtle.Render("predator / prey ecosystem") + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, name := range a.presets {
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-10s", name)), detailStyle.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleStyle.Render(fmt.Sprintf("  %-10s", name)), idleStyle.Render(presetInfo[name])))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (a App) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + cursorStyle.Render(strings.ToUpper(a.preset)) + "\n    " + Subtle.Render(presetInfo[a.preset]) + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, f := range fields {
		val := fmt.Sprintf("%6d", *f.ptr(&a.cfg))
		if a.editing && i == a.fieldCursor {
			val = fmt.Sprintf("%6s", a.editBuf+"_")
		}
		if i == a.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-15s", f.name)), detailStyle.Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-15s", f.name)), idleStyle.Render(val)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + errorStyle.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunApp starts the preset picker and blocks until the user quits.
func RunApp(seed int64, logger *log.Logger) error {
	_, err := tea.NewProgram(NewApp(seed, logger), tea.WithAltScreen()).Run()
	return err
}
