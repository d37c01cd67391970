package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/qmlab/internal/config"
	"github.com/san-kum/qmlab/internal/experiment"
	"github.com/san-kum/qmlab/internal/format"
	"github.com/san-kum/qmlab/internal/storage"
	"github.com/san-kum/qmlab/internal/units"
)

type state int

const (
	stateMenu state = iota
	stateForm
)

type model struct {
	state  state
	cursor int

	registry *experiment.Registry
	topics   []string
	titles   map[string]string

	cfg   *config.Config
	table units.Table
	store *storage.Store

	form   *form
	status string

	theme  int
	styles styles

	width, height int
}

// NewInteractiveApp builds the lab from cfg. A nil store disables saving.
func NewInteractiveApp(cfg *config.Config, store *storage.Store) (*model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	reg := experiment.NewRegistry()
	m := &model{
		state:    stateMenu,
		registry: reg,
		topics:   reg.ListTopics(),
		titles:   make(map[string]string),
		cfg:      cfg,
		table:    table,
		store:    store,
		width:    80,
		height:   24,
	}
	for i, name := range m.topics {
		topic, err := reg.GetTopic(name)
		if err != nil {
			return nil, err
		}
		m.titles[name] = topic.Title()
		if name == cfg.Topic {
			m.cursor = i
		}
	}
	for i, t := range Themes {
		if t.Name == cfg.Theme {
			m.theme = i
		}
	}
	m.styles = newStyles(Themes[m.theme])
	return m, nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateForm:
		return m.formKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.topics)-1 {
			m.cursor++
		}
	case "T":
		m.nextTheme()
	case "enter", " ":
		m.open(m.topics[m.cursor])
	}
	return m, nil
}

func (m *model) open(name string) {
	topic, err := m.registry.GetTopic(name)
	if err != nil {
		m.status = err.Error()
		return
	}
	cfg := config.DefaultConfig()
	cfg.Precision, cfg.Points = m.cfg.Precision, m.cfg.Points
	if name == m.cfg.Topic {
		cfg.Apply(m.cfg)
		if cfg.Target != "" {
			exp := experiment.New(experiment.Config{Target: cfg.Target})
			if err := exp.Setup(topic); err != nil {
				m.status = err.Error()
				return
			}
		}
	}
	m.form = newForm(topic, cfg, m.table)
	m.state, m.status = stateForm, ""
	for _, fld := range m.form.fields {
		if res := fld.ed.Resolution(); res.Source != units.SourceKind {
			slog.Debug("unit resolved outside its kind", "field", fld.spec.Name, "unit", res.Unit, "source", res.Source, "factor", res.Factor)
		}
	}
}

func (m model) formKey(msg tea.KeyMsg) (model, tea.Cmd) {
	fm := m.form
	m.status = ""
	switch msg.Type {
	case tea.KeyEsc:
		m.state, m.form = stateMenu, nil
		return m, nil
	case tea.KeyUp:
		fm.move(-1)
		return m, nil
	case tea.KeyDown, tea.KeyEnter:
		fm.move(1)
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		fm.exponent = !fm.exponent
		return m, nil
	case tea.KeyBackspace:
		fm.backspace()
		return m, nil
	case tea.KeyRunes:
	default:
		return m, nil
	}

	for _, r := range msg.Runes {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			fm.typeRune(r)
		case r == 'u':
			fm.cycleUnit(1)
		case r == 'U':
			fm.cycleUnit(-1)
		case r == 'p':
			if name := fm.nextPreset(); name != "" {
				m.status = "preset " + name
			}
		case r == 't':
			fm.nextTarget()
		case r == 'T':
			m.nextTheme()
		case r == 's':
			m.save()
		}
	}
	return m, nil
}

func (m *model) nextTheme() {
	m.theme = (m.theme + 1) % len(Themes)
	m.styles = newStyles(Themes[m.theme])
}

func (m *model) save() {
	if m.store == nil {
		m.status = "saving disabled"
		return
	}
	if m.form.err != nil {
		m.status = "nothing to save: " + m.form.err.Error()
		return
	}
	id, err := m.store.Save(m.form.snapshot())
	if err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = "saved " + id
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateForm:
		return m.viewForm()
	}
	return ""
}

func (m model) viewMenu() string {
	s := m.styles
	var b strings.Builder
	b.WriteString("\n\n    " + s.title.Render("QMLAB") + "\n    " + s.subtitle.Render("quantum mechanics lab") + "\n    " + separator(s, 25) + "\n\n")
	for i, name := range m.topics {
		desc := m.titles[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", s.cursor.Render("▸"), s.selected.Render(fmt.Sprintf("%-12s", name)), s.desc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", s.item.Render(fmt.Sprintf("  %-12s", name)), s.itemDesc.Render(desc)))
		}
	}
	b.WriteString("\n    " + s.keyHints("j/k", "navigate", "enter", "select", "T", "theme", "q", "quit") + "\n")
	if m.status != "" {
		b.WriteString("\n    " + s.err.Render(m.status) + "\n")
	}
	return b.String()
}

func (m model) viewForm() string {
	s, fm := m.styles, m.form
	var b strings.Builder

	title := strings.ToUpper(fm.topic.Name())
	if t := currentTarget(fm.topic); t != "" {
		title += " → " + t
	}
	b.WriteString("\n\n    " + s.title.Render(title) + "\n    " + s.subtitle.Render(fm.topic.Title()) + "\n    " + separator(s, 25) + "\n\n")

	for i, fld := range fm.fields {
		b.WriteString("    " + m.viewField(fld, i == fm.cursor) + "\n")
	}

	b.WriteString("\n")
	if fm.err != nil {
		b.WriteString("    " + s.err.Render(fm.err.Error()) + "\n")
	}
	for _, r := range fm.results {
		label := r.Label
		if label == "" {
			label = r.Name
		}
		b.WriteString(fmt.Sprintf("    %s %s\n", s.item.Render(fmt.Sprintf("%-26s", label)), s.value.Render(format.Quantity(r.Value, r.Unit))))
	}

	if chart := m.chart(); chart != "" {
		b.WriteString("\n" + s.panel.Render(chart) + "\n")
	}

	b.WriteString("\n    " + s.keyHints("↑/↓", "field", "tab", "mantissa/exp", "u/U", "unit", "p", "preset", "t", "solve for", "s", "save", "esc", "back") + "\n")
	if m.status != "" {
		b.WriteString("\n    " + s.desc.Render(m.status) + "\n")
	}
	return b.String()
}

func (m model) viewField(fld *field, focused bool) string {
	s, ed := m.styles, fld.ed
	buf := ed.Buffer()

	mant, exp := fmt.Sprintf("%10s", buf.Mantissa), fmt.Sprintf("%-4s", buf.Exponent)
	if focused {
		if m.form.exponent {
			exp = s.focus.Render(fmt.Sprintf("%-4s", buf.Exponent+"_"))
			mant = s.selected.Render(mant)
		} else {
			mant = s.focus.Render(fmt.Sprintf("%10s", buf.Mantissa+"_"))
			exp = s.selected.Render(exp)
		}
	}

	unit := ed.Unit()
	if len(ed.Options()) > 1 {
		unit += " ▾"
	}
	unitStr := s.unit.Render(unit)
	if ed.Resolution().Unresolved() {
		unitStr += s.warn.Render(" (unknown unit, ×1)")
	}

	cursor, label := "  ", s.item.Render(fmt.Sprintf("%-26s", ed.Label()))
	if focused {
		cursor, label = s.cursor.Render("▸ "), s.selected.Render(fmt.Sprintf("%-26s", ed.Label()))
	}
	return fmt.Sprintf("%s%s %s × 10^%s %s", cursor, label, mant, exp, unitStr)
}

func (m model) chart() string {
	var data [][]float64
	var names []string
	for _, series := range m.form.series {
		if len(series.Y) < 2 {
			continue
		}
		data = append(data, series.Y)
		names = append(names, series.Name)
	}
	if len(data) == 0 {
		return ""
	}

	width := m.width - 20
	if width < 20 {
		width = 20
	}
	if width > 100 {
		width = 100
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.Caption(strings.Join(names, ", ")),
	)
}

func RunInteractive(cfg *config.Config, store *storage.Store) error {
	app, err := NewInteractiveApp(cfg, store)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
