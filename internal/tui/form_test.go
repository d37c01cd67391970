package tui

import (
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/qmlab/internal/config"
	"github.com/san-kum/qmlab/internal/editor"
	"github.com/san-kum/qmlab/internal/quantum"
	"github.com/san-kum/qmlab/internal/storage"
	"github.com/san-kum/qmlab/internal/units"
)

func newBoxForm(t *testing.T) *form {
	t.Helper()
	return newForm(quantum.NewBox(), config.DefaultConfig(), units.Default())
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func TestForm_InitialBuffers(t *testing.T) {
	fm := newBoxForm(t)
	if len(fm.fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(fm.fields))
	}
	length := fm.fields[0]
	if got := length.ed.Buffer(); got != (editor.Buffer{Mantissa: "1", Exponent: "0"}) {
		t.Errorf("length buffer = %+v", got)
	}
	if length.ed.Unit() != "nm" {
		t.Errorf("length unit = %s", length.ed.Unit())
	}
	if len(fm.results) == 0 || fm.err != nil {
		t.Errorf("expected results, got %v (%v)", fm.results, fm.err)
	}
}

func TestForm_TypingUpdatesParent(t *testing.T) {
	fm := newBoxForm(t)
	before := fm.results[0].Value

	fm.typeRune('5')
	if got := fm.fields[0].ed.Buffer().Mantissa; got != "15" {
		t.Fatalf("mantissa = %q", got)
	}
	if !near(fm.values["length"], 15e-9) {
		t.Errorf("length = %g, want 15e-9", fm.values["length"])
	}
	if fm.results[0].Value >= before {
		t.Errorf("energy should drop for a wider box: %g -> %g", before, fm.results[0].Value)
	}
}

func TestForm_PartialInputKept(t *testing.T) {
	fm := newBoxForm(t)
	fm.exponent = true
	fm.backspace()
	if got := fm.fields[0].ed.Buffer(); got.Exponent != "" {
		t.Fatalf("exponent = %q", got.Exponent)
	}
	fm.typeRune('-')
	if got := fm.fields[0].ed.Buffer().Exponent; got != "-" {
		t.Errorf("partial exponent clobbered: %q", got)
	}
	if !near(fm.values["length"], 1e-9) {
		t.Errorf("unparsable input changed the value: %g", fm.values["length"])
	}
	fm.typeRune('1')
	if !near(fm.values["length"], 1e-10) {
		t.Errorf("length = %g, want 1e-10", fm.values["length"])
	}
}

func TestForm_UnitCycleKeepsValue(t *testing.T) {
	fm := newBoxForm(t)
	fm.cycleUnit(1)

	fld := fm.fields[0]
	if fld.ed.Unit() != "Å" || fm.units["length"] != "Å" {
		t.Fatalf("unit = %s / %s", fld.ed.Unit(), fm.units["length"])
	}
	if got := fld.ed.Buffer(); got != (editor.Buffer{Mantissa: "1", Exponent: "1"}) {
		t.Errorf("buffer after unit switch = %+v", got)
	}
	if !near(fm.values["length"], 1e-9) {
		t.Errorf("value changed on unit switch: %g", fm.values["length"])
	}
}

func TestForm_PresetPushesValues(t *testing.T) {
	fm := newBoxForm(t)
	name := fm.nextPreset()
	if name != "dust" {
		t.Fatalf("first preset = %q", name)
	}
	if fm.units["length"] != "mm" {
		t.Errorf("length unit = %s", fm.units["length"])
	}
	if got := fm.fields[0].ed.Buffer(); got != (editor.Buffer{Mantissa: "1", Exponent: "-1"}) {
		t.Errorf("length buffer = %+v", got)
	}
	if fm.values["mass"] != 1e-9 {
		t.Errorf("mass = %g", fm.values["mass"])
	}
}

func TestForm_TargetRebuildsFields(t *testing.T) {
	fm := newForm(quantum.NewDeBroglie(), config.DefaultConfig(), units.Default())
	if fm.fields[0].spec.Name != "mass" {
		t.Fatalf("first field = %s", fm.fields[0].spec.Name)
	}
	if !fm.nextTarget() {
		t.Fatal("expected a target switch")
	}
	if currentTarget(fm.topic) != quantum.TargetMass {
		t.Errorf("target = %s", currentTarget(fm.topic))
	}
	if len(fm.fields) != 2 || fm.fields[0].spec.Name != "wavelength" {
		t.Errorf("fields not rebuilt: %v", fm.fields)
	}
	if fm.results[0].Name != quantum.TargetMass {
		t.Errorf("result = %s", fm.results[0].Name)
	}
}

func TestForm_ConfigUnitsAndInputs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Units = map[string]string{"length": "pm"}
	cfg.Inputs = map[string]float64{"length": 5e-10}

	fm := newForm(quantum.NewBox(), cfg, units.Default())
	fld := fm.fields[0]
	if fld.ed.Unit() != "pm" {
		t.Errorf("unit = %s", fld.ed.Unit())
	}
	if got := fld.ed.Buffer(); got != (editor.Buffer{Mantissa: "5", Exponent: "2"}) {
		t.Errorf("buffer = %+v", got)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m tea.Model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m.(model)
}

func TestApp_MenuToForm(t *testing.T) {
	app, err := NewInteractiveApp(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if app.topics[app.cursor] != config.DefaultTopic {
		t.Errorf("cursor on %s", app.topics[app.cursor])
	}

	m := press(t, *app, "j", "j", "enter")
	if m.state != stateForm || m.form.topic.Name() != "box" {
		t.Fatalf("state = %v", m.state)
	}

	m = press(t, m, "tab", "5")
	if got := m.form.fields[0].ed.Buffer().Exponent; got != "05" {
		t.Errorf("exponent = %q", got)
	}

	m = press(t, m, "esc")
	if m.state != stateMenu || m.form != nil {
		t.Error("esc should return to the menu")
	}
}

func TestApp_SaveFromForm(t *testing.T) {
	st := storage.New(t.TempDir())
	app, err := NewInteractiveApp(config.DefaultConfig(), st)
	if err != nil {
		t.Fatal(err)
	}
	m := press(t, *app, "enter", "s")
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Topic != "debroglie" {
		t.Errorf("runs = %+v (status %q)", runs, m.status)
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("retro").Name != "retro" {
		t.Error("retro theme not found")
	}
	if GetTheme("nope").Name != ThemeScience.Name {
		t.Error("unknown theme should fall back to science")
	}
}
