package tui

import (
	"context"

	"github.com/san-kum/qmlab/internal/config"
	"github.com/san-kum/qmlab/internal/editor"
	"github.com/san-kum/qmlab/internal/experiment"
	"github.com/san-kum/qmlab/internal/quantum"
	"github.com/san-kum/qmlab/internal/units"
)

type field struct {
	spec quantum.Field
	ed   *editor.Editor
}

// form owns the SI value and display unit of every input of one topic.
// Editors propose values through OnChange and unit picks through
// OnUnitChange; the form accepts them, recomputes and pushes them back.
type form struct {
	topic  quantum.Topic
	fields []*field
	values map[string]float64
	units  map[string]string

	cursor   int
	exponent bool

	presets []string
	preset  int

	precision int
	points    int
	table     units.Table

	results []quantum.Result
	series  []quantum.Series
	err     error
}

func newForm(topic quantum.Topic, cfg *config.Config, table units.Table) *form {
	fm := &form{
		topic:     topic,
		values:    make(map[string]float64),
		units:     make(map[string]string),
		presets:   config.ListPresets(topic.Name()),
		preset:    -1,
		precision: cfg.Precision,
		points:    cfg.Points,
		table:     table,
	}
	if fm.points <= 0 {
		fm.points = experiment.DefaultPoints
	}
	for name, v := range cfg.Inputs {
		// Inputs of other topics are ignored.
		_ = topic.SetParam(name, v)
	}
	fm.build(cfg.Units)
	fm.recompute()
	return fm
}

// build creates one editor per input field from the topic's current params.
func (fm *form) build(unitOverrides map[string]string) {
	params := fm.topic.GetParams()
	fm.fields = fm.fields[:0]
	for _, spec := range fm.topic.Fields() {
		fld := &field{spec: spec}
		name := spec.Name

		unit, ok := fm.units[name]
		if !ok {
			unit = spec.Unit
		}
		if u := unitOverrides[name]; u != "" {
			unit = u
		}
		fm.units[name] = unit

		v := params[name]
		fm.values[name] = v

		fld.ed = editor.New(editor.Config{
			Label:        spec.Label,
			ValueSI:      &v,
			OnChange:     func(si float64) { fm.propose(fld, si) },
			Kind:         spec.Kind,
			UnitOptions:  spec.Units,
			Unit:         &unit,
			OnUnitChange: func(u string) { fm.setUnit(fld, u) },
			Precision:    fm.precision,
			Table:        fm.table,
		})
		fm.fields = append(fm.fields, fld)
	}
	if fm.cursor >= len(fm.fields) {
		fm.cursor = 0
	}
}

// propose accepts a value typed into an editor.
func (fm *form) propose(fld *field, si float64) {
	name := fld.spec.Name
	if err := fm.topic.SetParam(name, si); err != nil {
		fm.err = err
		return
	}
	fm.values[name] = si
	fm.recompute()
	fld.ed.SetValueSI(&si)
}

func (fm *form) setUnit(fld *field, unit string) {
	fm.units[fld.spec.Name] = unit
	fld.ed.SetControlledUnit(unit)
}

// setValue changes an input from outside its editor, as a preset does.
func (fm *form) setValue(name string, si float64) {
	if err := fm.topic.SetParam(name, si); err != nil {
		fm.err = err
		return
	}
	fm.values[name] = si
	for _, fld := range fm.fields {
		if fld.spec.Name == name {
			fld.ed.SetValueSI(&si)
		}
	}
}

func (fm *form) recompute() {
	fm.results, fm.series, fm.err = nil, nil, nil
	exp := experiment.New(experiment.Config{Points: fm.points})
	if err := exp.Setup(fm.topic); err != nil {
		fm.err = err
		return
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		fm.err = err
		return
	}
	fm.results, fm.series = res.Results, res.Series
}

// nextPreset cycles to the next textbook example and loads it.
func (fm *form) nextPreset() string {
	if len(fm.presets) == 0 {
		return ""
	}
	fm.preset = (fm.preset + 1) % len(fm.presets)
	name := fm.presets[fm.preset]
	fm.applyPreset(config.GetPreset(fm.topic.Name(), name))
	return name
}

func (fm *form) applyPreset(p *config.Config) {
	if p == nil {
		return
	}
	if p.Target != "" {
		if t, ok := fm.topic.(quantum.Targeted); ok && currentTarget(fm.topic) != p.Target {
			if err := t.SetTarget(p.Target); err != nil {
				fm.err = err
				return
			}
			fm.build(nil)
		}
	}
	for name, u := range p.Units {
		for _, fld := range fm.fields {
			if fld.spec.Name == name {
				fm.setUnit(fld, u)
			}
		}
	}
	for name, v := range p.Inputs {
		fm.setValue(name, v)
	}
	fm.recompute()
}

// nextTarget switches a solver topic to its next unknown.
func (fm *form) nextTarget() bool {
	t, ok := fm.topic.(quantum.Targeted)
	if !ok {
		return false
	}
	targets := t.Targets()
	cur := currentTarget(fm.topic)
	i := 0
	for j, name := range targets {
		if name == cur {
			i = j
		}
	}
	if err := t.SetTarget(targets[(i+1)%len(targets)]); err != nil {
		fm.err = err
		return false
	}
	fm.build(nil)
	fm.recompute()
	return true
}

func currentTarget(topic quantum.Topic) string {
	if d, ok := topic.(*quantum.DeBroglie); ok {
		return d.Target
	}
	return ""
}

func (fm *form) focused() *field {
	if len(fm.fields) == 0 {
		return nil
	}
	return fm.fields[fm.cursor]
}

func (fm *form) move(step int) {
	n := len(fm.fields)
	if n == 0 {
		return
	}
	fm.cursor = ((fm.cursor+step)%n + n) % n
}

// typeRune appends r to the focused text box.
func (fm *form) typeRune(r rune) {
	fld := fm.focused()
	if fld == nil || fld.ed.Disabled() {
		return
	}
	buf := fld.ed.Buffer()
	if fm.exponent {
		fld.ed.SetExponent(buf.Exponent + string(r))
	} else {
		fld.ed.SetMantissa(buf.Mantissa + string(r))
	}
}

func (fm *form) backspace() {
	fld := fm.focused()
	if fld == nil || fld.ed.Disabled() {
		return
	}
	buf := fld.ed.Buffer()
	if fm.exponent {
		fld.ed.SetExponent(trimLast(buf.Exponent))
	} else {
		fld.ed.SetMantissa(trimLast(buf.Mantissa))
	}
}

func trimLast(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

func (fm *form) cycleUnit(step int) {
	if fld := fm.focused(); fld != nil && !fld.ed.Disabled() {
		fld.ed.CycleUnit(step)
	}
}

// snapshot returns the inputs and current result for saving.
func (fm *form) snapshot() *experiment.Result {
	params := make(map[string]float64, len(fm.values))
	for k, v := range fm.values {
		params[k] = v
	}
	return &experiment.Result{
		Topic:   fm.topic.Name(),
		Target:  currentTarget(fm.topic),
		Params:  params,
		Results: fm.results,
		Series:  fm.series,
	}
}
