package editor

import (
	"math"

	"github.com/san-kum/qmlab/internal/units"
)

// Config describes an editor at construction time. Optional fields are
// resolved once by New:
//
//   - ValueSI wins over Value when both are set; neither means "no value".
//   - A non-nil Unit makes the unit controlled by the parent, which is told
//     about selections through OnUnitChange. Otherwise the editor keeps its
//     own unit, starting at DefaultUnit, then the first option.
//   - UnitOptions overrides the selector list derived from Kind.
//   - A nil Table means units.Default().
type Config struct {
	Label string

	Value    *float64
	ValueSI  *float64
	OnChange func(si float64)

	Kind         units.Kind
	DefaultUnit  string
	UnitOptions  []string
	Unit         *string
	OnUnitChange func(unit string)

	Disabled  bool
	Precision int
	Table     units.Table
}

// syncKey is what a resync depends on. A sync only runs when it changes.
type syncKey struct {
	value  float64
	has    bool
	factor float64
	unit   string
}

// Editor keeps a mantissa/exponent buffer consistent with an SI value.
type Editor struct {
	label     string
	table     units.Table
	kind      units.Kind
	options   []string
	precision int
	disabled  bool

	onChange     func(float64)
	onUnitChange func(string)

	controlled bool
	unit       string

	value    float64
	hasValue bool

	res    units.Resolution
	buf    Buffer
	synced syncKey
}

// New builds an editor and performs the initial sync.
func New(cfg Config) *Editor {
	e := &Editor{
		label:        cfg.Label,
		table:        cfg.Table,
		kind:         cfg.Kind,
		precision:    cfg.Precision,
		disabled:     cfg.Disabled,
		onChange:     cfg.OnChange,
		onUnitChange: cfg.OnUnitChange,
		buf:          Zero,
	}
	if e.table == nil {
		e.table = units.Default()
	}
	if e.precision <= 0 {
		e.precision = DefaultPrecision
	}

	switch {
	case cfg.UnitOptions != nil:
		e.options = append([]string(nil), cfg.UnitOptions...)
	case cfg.Kind != units.None:
		e.options = e.table.Symbols(cfg.Kind)
	}

	switch {
	case cfg.ValueSI != nil:
		e.value, e.hasValue = *cfg.ValueSI, true
	case cfg.Value != nil:
		e.value, e.hasValue = *cfg.Value, true
	}

	if cfg.Unit != nil {
		e.controlled = true
		e.unit = *cfg.Unit
	} else {
		e.unit = cfg.DefaultUnit
		if e.unit == "" && len(e.options) > 0 {
			e.unit = e.options[0]
		}
	}

	e.resolve()
	e.refresh()
	return e
}

func (e *Editor) resolve() {
	e.res = e.table.Resolve(e.kind, e.unit)
}

// refresh re-runs Sync if the value, factor or unit changed since the last
// call.
func (e *Editor) refresh() bool {
	key := syncKey{value: e.value, has: e.hasValue, factor: e.res.Factor, unit: e.unit}
	if key == e.synced {
		return false
	}
	e.synced = key
	return e.Sync()
}

// Sync rewrites the buffer from the current value if ShouldResync says the
// buffer no longer represents it. It reports whether the buffer changed.
// With no value it does nothing.
func (e *Editor) Sync() bool {
	if !e.hasValue {
		return false
	}
	if !ShouldResync(e.buf, e.value, e.res.Factor) {
		return false
	}
	e.buf = SplitPrecision(e.value/e.res.Factor, e.precision)
	return true
}

// SetValueSI is how the parent pushes its value into the editor, either
// after accepting an OnChange proposal or after changing it externally.
// A nil v clears the value. It reports whether the buffer was rewritten.
func (e *Editor) SetValueSI(v *float64) bool {
	if v == nil {
		e.value, e.hasValue = 0, false
	} else {
		e.value, e.hasValue = *v, true
	}
	return e.refresh()
}

// SetControlledUnit is how the parent pushes a new unit in controlled mode.
// In uncontrolled mode it behaves like SelectUnit.
func (e *Editor) SetControlledUnit(unit string) bool {
	if !e.controlled {
		return e.SelectUnit(unit)
	}
	e.unit = unit
	e.resolve()
	return e.refresh()
}

// SelectUnit handles a pick from the unit selector. A controlled editor only
// notifies its parent and waits for SetControlledUnit; an uncontrolled one
// switches immediately and re-syncs the buffer to the new unit.
func (e *Editor) SelectUnit(unit string) bool {
	if e.controlled {
		if e.onUnitChange != nil {
			e.onUnitChange(unit)
		}
		return false
	}
	e.unit = unit
	e.resolve()
	changed := e.refresh()
	if e.onUnitChange != nil {
		e.onUnitChange(unit)
	}
	return changed
}

// CycleUnit selects the option step positions away from the current unit.
func (e *Editor) CycleUnit(step int) bool {
	n := len(e.options)
	if n == 0 {
		return false
	}
	i := 0
	for j, u := range e.options {
		if units.Normalize(u) == units.Normalize(e.unit) {
			i = j
			break
		}
	}
	i = ((i+step)%n + n) % n
	return e.SelectUnit(e.options[i])
}

// SetMantissa stores the raw mantissa text and reports the new value if
// both fields parse.
func (e *Editor) SetMantissa(text string) {
	e.buf.Mantissa = text
	e.report()
}

// SetExponent stores the raw exponent text and reports the new value if
// both fields parse.
func (e *Editor) SetExponent(text string) {
	e.buf.Exponent = text
	e.report()
}

func (e *Editor) report() {
	v, ok := e.Proposed()
	if !ok || e.onChange == nil {
		return
	}
	e.onChange(v)
}

// Proposed returns the SI value the buffer currently encodes, if it parses
// to a finite number.
func (e *Editor) Proposed() (float64, bool) {
	v, ok := Encoded(e.buf, e.res.Factor)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (e *Editor) Label() string                { return e.label }
func (e *Editor) Buffer() Buffer               { return e.buf }
func (e *Editor) Unit() string                 { return e.unit }
func (e *Editor) Kind() units.Kind             { return e.kind }
func (e *Editor) Factor() float64              { return e.res.Factor }
func (e *Editor) Resolution() units.Resolution { return e.res }
func (e *Editor) Controlled() bool             { return e.controlled }
func (e *Editor) Disabled() bool               { return e.disabled }
func (e *Editor) HasValue() bool               { return e.hasValue }

// Options returns the unit selector list.
func (e *Editor) Options() []string {
	return append([]string(nil), e.options...)
}

// ValueSI returns the parent's last known value.
func (e *Editor) ValueSI() (float64, bool) {
	return e.value, e.hasValue
}

// Display returns the value in the current unit, or 0 with no value.
func (e *Editor) Display() float64 {
	if !e.hasValue {
		return 0
	}
	return e.value / e.res.Factor
}
