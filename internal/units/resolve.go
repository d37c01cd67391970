package units

import "fmt"

// Source records which step of the lookup chain produced a factor.
type Source int

const (
	// SourceKind: found in the table of the requested kind.
	SourceKind Source = iota
	// SourceGlobal: no kind given, found by searching every kind.
	SourceGlobal
	// SourceFallback: found only in the hard-coded fallback list.
	SourceFallback
	// SourceDefault: nothing matched and the factor defaulted to 1.
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceKind:
		return "kind"
	case SourceGlobal:
		return "global"
	case SourceFallback:
		return "fallback"
	case SourceDefault:
		return "default"
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// Resolution is the outcome of a unit lookup.
type Resolution struct {
	Kind   Kind
	Unit   string
	Factor float64
	Source Source
}

// Unresolved reports whether the unit silently fell back to a factor of 1.
// A non-empty unit that resolves this way is probably mis-scaled.
func (r Resolution) Unresolved() bool {
	return r.Source == SourceDefault && r.Unit != ""
}

// Fallback holds factors for common length units written in forms the
// tables do not carry, consulted only when a kind-less search misses.
var Fallback = map[string]float64{
	"nm":       1e-9,
	"Angstrom": 1e-10,
	"Å":        1e-10,
	"mm":       1e-3,
	"cm":       1e-2,
	"km":       1e3,
}

// Resolve returns the SI factor for unit.
//
// With a kind, only that kind's units are consulted. Without one, every kind
// is searched in [Table.Kinds] order, then [Fallback]. Anything else resolves
// to 1 with SourceDefault.
func (t Table) Resolve(kind Kind, unit string) Resolution {
	unit = Normalize(unit)
	res := Resolution{Kind: kind, Unit: unit, Factor: 1, Source: SourceDefault}

	if kind != None {
		if f, ok := t.Factor(kind, unit); ok && f != 0 {
			res.Factor, res.Source = f, SourceKind
		}
		return res
	}
	if unit == "" {
		return res
	}

	for _, k := range t.Kinds() {
		if f, ok := t.Factor(k, unit); ok && f != 0 {
			res.Kind, res.Factor, res.Source = k, f, SourceGlobal
			return res
		}
	}
	for sym, f := range Fallback {
		if Normalize(sym) == unit {
			res.Factor, res.Source = f, SourceFallback
			return res
		}
	}
	return res
}

// Convert converts v from one unit to another within kind. Unlike Resolve it
// refuses units that only resolve by default.
func (t Table) Convert(v float64, from, to string, kind Kind) (float64, error) {
	rf := t.Resolve(kind, from)
	if rf.Unresolved() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	rt := t.Resolve(kind, to)
	if rt.Unresolved() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	return v * rf.Factor / rt.Factor, nil
}
