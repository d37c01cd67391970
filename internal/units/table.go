package units

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind is a category of physical quantity.
type Kind string

const (
	None     Kind = ""
	Length   Kind = "length"
	Mass     Kind = "mass"
	Energy   Kind = "energy"
	Time     Kind = "time"
	Velocity Kind = "velocity"
	Momentum Kind = "momentum"
	Voltage  Kind = "voltage"
	Charge   Kind = "charge"
)

// Kinds lists the built-in kinds in global-search order.
var Kinds = []Kind{Length, Mass, Energy, Time, Velocity, Momentum, Voltage, Charge}

// Unit is a display unit and its factor to SI.
type Unit struct {
	Symbol string  `yaml:"symbol" json:"symbol"`
	Factor float64 `yaml:"factor" json:"factor"`
}

// Table maps each kind to its display units, in selector order.
type Table map[Kind][]Unit

// Default returns a copy of the built-in conversion table.
func Default() Table {
	t := Table{
		Length: {
			{"m", 1}, {"cm", 1e-2}, {"mm", 1e-3}, {"μm", 1e-6},
			{"nm", 1e-9}, {"Å", 1e-10}, {"pm", 1e-12}, {"fm", 1e-15},
		},
		Mass: {
			{"kg", 1}, {"g", 1e-3}, {"mg", 1e-6}, {"μg", 1e-9},
			{"me", ElectronMass}, {"mp", ProtonMass}, {"amu", AtomicMassUnit},
		},
		Energy: {
			{"J", 1}, {"eV", ElectronVolt}, {"keV", ElectronVolt * 1e3},
			{"MeV", ElectronVolt * 1e6}, {"GeV", ElectronVolt * 1e9},
		},
		Time: {
			{"s", 1}, {"ms", 1e-3}, {"μs", 1e-6}, {"ns", 1e-9}, {"ps", 1e-12}, {"fs", 1e-15},
		},
		Velocity: {
			{"m/s", 1}, {"km/s", 1e3}, {"km/h", 0.277778}, {"c", SpeedOfLight},
		},
		Momentum: {
			{"kg·m/s", 1},
		},
		Voltage: {
			{"V", 1}, {"kV", 1e3}, {"mV", 1e-3}, {"μV", 1e-6},
		},
		Charge: {
			{"C", 1}, {"e", ElementaryCharge}, {"mC", 1e-3}, {"μC", 1e-6}, {"nC", 1e-9},
		},
	}
	for k, us := range t {
		for i := range us {
			us[i].Symbol = Normalize(us[i].Symbol)
		}
		t[k] = us
	}
	return t
}

// Normalize folds compatibility forms of a unit symbol, so the micro sign
// and the Greek mu, or the Angstrom sign and Å, compare equal.
func Normalize(symbol string) string {
	return norm.NFKC.String(strings.TrimSpace(symbol))
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == None {
		return None, nil
	}
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Kinds returns the kinds present in t: built-in kinds first, in
// global-search order, then any extra kinds sorted by name.
func (t Table) Kinds() []Kind {
	kinds := make([]Kind, 0, len(t))
	seen := make(map[Kind]bool, len(t))
	for _, k := range Kinds {
		if _, ok := t[k]; ok {
			kinds = append(kinds, k)
			seen[k] = true
		}
	}
	var extra []Kind
	for k := range t {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(kinds, extra...)
}

// Has reports whether kind has a table.
func (t Table) Has(kind Kind) bool {
	_, ok := t[kind]
	return ok
}

// Symbols returns the unit symbols of kind in selector order.
func (t Table) Symbols(kind Kind) []string {
	us := t[kind]
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.Symbol
	}
	return out
}

// Factor returns the factor of symbol within kind.
func (t Table) Factor(kind Kind, symbol string) (float64, bool) {
	symbol = Normalize(symbol)
	for _, u := range t[kind] {
		if u.Symbol == symbol {
			return u.Factor, true
		}
	}
	return 0, false
}

// Merge returns a new table holding t overlaid with extra. Units already in
// t keep their position and take the new factor; new units are appended.
func (t Table) Merge(extra Table) (Table, error) {
	out := make(Table, len(t)+len(extra))
	for k, us := range t {
		out[k] = append([]Unit(nil), us...)
	}
	for k, us := range extra {
		for _, u := range us {
			if u.Factor <= 0 || math.IsInf(u.Factor, 0) || math.IsNaN(u.Factor) {
				return nil, fmt.Errorf("%w: %s %q = %g", ErrInvalidFactor, k, u.Symbol, u.Factor)
			}
			u.Symbol = Normalize(u.Symbol)
			replaced := false
			for i := range out[k] {
				if out[k][i].Symbol == u.Symbol {
					out[k][i].Factor = u.Factor
					replaced = true
					break
				}
			}
			if !replaced {
				out[k] = append(out[k], u)
			}
		}
	}
	return out, nil
}
