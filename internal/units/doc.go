// Package units provides the unit-conversion tables used by the editors and
// calculators.
//
// A [Table] maps a quantity [Kind] to an ordered list of display units, each
// carrying the factor that converts one display unit to SI:
//
//	si = display * factor
//
// Tables are read-only once built. Callers inject them where they are needed
// instead of reaching for a package global; [Default] returns a fresh copy of
// the built-in table.
//
// # Resolution
//
// [Table.Resolve] looks a unit up by kind, then by a global search across all
// kinds, then in a small table of common length prefixes. A unit that matches
// nothing resolves to a factor of 1 with [SourceDefault], so callers can tell
// a real SI unit apart from an unrecognised one.
package units
