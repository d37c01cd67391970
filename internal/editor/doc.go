// Package editor implements the scientific-notation value editor used by
// every calculator form.
//
// An [Editor] binds a value owned by its parent, held in SI units, to two
// free-text fields: a mantissa and a decimal exponent, shown in a selectable
// display unit. The parent keeps sole write authority over the value; the
// editor only proposes new values through Config.OnChange and is told about
// accepted ones through [Editor.SetValueSI].
//
// # Synchronisation
//
// The text buffer is rewritten from the value only when the value it
// currently encodes has drifted out of tolerance of the parent's value (see
// [ShouldResync]). Keystrokes that land on the same number therefore keep
// their exact text: "1.0" stays "1.0", and intermediate input such as "-" or
// "1." survives until the user finishes typing.
//
//	ed := editor.New(editor.Config{
//	    ValueSI:  &lambda,
//	    Kind:     units.Length,
//	    Unit:     &unit,
//	    OnChange: func(si float64) { lambda = si },
//	})
//	ed.SetExponent("-10")
//
// # Thread Safety
//
// Editors are NOT safe for concurrent use. They are driven from a single
// UI event loop.
package editor
