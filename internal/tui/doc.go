// Package tui provides the interactive terminal lab.
//
// The menu lists every calculator. Opening one shows a form with a
// mantissa/exponent editor per input; results and the topic's chart update
// as you type.
//
// # Key Bindings
//
//	↑/↓   - Select input
//	Tab   - Switch between mantissa and exponent
//	u/U   - Next/previous display unit
//	p     - Load the next textbook preset
//	t     - Solve for the next unknown (de Broglie)
//	s     - Save the calculation
//	T     - Cycle color themes
//	Esc   - Back to the menu
package tui
