package units

import "errors"

var (
	// ErrUnknownKind indicates a quantity kind with no table.
	ErrUnknownKind = errors.New("units: unknown quantity kind")

	// ErrUnknownUnit indicates a unit symbol that did not resolve for a conversion.
	ErrUnknownUnit = errors.New("units: unknown unit")

	// ErrInvalidFactor indicates a zero, negative or non-finite conversion factor.
	ErrInvalidFactor = errors.New("units: invalid conversion factor")
)
