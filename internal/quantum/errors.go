package quantum

import (
	"errors"
	"fmt"
)

var (
	// ErrParameterBounds indicates an input outside the formula's domain.
	ErrParameterBounds = errors.New("quantum: parameter out of valid bounds")

	// ErrUnknownParam indicates a parameter name the topic does not have.
	ErrUnknownParam = errors.New("quantum: unknown parameter")

	// ErrUnknownTarget indicates a de Broglie solve target that does not exist.
	ErrUnknownTarget = errors.New("quantum: unknown solve target")

	// ErrUnknownTopic indicates a topic name with no calculator.
	ErrUnknownTopic = errors.New("quantum: unknown topic")
)

// CalcError wraps an error with the topic and field that caused it.
type CalcError struct {
	Topic   string
	Field   string
	Value   float64
	Wrapped error
}

func (e *CalcError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Topic, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s = %g: %v", e.Topic, e.Field, e.Value, e.Wrapped)
}

func (e *CalcError) Unwrap() error {
	return e.Wrapped
}

func boundsErr(topic, field string, v float64) error {
	return &CalcError{Topic: topic, Field: field, Value: v, Wrapped: ErrParameterBounds}
}

func unknownParam(topic, name string) error {
	return &CalcError{Topic: topic, Field: name, Wrapped: ErrUnknownParam}
}
