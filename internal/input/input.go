// Package input turns user-typed text into parameter values. Text is only
// ever parsed as a number, never evaluated.
package input

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/quartercar/internal/dynamo"
)

// Error reports text that could not be used for a field.
type Error struct {
	Field string
	Text  string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %q is not a finite number", e.Field, e.Text)
}

func (e *Error) Unwrap() error { return dynamo.ErrInvalidInput }

// ParseFloat parses a decimal or scientific-notation number, rejecting
// empty text, NaN and infinities.
func ParseFloat(field, text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, &Error{Field: field, Text: text}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &Error{Field: field, Text: text, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &Error{Field: field, Text: text}
	}
	return v, nil
}
