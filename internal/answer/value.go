// Package answer normalizes free-text answers into canonical comparable
// values. A raw string becomes either a plain number, a number tagged as a
// percentage, or a cleaned-text fallback when no numeric content exists.
// Normalization never fails; malformed input degrades to the fallback.
package answer

import (
	"fmt"
	"strconv"
)

// Kind discriminates the closed set of normalized value shapes.
type Kind int

const (
	// KindNumber is a signed decimal number.
	KindNumber Kind = iota
	// KindPercent is a signed decimal number expressed as a percentage.
	KindPercent
	// KindText is the unparseable fallback holding the cleaned original string.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindPercent:
		return "percent"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// NormalizedValue is a tagged value: a number, a percentage, or a text
// fallback. Values are comparable only within the same tag family.
type NormalizedValue struct {
	kind   Kind
	number float64
	text   string
}

// Number builds a plain numeric value.
func Number(v float64) NormalizedValue {
	return NormalizedValue{kind: KindNumber, number: v}
}

// Percent builds a numeric value tagged as a percentage. The magnitude keeps
// the percentage scale: Percent(14.1) means "14.1%".
func Percent(v float64) NormalizedValue {
	return NormalizedValue{kind: KindPercent, number: v}
}

// Text builds the unparseable fallback.
func Text(s string) NormalizedValue {
	return NormalizedValue{kind: KindText, text: s}
}

// Kind returns the value's tag.
func (v NormalizedValue) Kind() Kind { return v.kind }

// IsNumeric reports whether the value carries a number (plain or percentage).
func (v NormalizedValue) IsNumeric() bool { return v.kind != KindText }

// Value returns the numeric magnitude. Zero for text fallbacks.
func (v NormalizedValue) Value() float64 { return v.number }

// Text returns the cleaned fallback string. Empty for numeric values.
func (v NormalizedValue) Text() string { return v.text }

// String renders the canonical form: re-normalizing the result reproduces the
// same value.
func (v NormalizedValue) String() string {
	switch v.kind {
	case KindPercent:
		return strconv.FormatFloat(v.number, 'f', -1, 64) + "%"
	case KindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	default:
		return v.text
	}
}

// GoString aids test failure output.
func (v NormalizedValue) GoString() string {
	return fmt.Sprintf("answer.NormalizedValue{%s: %q}", v.kind, v.String())
}
