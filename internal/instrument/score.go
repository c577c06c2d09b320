package instrument

import "strconv"

// Sentinel is displayed when a score cannot be computed yet.
const Sentinel = "—"

// Score is a normalized 0-10 value or the undefined sentinel.
type Score struct {
	value   float64
	defined bool
}

// Undefined is the score of an instrument that has nothing to grade yet.
var Undefined = Score{}

// Points returns a defined score.
func Points(v float64) Score {
	return Score{value: v, defined: true}
}

// Value returns the numeric score and whether it is defined.
func (s Score) Value() (float64, bool) {
	return s.value, s.defined
}

// Defined reports whether the score has a numeric value.
func (s Score) Defined() bool {
	return s.defined
}

// String renders the score fixed to two decimals, or the sentinel.
func (s Score) String() string {
	if !s.defined {
		return Sentinel
	}
	return strconv.FormatFloat(s.value, 'f', 2, 64)
}

// MarshalText lets scores appear as strings in JSON and YAML output.
func (s Score) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ratio returns (num/den)*10, or a defined zero when den is not positive.
func ratio(num, den float64) Score {
	if den <= 0 {
		return Points(0)
	}
	return Points(num / den * 10)
}
