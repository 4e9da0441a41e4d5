package model

import (
	"fmt"
	"strconv"
)

type RemainingKind int

const (
	RemainingNumeric RemainingKind = iota
	RemainingAllowed
	RemainingNoLimit
	RemainingNotApplicable
)

// Remaining is either a signed count or one of the sentinels
// "Allowed", "No limit" and "N/A". It is used for both limits and remaining capacity.
type Remaining struct {
	kind  RemainingKind
	value int
}

func Numeric(v int) Remaining {
	return Remaining{kind: RemainingNumeric, value: v}
}

func Allowed() Remaining {
	return Remaining{kind: RemainingAllowed}
}

func NoLimit() Remaining {
	return Remaining{kind: RemainingNoLimit}
}

func NotApplicable() Remaining {
	return Remaining{kind: RemainingNotApplicable}
}

// NumericOrNoLimit maps an absent cap to "No limit"
func NumericOrNoLimit(v *int) Remaining {
	if v == nil {
		return NoLimit()
	}
	return Numeric(*v)
}

func (r Remaining) Kind() RemainingKind {
	return r.kind
}

// Value returns the numeric value and whether the variant is numeric
func (r Remaining) Value() (int, bool) {
	return r.value, r.kind == RemainingNumeric
}

func (r Remaining) IsNegative() bool {
	return r.kind == RemainingNumeric && r.value < 0
}

// HasCapacity is true for a positive number, "Allowed" or "No limit"
func (r Remaining) HasCapacity() bool {
	switch r.kind {
	case RemainingNumeric:
		return r.value > 0
	case RemainingAllowed, RemainingNoLimit:
		return true
	default:
		return false
	}
}

func (r Remaining) String() string {
	switch r.kind {
	case RemainingNumeric:
		return strconv.Itoa(r.value)
	case RemainingAllowed:
		return "Allowed"
	case RemainingNoLimit:
		return "No limit"
	case RemainingNotApplicable:
		return "N/A"
	default:
		return fmt.Sprintf("Remaining(%d)", r.kind)
	}
}

// MarshalJSON writes a number for numeric values and the sentinel text otherwise
func (r Remaining) MarshalJSON() ([]byte, error) {
	if r.kind == RemainingNumeric {
		return []byte(strconv.Itoa(r.value)), nil
	}
	return []byte(strconv.Quote(r.String())), nil
}

func (r *Remaining) UnmarshalJSON(data []byte) error {
	if v, err := strconv.Atoi(string(data)); err == nil {
		*r = Numeric(v)
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid remaining value %s", data)
	}
	switch s {
	case "Allowed":
		*r = Allowed()
	case "No limit":
		*r = NoLimit()
	case "N/A":
		*r = NotApplicable()
	default:
		return fmt.Errorf("unknown remaining sentinel %q", s)
	}
	return nil
}
