package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field identifies one of the five time-unit slots of a recurrence.
type Field int

// Fields in render order.
const (
	Minute Field = iota
	Hour
	DayOfMonth
	Month
	DayOfWeek

	numFields = 5
)

// Fields lists every field in render order.
var Fields = [numFields]Field{Minute, Hour, DayOfMonth, Month, DayOfWeek}

// Bounds is the inclusive range of values a field accepts.
type Bounds struct {
	Min int
	Max int
}

var fieldBounds = [numFields]Bounds{
	Minute:     {0, 59},
	Hour:       {0, 23},
	DayOfMonth: {1, 31},
	Month:      {1, 12},
	DayOfWeek:  {0, 6},
}

var fieldNames = [numFields]string{
	Minute:     "minute",
	Hour:       "hour",
	DayOfMonth: "day-of-month",
	Month:      "month",
	DayOfWeek:  "day-of-week",
}

// Valid reports whether f is one of the Fields.
func (f Field) Valid() bool { return f >= 0 && f < numFields }

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Bounds returns the inclusive value range of f, or the zero Bounds when f
// is not one of the Fields.
func (f Field) Bounds() Bounds {
	if !f.Valid() {
		return Bounds{}
	}
	return fieldBounds[f]
}

func (b Bounds) contains(n int) bool { return n >= b.Min && n <= b.Max }

// Kind tags the shape of a FieldValue.
type Kind int

// Value kinds. Unset is the zero value and marks a field never answered.
const (
	Unset Kind = iota
	Wildcard
	Single
	List
	Range
	SteppedRange
)

func (k Kind) String() string {
	switch k {
	case Wildcard:
		return "wildcard"
	case Single:
		return "single"
	case List:
		return "list"
	case Range:
		return "range"
	case SteppedRange:
		return "stepped-range"
	default:
		return "unset"
	}
}

// FieldValue is a parsed field token. The original token is kept so the
// value renders back exactly as the operator typed it.
type FieldValue struct {
	Kind   Kind
	Values []int // Single (one element) and List, in input order
	Lo     int
	Hi     int
	Step   int
	token  string
}

// WildcardValue is the "*" field value.
func WildcardValue() FieldValue {
	return FieldValue{Kind: Wildcard, token: "*"}
}

// IsSet reports whether the value has been resolved.
func (v FieldValue) IsSet() bool { return v.Kind != Unset }

// String returns the literal token.
func (v FieldValue) String() string { return v.token }

var (
	reNumber  = regexp.MustCompile(`^\d+$`)
	reList    = regexp.MustCompile(`^\d+(,\d+)+$`)
	reRange   = regexp.MustCompile(`^(\d+)-(\d+)$`)
	reStepped = regexp.MustCompile(`^(\d+)-(\d+)/(\d+)$`)
)

// ParseField parses token against the grammars accepted for field, in
// order: wildcard, single integer, comma list, range, stepped range. The
// first grammar whose shape matches decides the outcome.
func ParseField(field Field, token string) (FieldValue, error) {
	b := field.Bounds()
	fail := func(reason string) (FieldValue, error) {
		return FieldValue{}, &FieldSyntaxError{Field: field, Token: token, Reason: reason}
	}

	switch {
	case !field.Valid():
		return fail("unknown field")

	case token == "*":
		return WildcardValue(), nil

	case reNumber.MatchString(token):
		n, ok := atoi(token)
		if !ok || !b.contains(n) {
			return fail(outOfBounds(b))
		}
		return FieldValue{Kind: Single, Values: []int{n}, token: token}, nil

	case reList.MatchString(token):
		parts := strings.Split(token, ",")
		values := make([]int, 0, len(parts))
		for _, p := range parts {
			n, ok := atoi(p)
			if !ok || !b.contains(n) {
				return fail(fmt.Sprintf("list item %s %s", p, outOfBounds(b)))
			}
			values = append(values, n)
		}
		return FieldValue{Kind: List, Values: values, token: token}, nil

	case reRange.MatchString(token):
		m := reRange.FindStringSubmatch(token)
		lo, hi, err := rangeEnds(b, m[1], m[2])
		if err != "" {
			return fail(err)
		}
		return FieldValue{Kind: Range, Lo: lo, Hi: hi, token: token}, nil

	case reStepped.MatchString(token):
		m := reStepped.FindStringSubmatch(token)
		lo, hi, err := rangeEnds(b, m[1], m[2])
		if err != "" {
			return fail(err)
		}
		step, ok := atoi(m[3])
		if !ok || step < 1 {
			return fail("step must be at least 1")
		}
		return FieldValue{Kind: SteppedRange, Lo: lo, Hi: hi, Step: step, token: token}, nil
	}

	return fail("expected *, N, N,N,..., LO-HI or LO-HI/STEP")
}

func rangeEnds(b Bounds, loRaw, hiRaw string) (lo, hi int, reason string) {
	lo, okLo := atoi(loRaw)
	hi, okHi := atoi(hiRaw)
	if !okLo || !okHi || !b.contains(lo) || !b.contains(hi) {
		return 0, 0, "range ends " + outOfBounds(b)
	}
	if lo > hi {
		return 0, 0, fmt.Sprintf("range start %d is after end %d", lo, hi)
	}
	return lo, hi, ""
}

func outOfBounds(b Bounds) string {
	return fmt.Sprintf("must be between %d and %d", b.Min, b.Max)
}

// atoi parses a run of digits, reporting false on overflow.
func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
