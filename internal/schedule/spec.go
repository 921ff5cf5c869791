package schedule

import (
	"fmt"
	"strings"
)

// Macro is one of the named crontab shorthands.
type Macro string

// Supported macros.
const (
	Reboot  Macro = "@reboot"
	Hourly  Macro = "@hourly"
	Daily   Macro = "@daily"
	Weekly  Macro = "@weekly"
	Monthly Macro = "@monthly"
	Yearly  Macro = "@yearly"
)

// Macros lists the supported macros in menu order.
var Macros = []Macro{Reboot, Hourly, Daily, Weekly, Monthly, Yearly}

// Spec is a recurrence draft: either a macro or five field values. The zero
// value has every field unset and fails to render until each one is resolved.
type Spec struct {
	macro  Macro
	fields [numFields]FieldValue
}

// BuildFromMacro returns a Spec for the named macro. Both "daily" and
// "@daily" are accepted.
func BuildFromMacro(token string) (Spec, error) {
	name := strings.TrimPrefix(token, "@")
	for _, m := range Macros {
		if string(m) == "@"+name {
			return Spec{macro: m}, nil
		}
	}
	return Spec{}, fmt.Errorf("%w: unknown macro %q", ErrInvalidOption, token)
}

// BuildFromCalendar returns a Spec that fires once a year at the given
// month, day and HH:MM clock time. Day-of-week is always a wildcard.
func BuildFromCalendar(month, dayOfMonth, clock string) (Spec, error) {
	var s Spec

	mon, err := parseSingle(Month, month)
	if err != nil {
		return Spec{}, err
	}
	dom, err := parseSingle(DayOfMonth, dayOfMonth)
	if err != nil {
		return Spec{}, err
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 2 || !reNumber.MatchString(parts[0]) || !reNumber.MatchString(parts[1]) {
		return Spec{}, fmt.Errorf("%w: got %q", ErrMalformedTime, clock)
	}
	hour, err := parseSingle(Hour, parts[0])
	if err != nil {
		return Spec{}, err
	}
	minute, err := parseSingle(Minute, parts[1])
	if err != nil {
		return Spec{}, err
	}

	s.Set(Minute, minute)
	s.Set(Hour, hour)
	s.Set(DayOfMonth, dom)
	s.Set(Month, mon)
	s.Set(DayOfWeek, WildcardValue())
	return s, nil
}

func parseSingle(field Field, token string) (FieldValue, error) {
	v, err := ParseField(field, strings.TrimSpace(token))
	if err != nil {
		return FieldValue{}, err
	}
	if v.Kind != Single {
		return FieldValue{}, &FieldSyntaxError{Field: field, Token: token, Reason: "a calendar date needs a single number"}
	}
	return v, nil
}

// Answer is the operator's reply for one field of a custom recurrence:
// Every is the yes/no answer to "every <field>?" and Expr the follow-up
// expression used when Every is "n".
type Answer struct {
	Every string
	Expr  string
}

// EveryAnswer interprets the reply to an "every <field>? [Y/n]" question.
// Empty, y and Y mean every value; n and N mean the caller must ask for an
// expression.
func EveryAnswer(reply string) (bool, error) {
	switch reply {
	case "", "y", "Y":
		return true, nil
	case "n", "N":
		return false, nil
	}
	return false, fmt.Errorf("%w: got %q", ErrAmbiguousYesNo, reply)
}

// BuildFromRecurrence resolves all five fields from the operator's answers.
// A field missing from answers is treated as an empty reply.
func BuildFromRecurrence(answers map[Field]Answer) (Spec, error) {
	var s Spec
	for _, f := range Fields {
		a := answers[f]
		every, err := EveryAnswer(a.Every)
		if err != nil {
			return Spec{}, fmt.Errorf("%s: %w", f, err)
		}
		if every {
			s.Set(f, WildcardValue())
			continue
		}
		v, err := ParseField(f, a.Expr)
		if err != nil {
			return Spec{}, err
		}
		s.Set(f, v)
	}
	return s, nil
}

// Parse reads a rendered recurrence back into a Spec using the same strict
// grammar as the builders.
func Parse(raw string) (Spec, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "@") {
		return BuildFromMacro(raw)
	}
	tokens := strings.Fields(raw)
	if len(tokens) != numFields {
		return Spec{}, fmt.Errorf("%w: want %d fields, got %d", ErrIncompleteSchedule, numFields, len(tokens))
	}
	var s Spec
	for i, f := range Fields {
		v, err := ParseField(f, tokens[i])
		if err != nil {
			return Spec{}, err
		}
		s.Set(f, v)
	}
	return s, nil
}

// Set resolves one field. Setting a field clears any macro. Fields outside
// Fields are ignored.
func (s *Spec) Set(f Field, v FieldValue) {
	if !f.Valid() {
		return
	}
	s.macro = ""
	s.fields[f] = v
}

// Get returns the value of field f, which is unset if never resolved or if
// f is not one of the Fields.
func (s Spec) Get(f Field) FieldValue {
	if !f.Valid() {
		return FieldValue{}
	}
	return s.fields[f]
}

// Macro returns the macro and whether s is a macro spec.
func (s Spec) Macro() (Macro, bool) { return s.macro, s.macro != "" }

// Render returns the recurrence text handed to the job table.
func (s Spec) Render() (string, error) {
	if s.macro != "" {
		return string(s.macro), nil
	}
	tokens := make([]string, 0, numFields)
	var missing []string
	for _, f := range Fields {
		v := s.fields[f]
		if !v.IsSet() {
			missing = append(missing, f.String())
			continue
		}
		tokens = append(tokens, v.String())
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: unresolved %s", ErrIncompleteSchedule, strings.Join(missing, ", "))
	}
	return strings.Join(tokens, " "), nil
}
