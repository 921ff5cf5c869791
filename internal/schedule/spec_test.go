package schedule

import (
	"errors"
	"testing"
)

func TestBuildFromMacro(t *testing.T) {
	t.Parallel()

	for _, m := range Macros {
		bare := string(m)[1:]
		for _, token := range []string{bare, string(m)} {
			s, err := BuildFromMacro(token)
			if err != nil {
				t.Fatalf("BuildFromMacro(%q) error: %v", token, err)
			}
			got, err := s.Render()
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if got != string(m) {
				t.Errorf("Render() = %q, want %q", got, m)
			}
		}
	}

	if len(Macros) != 6 {
		t.Errorf("macro count = %d, want 6", len(Macros))
	}

	for _, token := range []string{"", "@", "every", "@every 5m", "Daily", "midnight", "annually"} {
		if _, err := BuildFromMacro(token); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("BuildFromMacro(%q) error = %v, want ErrInvalidOption", token, err)
		}
	}
}

func TestBuildFromCalendar(t *testing.T) {
	t.Parallel()

	s, err := BuildFromCalendar("12", "25", "07:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got != "30 07 25 12 *" {
		t.Errorf("Render() = %q, want %q", got, "30 07 25 12 *")
	}
	if s.Get(DayOfWeek).Kind != Wildcard {
		t.Errorf("day-of-week kind = %s, want wildcard", s.Get(DayOfWeek).Kind)
	}
}

func TestBuildFromCalendar_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		month, dom, clock string
		want              error
	}{
		{"no separator", "1", "1", "0730", ErrMalformedTime},
		{"too many parts", "1", "1", "07:30:00", ErrMalformedTime},
		{"non numeric", "1", "1", "ab:cd", ErrMalformedTime},
		{"empty minute", "1", "1", "07:", ErrMalformedTime},
		{"hour out of range", "1", "1", "24:00", ErrFieldSyntax},
		{"minute out of range", "1", "1", "23:60", ErrFieldSyntax},
		{"month out of range", "13", "1", "00:00", ErrFieldSyntax},
		{"day out of range", "2", "32", "00:00", ErrFieldSyntax},
		{"range is not a date", "1-3", "1", "00:00", ErrFieldSyntax},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := BuildFromCalendar(tt.month, tt.dom, tt.clock)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEveryAnswer(t *testing.T) {
	t.Parallel()

	for _, reply := range []string{"", "y", "Y"} {
		every, err := EveryAnswer(reply)
		if err != nil || !every {
			t.Errorf("EveryAnswer(%q) = %v, %v; want true, nil", reply, every, err)
		}
	}
	for _, reply := range []string{"n", "N"} {
		every, err := EveryAnswer(reply)
		if err != nil || every {
			t.Errorf("EveryAnswer(%q) = %v, %v; want false, nil", reply, every, err)
		}
	}
	for _, reply := range []string{"yes", "no", " y", "x"} {
		if _, err := EveryAnswer(reply); !errors.Is(err, ErrAmbiguousYesNo) {
			t.Errorf("EveryAnswer(%q) error = %v, want ErrAmbiguousYesNo", reply, err)
		}
	}
}

func TestBuildFromRecurrence(t *testing.T) {
	t.Parallel()

	s, err := BuildFromRecurrence(map[Field]Answer{
		Minute:     {Every: "n", Expr: "0"},
		Hour:       {Every: "N", Expr: "0-23/2"},
		DayOfMonth: {Every: "y"},
		Month:      {Every: ""},
		DayOfWeek:  {Every: "n", Expr: "1-5"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got != "0 0-23/2 * * 1-5" {
		t.Errorf("Render() = %q", got)
	}
}

func TestBuildFromRecurrence_Errors(t *testing.T) {
	t.Parallel()

	_, err := BuildFromRecurrence(map[Field]Answer{Hour: {Every: "maybe"}})
	if !errors.Is(err, ErrAmbiguousYesNo) {
		t.Errorf("error = %v, want ErrAmbiguousYesNo", err)
	}

	_, err = BuildFromRecurrence(map[Field]Answer{Minute: {Every: "n", Expr: "60"}})
	if !errors.Is(err, ErrFieldSyntax) {
		t.Errorf("error = %v, want ErrFieldSyntax", err)
	}
}

func TestRender_Incomplete(t *testing.T) {
	t.Parallel()

	var s Spec
	if _, err := s.Render(); !errors.Is(err, ErrIncompleteSchedule) {
		t.Fatalf("zero Spec error = %v, want ErrIncompleteSchedule", err)
	}

	s.Set(Minute, WildcardValue())
	s.Set(Hour, WildcardValue())
	s.Set(DayOfMonth, WildcardValue())
	s.Set(Month, WildcardValue())
	if _, err := s.Render(); !errors.Is(err, ErrIncompleteSchedule) {
		t.Fatalf("four fields error = %v, want ErrIncompleteSchedule", err)
	}

	s.Set(DayOfWeek, WildcardValue())
	got, err := s.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "* * * * *" {
		t.Errorf("Render() = %q", got)
	}
}

func TestSet_ClearsMacro(t *testing.T) {
	t.Parallel()

	s, err := BuildFromMacro("hourly")
	if err != nil {
		t.Fatal(err)
	}
	s.Set(Minute, WildcardValue())
	if _, ok := s.Macro(); ok {
		t.Fatal("macro should be cleared after Set")
	}
	if _, err := s.Render(); !errors.Is(err, ErrIncompleteSchedule) {
		t.Errorf("error = %v, want ErrIncompleteSchedule", err)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"* * * * *",
		"5 0 1,15 1-6 1-5",
		"0-59/15 0-23/2 1-31/2 1,3,5 0",
		"@reboot",
		"@weekly",
	} {
		s, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", raw, err)
		}
		got, err := s.Render()
		if err != nil {
			t.Fatalf("Render() error: %v", err)
		}
		if got != raw {
			t.Errorf("round trip = %q, want %q", got, raw)
		}
	}

	if _, err := Parse("* * *"); !errors.Is(err, ErrIncompleteSchedule) {
		t.Errorf("short Parse error = %v", err)
	}
	if _, err := Parse("*/5 * * * *"); !errors.Is(err, ErrFieldSyntax) {
		t.Errorf("step-on-wildcard Parse error = %v", err)
	}
}
