package session

import (
	"context"
	"strconv"
	"strings"

	"github.com/flemzord/cronpad/internal/lifecycle"
	"github.com/flemzord/cronpad/internal/schedule"
)

const recurringMenu = `Options:
1. Run every boot
2. Run hourly
3. Run daily
4. Run weekly
5. Run monthly
6. Run yearly
7. Custom schedule

`

// recurrence walks the operator through building a recurrence.
func (s *Session) recurrence(ctx context.Context) (schedule.Spec, error) {
	kind, err := s.p.Ask(ctx, "Options:\n1. Specific Date\n2. Recurring task\n> ")
	if err != nil {
		return schedule.Spec{}, err
	}
	switch strings.TrimSpace(kind) {
	case "1":
		return s.calendar(ctx)
	case "2":
	default:
		return schedule.Spec{}, lifecycle.ErrInvalidOption
	}

	s.p.Printf("%s", recurringMenu)
	option, err := s.p.Ask(ctx, "> ")
	if err != nil {
		return schedule.Spec{}, err
	}
	option = strings.TrimSpace(option)
	if option == "7" {
		return s.custom(ctx)
	}
	n, err := strconv.Atoi(option)
	if err != nil || n < 1 || n > len(schedule.Macros) {
		return schedule.Spec{}, lifecycle.ErrInvalidOption
	}
	return schedule.BuildFromMacro(string(schedule.Macros[n-1]))
}

func (s *Session) calendar(ctx context.Context) (schedule.Spec, error) {
	month, err := s.p.Ask(ctx, "Month (1-12): ")
	if err != nil {
		return schedule.Spec{}, err
	}
	day, err := s.p.Ask(ctx, "Day of Month (1-31): ")
	if err != nil {
		return schedule.Spec{}, err
	}
	clock, err := s.p.Ask(ctx, "Time in 24hr format (HH:MM): ")
	if err != nil {
		return schedule.Spec{}, err
	}
	return schedule.BuildFromCalendar(month, day, strings.TrimSpace(clock))
}

// customOrder is the order the fields are asked in.
var customOrder = []schedule.Field{
	schedule.DayOfWeek, schedule.Month, schedule.DayOfMonth, schedule.Hour, schedule.Minute,
}

var fieldQuestion = map[schedule.Field]string{
	schedule.DayOfWeek:  "Every day of the week? [Y/n]: ",
	schedule.Month:      "Every month? [Y/n]: ",
	schedule.DayOfMonth: "Every day of the month? [Y/n]: ",
	schedule.Hour:       "Every hour? [Y/n]: ",
	schedule.Minute:     "Every minute? [Y/n]: ",
}

var fieldHelp = map[schedule.Field]string{
	schedule.DayOfWeek: `Days of the week: (0) Sunday (1) Monday (2) Tuesday (3) Wednesday (4) Thursday (5) Friday (6) Saturday
Enter one of:
 - a single day (eg. 3 for Wednesday)
 - a range (eg. 1-5 for Monday to Friday)
 - a list (eg. 1,3,5 for Monday, Wednesday and Friday)
 - a range with a step (eg. 0-6/2 for every other day)
`,
	schedule.Month: `Months: (1) January (2) February (3) March (4) April (5) May (6) June
        (7) July (8) August (9) September (10) October (11) November (12) December
Enter one of:
 - a single month (eg. 6)
 - a range (eg. 2-5)
 - a list (eg. 1,4,7,10)
 - a range with a step (eg. 1-12/3 for every third month)
`,
	schedule.DayOfMonth: `Valid days are 1-31
Enter one of:
 - a single day (eg. 15)
 - a range (eg. 1-7)
 - a list (eg. 1,15)
 - a range with a step (eg. 1-31/2 for every other day)
`,
	schedule.Hour: `Valid hours are 0-23 (24hr time)
Enter one of:
 - a single hour (eg. 13)
 - a range (eg. 9-17)
 - a list (eg. 8,12,18)
 - a range with a step (eg. 0-23/6 for every six hours)
`,
	schedule.Minute: `Valid minutes are 0-59
Enter one of:
 - a single minute (eg. 30)
 - a range (eg. 0-5)
 - a list (eg. 0,15,30,45)
 - a range with a step (eg. 0-59/10 for every ten minutes)
`,
}

// custom asks for each field in turn. A field expression that does not
// parse is reported and the field is asked again.
func (s *Session) custom(ctx context.Context) (schedule.Spec, error) {
	s.p.Printf("Do you want this cronjob to run:\n")
	answers := make(map[schedule.Field]schedule.Answer, len(customOrder))
	for _, f := range customOrder {
		a, err := s.field(ctx, f)
		if err != nil {
			return schedule.Spec{}, err
		}
		answers[f] = a
	}
	return schedule.BuildFromRecurrence(answers)
}

func (s *Session) field(ctx context.Context, f schedule.Field) (schedule.Answer, error) {
	for {
		reply, err := s.p.Ask(ctx, fieldQuestion[f])
		if err != nil {
			return schedule.Answer{}, err
		}
		reply = strings.TrimSpace(reply)
		every, err := schedule.EveryAnswer(reply)
		if err != nil {
			s.p.Printf("Please answer y or n\n")
			continue
		}
		if every {
			return schedule.Answer{Every: reply}, nil
		}

		s.p.Printf("%s", fieldHelp[f])
		expr, err := s.p.Ask(ctx, "> ")
		if err != nil {
			return schedule.Answer{}, err
		}
		expr = strings.TrimSpace(expr)
		if _, err := schedule.ParseField(f, expr); err != nil {
			s.p.Printf("Error: %v\n", err)
			continue
		}
		return schedule.Answer{Every: reply, Expr: expr}, nil
	}
}
