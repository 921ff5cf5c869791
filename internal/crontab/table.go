package crontab

import (
	"regexp"
	"strings"
)

// entry is one line of the table: a job or a line kept verbatim
// (environment assignments, plain comments, blank lines).
type entry struct {
	job *Job
	raw string
}

// Table is the ordered content of one crontab.
type Table struct {
	// Owner names whose table this is, for display.
	Owner   string
	entries []entry
}

var envAssignment = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\s*=`)

// Parse decodes crontab text. A commented line whose body parses as a job
// with a valid schedule is a disabled job; other comments are kept verbatim.
func Parse(text string) *Table {
	t := &Table{}
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return t
	}
	for _, line := range strings.Split(text, "\n") {
		t.entries = append(t.entries, parseLine(strings.TrimRight(line, "\r")))
	}
	return t
}

func parseLine(line string) entry {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "", envAssignment.MatchString(trimmed):
		return entry{raw: line}
	case strings.HasPrefix(trimmed, "#"):
		if j, ok := parseJob(strings.TrimSpace(trimmed[1:])); ok {
			j.Enabled = false
			return entry{job: j}
		}
		return entry{raw: line}
	}
	if j, ok := parseJob(trimmed); ok {
		return entry{job: j}
	}
	return entry{raw: line}
}

func parseJob(body string) (*Job, bool) {
	n := 5
	if strings.HasPrefix(body, "@") {
		n = 1
	}
	head, rest := splitFields(body, n)
	if len(head) != n || rest == "" {
		return nil, false
	}
	sched := strings.Join(head, " ")
	if ValidateSchedule(sched) != nil {
		return nil, false
	}
	j := &Job{Schedule: sched, Command: rest, Enabled: true}
	if i := strings.LastIndex(rest, commentSep); i >= 0 {
		j.Command = strings.TrimSpace(rest[:i])
		j.Comment = strings.TrimSpace(rest[i+len(commentSep):])
	}
	return j, j.Command != ""
}

// splitFields returns the first n whitespace-separated fields of s and the
// remainder with its inner spacing intact.
func splitFields(s string, n int) ([]string, string) {
	var head []string
	for len(head) < n {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			break
		}
		end := strings.IndexAny(s, " \t")
		if end < 0 {
			head = append(head, s)
			s = ""
			break
		}
		head = append(head, s[:end])
		s = s[end:]
	}
	return head, strings.TrimSpace(s)
}

// Jobs returns the jobs in table order.
func (t *Table) Jobs() []*Job {
	jobs := make([]*Job, 0, len(t.entries))
	for _, e := range t.entries {
		if e.job != nil {
			jobs = append(jobs, e.job)
		}
	}
	return jobs
}

// Len returns the number of jobs.
func (t *Table) Len() int {
	n := 0
	for _, e := range t.entries {
		if e.job != nil {
			n++
		}
	}
	return n
}

// Contains reports whether j belongs to t.
func (t *Table) Contains(j *Job) bool {
	for _, e := range t.entries {
		if e.job == j {
			return true
		}
	}
	return false
}

// Append adds j at the end of the table.
func (t *Table) Append(j *Job) {
	t.entries = append(t.entries, entry{job: j})
}

// Remove deletes j, reporting whether it was present.
func (t *Table) Remove(j *Job) bool {
	for i, e := range t.entries {
		if e.job == j {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// FindCommand returns the jobs whose command satisfies match, in table order.
func (t *Table) FindCommand(match func(string) bool) []*Job {
	var out []*Job
	for _, j := range t.Jobs() {
		if match(j.Command) {
			out = append(out, j)
		}
	}
	return out
}

// FindComment returns the jobs whose comment satisfies match, in table
// order. Jobs without a comment never match.
func (t *Table) FindComment(match func(string) bool) []*Job {
	var out []*Job
	for _, j := range t.Jobs() {
		if j.Comment != "" && match(j.Comment) {
			out = append(out, j)
		}
	}
	return out
}

// String encodes the table as crontab text with a trailing newline.
func (t *Table) String() string {
	if len(t.entries) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range t.entries {
		if e.job != nil {
			b.WriteString(e.job.Line())
		} else {
			b.WriteString(e.raw)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
