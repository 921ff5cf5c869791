package crontab

import "strings"

// Job is one scheduled task in the table. Comment is empty when the job
// has no annotation.
type Job struct {
	Schedule string
	Command  string
	Comment  string
	Enabled  bool
}

// NewJob returns an enabled job with no schedule set.
func NewJob(command, comment string) *Job {
	return &Job{Command: command, Comment: comment, Enabled: true}
}

// SetSchedule replaces the recurrence with a five-field string or macro.
func (j *Job) SetSchedule(expr string) {
	j.Schedule = strings.TrimSpace(expr)
}

// Line renders the job as a crontab line. Disabled jobs are commented out.
func (j *Job) Line() string {
	var b strings.Builder
	if !j.Enabled {
		b.WriteString("# ")
	}
	b.WriteString(j.Schedule)
	b.WriteByte(' ')
	b.WriteString(j.Command)
	if j.Comment != "" {
		b.WriteString(commentSep)
		b.WriteString(j.Comment)
	}
	return b.String()
}

func (j *Job) String() string { return j.Line() }

// Copy returns a detached copy of j.
func (j *Job) Copy() *Job {
	c := *j
	return &c
}
