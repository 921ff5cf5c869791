// Package jobindex numbers jobs for operator selection. Each listing (active
// jobs, inactive jobs, a search result) is its own index space numbered from
// 1 in table order, and is only meaningful until the table next changes.
package jobindex

import (
	"regexp"
	"strings"

	"github.com/flemzord/cronpad/internal/crontab"
)

// Entry pairs a position with the job it selects.
type Entry struct {
	Position int
	Job      *crontab.Job
}

// Index is an ordered position-to-job mapping. Revision records the table
// revision it was built from so holders can detect that it went stale.
type Index struct {
	Revision uint64
	entries  []Entry
}

func build(rev uint64, jobs []*crontab.Job) Index {
	ix := Index{Revision: rev, entries: make([]Entry, len(jobs))}
	for i, j := range jobs {
		ix.entries[i] = Entry{Position: i + 1, Job: j}
	}
	return ix
}

// Active numbers the enabled jobs of t.
func Active(t *crontab.Table, rev uint64) Index {
	return filter(t, rev, true)
}

// Inactive numbers the disabled jobs of t.
func Inactive(t *crontab.Table, rev uint64) Index {
	return filter(t, rev, false)
}

func filter(t *crontab.Table, rev uint64, enabled bool) Index {
	var jobs []*crontab.Job
	for _, j := range t.Jobs() {
		if j.Enabled == enabled {
			jobs = append(jobs, j)
		}
	}
	return build(rev, jobs)
}

// Search numbers the jobs whose command or comment contains term. Command
// matches come first in table order, followed by comment-only matches.
func Search(t *crontab.Table, rev uint64, term string) Index {
	return SearchFunc(t, rev, func(s string) bool { return strings.Contains(s, term) })
}

// SearchPattern is Search with a regular expression.
func SearchPattern(t *crontab.Table, rev uint64, re *regexp.Regexp) Index {
	return SearchFunc(t, rev, re.MatchString)
}

// SearchFunc unions command matches and comment matches of match, keeping
// each job at its first position.
func SearchFunc(t *crontab.Table, rev uint64, match func(string) bool) Index {
	byCommand := t.FindCommand(match)
	seen := make(map[*crontab.Job]struct{}, len(byCommand))
	jobs := make([]*crontab.Job, 0, len(byCommand))
	for _, j := range byCommand {
		seen[j] = struct{}{}
		jobs = append(jobs, j)
	}
	for _, j := range t.FindComment(match) {
		if _, dup := seen[j]; dup {
			continue
		}
		seen[j] = struct{}{}
		jobs = append(jobs, j)
	}
	return build(rev, jobs)
}

// Resolve returns the job at position, or false when there is none.
func (ix Index) Resolve(position int) (*crontab.Job, bool) {
	if position < 1 || position > len(ix.entries) {
		return nil, false
	}
	return ix.entries[position-1].Job, true
}

// Len returns the number of entries.
func (ix Index) Len() int { return len(ix.entries) }

// Entries returns the entries in position order.
func (ix Index) Entries() []Entry {
	out := make([]Entry, len(ix.entries))
	copy(out, ix.entries)
	return out
}
