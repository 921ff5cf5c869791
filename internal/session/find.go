package session

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/flemzord/cronpad/internal/crontab"
	"github.com/flemzord/cronpad/internal/jobindex"
	"github.com/flemzord/cronpad/internal/lifecycle"
)

// findJob asks the operator to pick a job by listing position or by search.
// It returns nil without error when a search finds nothing.
func (s *Session) findJob(ctx context.Context) (*crontab.Job, error) {
	how, err := s.p.Ask(ctx, "1. Select job\n2. Search for job\n> ")
	if err != nil {
		return nil, err
	}
	switch strings.TrimSpace(how) {
	case "1":
		return s.selectJob(ctx)
	case "2":
		return s.searchJob(ctx)
	}
	return nil, lifecycle.ErrInvalidOption
}

func (s *Session) selectJob(ctx context.Context) (*crontab.Job, error) {
	state, err := s.p.Ask(ctx, "Is the job (1) active or (0) inactive?\n> ")
	if err != nil {
		return nil, err
	}
	var ix jobindex.Index
	switch strings.TrimSpace(state) {
	case "1":
		ix = s.m.Active()
	case "0":
		ix = s.m.Inactive()
	default:
		return nil, lifecycle.ErrInvalidOption
	}
	return s.pick(ctx, ix, "Type the number corresponding with the job you want:\n> ")
}

func (s *Session) searchJob(ctx context.Context) (*crontab.Job, error) {
	s.p.Printf("Type the command or comment of the job\n")
	term, err := s.p.Ask(ctx, "Search: ")
	if err != nil {
		return nil, err
	}
	ix, err := s.search(term)
	if err != nil {
		return nil, err
	}

	if ix.Len() == 0 {
		s.p.Printf("No jobs found for query: %q\n\n", term)
		return nil, nil
	}
	s.p.Printf("Search query found %d job(s):\n", ix.Len())
	if ix.Len() == 1 {
		job, err := s.m.Resolve(ix, 1)
		if err != nil {
			return nil, err
		}
		s.p.Printf("1. %s\n", job.Line())
		return job, nil
	}
	s.list(ix, "")
	return s.pick(ctx, ix, "Type the number corresponding with the job you want\n> ")
}

// search treats a term written as /expr/ as a regular expression.
func (s *Session) search(term string) (jobindex.Index, error) {
	if len(term) > 2 && strings.HasPrefix(term, "/") && strings.HasSuffix(term, "/") {
		re, err := regexp.Compile(term[1 : len(term)-1])
		if err != nil {
			return jobindex.Index{}, fmt.Errorf("%w: bad pattern: %w", lifecycle.ErrInvalidOption, err)
		}
		return s.m.SearchPattern(re), nil
	}
	return s.m.Search(term), nil
}

func (s *Session) pick(ctx context.Context, ix jobindex.Index, label string) (*crontab.Job, error) {
	answer, err := s.p.Ask(ctx, label)
	if err != nil {
		return nil, err
	}
	pos, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return nil, lifecycle.ErrInvalidOption
	}
	job, err := s.m.Resolve(ix, pos)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, lifecycle.ErrInvalidOption
	}
	return job, nil
}
