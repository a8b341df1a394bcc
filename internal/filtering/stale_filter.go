package filtering

import (
	"context"
	"time"

	"github.com/gsocbuddy/gsoc-buddy/internal/github"
)

type staleFilter struct {
	maxAge time.Duration
	now    func() time.Time
}

// NewStale creates a filter that removes issues created longer ago than
// maxAge. Old untouched issues are usually already taken or abandoned.
func NewStale(maxAge time.Duration) Filter {
	return &staleFilter{maxAge: maxAge, now: time.Now}
}

func (f *staleFilter) Name() string { return "stale" }

func (f *staleFilter) Apply(_ context.Context, issues *github.Issues) (*github.Issues, Step, error) {
	initial := issues.Len()
	if f.maxAge <= 0 {
		return issues, Step{Initial: initial, Dropped: 0, Left: issues.Len()}, nil
	}

	cutoff := f.now().Add(-f.maxAge)
	excluded := issues.ExcludeOlderThan(cutoff)

	return issues, Step{Initial: initial, Dropped: len(excluded), Left: issues.Len()}, nil
}
