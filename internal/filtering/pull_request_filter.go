package filtering

import (
	"context"

	"github.com/gsocbuddy/gsoc-buddy/internal/github"
)

type pullRequestFilter struct{}

// NewPullRequests creates a filter that removes pull requests. The GitHub
// issues endpoint returns both, and pull requests cannot be analyzed as
// starter issues.
func NewPullRequests() Filter {
	return &pullRequestFilter{}
}

func (f *pullRequestFilter) Name() string { return "pull_requests" }

func (f *pullRequestFilter) Apply(_ context.Context, issues *github.Issues) (*github.Issues, Step, error) {
	initial := issues.Len()
	excluded := issues.ExcludePullRequests()

	return issues, Step{Initial: initial, Dropped: len(excluded), Left: issues.Len()}, nil
}
