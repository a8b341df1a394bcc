package filtering

import (
	"context"
	"fmt"
	"os"

	"github.com/gsocbuddy/gsoc-buddy/internal/github"
)

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes issues recorded in the
// exclude file.
func NewExcludeFile(path string) Filter {
	return &excludeFileFilter{
		path: path,
	}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Apply(_ context.Context, issues *github.Issues) (*github.Issues, Step, error) {
	initial := issues.Len()
	if f.path == "" {
		return issues, Step{Initial: initial, Dropped: 0, Left: issues.Len()}, nil
	}

	excluded, err := github.GetExcludedIssuesFromFile(f.path)
	if err != nil {
		// The file appears once the user excludes something.
		if os.IsNotExist(err) {
			return issues, Step{Initial: initial, Dropped: 0, Left: issues.Len()}, nil
		}
		return nil, Step{}, fmt.Errorf("getting excluded issues from file: %w", err)
	}

	removed := issues.Exclude(excluded.Numbers())

	return issues, Step{Initial: initial, Dropped: len(removed), Left: issues.Len()}, nil
}
