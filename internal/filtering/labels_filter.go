package filtering

import (
	"context"
	"strings"

	"github.com/gsocbuddy/gsoc-buddy/internal/github"
)

type labelsFilter struct {
	required []string
}

// NewLabels creates a filter that keeps only issues carrying at least one of
// the required labels. Comparison is case-insensitive; GitHub label casing is
// not consistent across repositories.
func NewLabels(required []string) Filter {
	lowered := make([]string, 0, len(required))
	for _, label := range required {
		if label = strings.ToLower(strings.TrimSpace(label)); label != "" {
			lowered = append(lowered, label)
		}
	}
	return &labelsFilter{required: lowered}
}

func (f *labelsFilter) Name() string { return "labels" }

func (f *labelsFilter) Apply(_ context.Context, issues *github.Issues) (*github.Issues, Step, error) {
	initial := issues.Len()
	if len(f.required) == 0 {
		return issues, Step{Initial: initial, Dropped: 0, Left: issues.Len()}, nil
	}

	var drop []int
	for _, issue := range issues.Items {
		if !f.matches(issue) {
			drop = append(drop, issue.Number)
		}
	}
	excluded := issues.Exclude(drop)

	return issues, Step{Initial: initial, Dropped: len(excluded), Left: issues.Len()}, nil
}

func (f *labelsFilter) matches(issue *github.Issue) bool {
	for _, name := range issue.LabelNames() {
		name = strings.ToLower(name)
		for _, required := range f.required {
			if name == required {
				return true
			}
		}
	}
	return false
}
