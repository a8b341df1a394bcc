package filtering

import (
	"context"
	"fmt"

	"github.com/gsocbuddy/gsoc-buddy/internal/github"
	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to issues before
// analysis. Filters are constructed only when their configuration is present,
// so every filter in a pipeline is active.
type Filter interface {
	Name() string
	Apply(ctx context.Context, issues *github.Issues) (*github.Issues, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially, returning the resulting
// issue list.
func Run(ctx context.Context, logger *zap.Logger, steps []Filter, issues *github.Issues) (*github.Issues, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, step := range steps {
		next, info, err := step.Apply(ctx, issues)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		issues = next
	}

	return issues, nil
}
