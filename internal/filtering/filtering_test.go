package filtering

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/gsocbuddy/gsoc-buddy/internal/github"
	"go.uber.org/zap"
)

func testIssues() *github.Issues {
	return &github.Issues{Items: []*github.Issue{
		{Number: 1, Title: "fix typo", CreatedAt: "2025-08-01T00:00:00Z"},
		{Number: 2, Title: "old bug", CreatedAt: "2023-01-01T00:00:00Z"},
		{Number: 3, Title: "a pull request", PullRequest: map[string]any{"url": "x"}, CreatedAt: "2025-08-01T00:00:00Z"},
	}}
}

func numbers(issues *github.Issues) []int {
	var out []int
	for _, issue := range issues.Items {
		out = append(out, issue.Number)
	}
	return out
}

func TestRunAppliesFiltersInOrder(t *testing.T) {
	t.Parallel()

	stale := &staleFilter{
		maxAge: 365 * 24 * time.Hour,
		now:    func() time.Time { return time.Date(2025, 8, 26, 0, 0, 0, 0, time.UTC) },
	}
	steps := []Filter{NewPullRequests(), stale}

	filtered, err := Run(context.Background(), zap.NewNop(), steps, testIssues())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(numbers(filtered), []int{1}) {
		t.Fatalf("unexpected issues left: %v", numbers(filtered))
	}
}

func TestPullRequestFilter(t *testing.T) {
	t.Parallel()

	issues, step, err := NewPullRequests().Apply(context.Background(), testIssues())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step.Dropped != 1 || step.Left != 2 {
		t.Fatalf("unexpected step: %+v", step)
	}

	if issues.FindByNumber(3) != nil {
		t.Fatal("expected pull request to be dropped")
	}
}

func TestLabelsFilter(t *testing.T) {
	t.Parallel()

	issues := &github.Issues{Items: []*github.Issue{
		{Number: 1, Labels: []github.Label{{Name: "Good First Issue"}}},
		{Number: 2},
	}}

	filtered, step, err := NewLabels([]string{"good first issue"}).Apply(context.Background(), issues)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step.Dropped != 1 {
		t.Fatalf("unexpected step: %+v", step)
	}

	if !reflect.DeepEqual(numbers(filtered), []int{1}) {
		t.Fatalf("unexpected issues left: %v", numbers(filtered))
	}
}

func TestLabelsFilterNoRequirements(t *testing.T) {
	t.Parallel()

	issues := testIssues()
	filtered, step, err := NewLabels(nil).Apply(context.Background(), issues)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step.Dropped != 0 || filtered.Len() != issues.Len() {
		t.Fatalf("expected passthrough, got %+v", step)
	}
}

func TestExcludeFileFilter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exclude.yaml")
	record := &github.ExcludedIssues{Items: []*github.ExcludedIssue{{Number: 1}}}
	if err := record.ToFile(path); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	filtered, step, err := NewExcludeFile(path).Apply(context.Background(), testIssues())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step.Dropped != 1 {
		t.Fatalf("unexpected step: %+v", step)
	}

	if filtered.FindByNumber(1) != nil {
		t.Fatal("expected issue 1 to be dropped")
	}
}

func TestExcludeFileFilterEmptyPath(t *testing.T) {
	t.Parallel()

	filtered, step, err := NewExcludeFile("").Apply(context.Background(), testIssues())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step.Dropped != 0 || filtered.Len() != 3 {
		t.Fatalf("expected passthrough, got %+v", step)
	}
}

func TestExcludeFileFilterMissingFile(t *testing.T) {
	t.Parallel()

	issues := testIssues()
	initial := issues.Len()

	filtered, step, err := NewExcludeFile("/does/not/exist.yaml").Apply(context.Background(), issues)
	if err != nil {
		t.Fatalf("unexpected error for missing exclude file: %v", err)
	}

	if step.Dropped != 0 || filtered.Len() != initial {
		t.Fatalf("expected missing exclude file to drop nothing, got step %+v", step)
	}
}
