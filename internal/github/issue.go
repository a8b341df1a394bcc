package github

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Issues struct {
	Items []*Issue `yaml:"items"`
}

// Issue carries the fields we care about from GitHub's REST issues endpoint.
type Issue struct {
	Number int    `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`
	// Body may be null in the API response; an absent body decodes to "".
	Body      string  `json:"body" yaml:"body,omitempty"`
	State     string  `json:"state" yaml:"state"`
	Labels    []Label `json:"labels" yaml:"labels,omitempty"`
	HTMLURL   string  `json:"html_url" yaml:"html_url"`
	CreatedAt string  `json:"created_at" yaml:"created_at"`
	User      struct {
		Login string `json:"login" yaml:"login,omitempty"`
	} `json:"user" yaml:"user,omitempty"`
	// The issues endpoint also returns pull requests; they carry this key.
	PullRequest map[string]any `json:"pull_request" yaml:"-"`
}

type Label struct {
	Name string `json:"name" yaml:"name"`
}

// LabelNames returns the issue's label names preserving API order.
func (i *Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, label := range i.Labels {
		names = append(names, label.Name)
	}
	return names
}

// IsPullRequest reports whether the record is a pull request rather than an issue.
func (i *Issue) IsPullRequest() bool {
	return len(i.PullRequest) > 0
}

// CreatedTime parses the created_at timestamp. The zero time is returned for
// missing or malformed values.
func (i *Issue) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339, i.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (v *Issues) Len() int {
	return len(v.Items)
}

func (v *Issues) FindByNumber(number int) *Issue {
	for _, issue := range v.Items {
		if issue.Number == number {
			return issue
		}
	}
	return nil
}

// Exclude removes issues with the given numbers, preserving the order of the
// remaining items.
func (v *Issues) Exclude(numbers []int) []int {
	drop := make(map[int]bool, len(numbers))
	for _, number := range numbers {
		drop[number] = true
	}

	var excluded []int
	kept := v.Items[:0]
	for _, issue := range v.Items {
		if drop[issue.Number] {
			excluded = append(excluded, issue.Number)
			continue
		}
		kept = append(kept, issue)
	}
	v.Items = kept

	return excluded
}

// ExcludePullRequests removes pull requests from the list, preserving order.
func (v *Issues) ExcludePullRequests() []int {
	var excluded []int
	kept := v.Items[:0]
	for _, issue := range v.Items {
		if issue.IsPullRequest() {
			excluded = append(excluded, issue.Number)
			continue
		}
		kept = append(kept, issue)
	}
	v.Items = kept

	return excluded
}

// ExcludeOlderThan removes issues created before the given time, preserving order.
func (v *Issues) ExcludeOlderThan(cutoff time.Time) []int {
	var excluded []int
	kept := v.Items[:0]
	for _, issue := range v.Items {
		created := issue.CreatedTime()
		if !created.IsZero() && created.Before(cutoff) {
			excluded = append(excluded, issue.Number)
			continue
		}
		kept = append(kept, issue)
	}
	v.Items = kept

	return excluded
}

// DumpToTmpFile writes the issue list to a temporary YAML file and returns
// its name.
func (v *Issues) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "issues_*.yaml")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := yaml.NewEncoder(file)
	defer enc.Close()
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Summary returns a short one-line description used by interactive prompts.
func (i *Issue) Summary() string {
	return fmt.Sprintf("#%d %s / %s", i.Number, i.Title, i.HTMLURL)
}
