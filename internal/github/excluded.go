package github

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ExcludedIssues is the on-disk record of issues the user chose to skip.
type ExcludedIssues struct {
	Items []*ExcludedIssue `yaml:"items"`
}

type ExcludedIssue struct {
	Number     int       `yaml:"number"`
	Title      string    `yaml:"title,omitempty"`
	URL        string    `yaml:"url,omitempty"`
	ExcludedAt time.Time `yaml:"excluded_at"`
}

// GetExcludedIssuesFromFile loads the exclude file. An empty file yields an
// empty record.
func GetExcludedIssuesFromFile(path string) (*ExcludedIssues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return &ExcludedIssues{}, nil
	}

	var excluded ExcludedIssues
	if err := yaml.Unmarshal(data, &excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedIssues) Append(s *ExcludedIssues) {
	e.Items = append(e.Items, s.Items...)
}

func (e *ExcludedIssues) Numbers() []int {
	numbers := make([]int, 0, len(e.Items))
	for _, issue := range e.Items {
		numbers = append(numbers, issue.Number)
	}
	return numbers
}

func (e *ExcludedIssues) ToFile(path string) error {
	data, err := yaml.Marshal(e)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// ToExcluded converts the issue list into exclude-file entries.
func (v *Issues) ToExcluded() *ExcludedIssues {
	excluded := &ExcludedIssues{}
	for _, issue := range v.Items {
		excluded.Items = append(excluded.Items, &ExcludedIssue{
			Number:     issue.Number,
			Title:      issue.Title,
			URL:        issue.HTMLURL,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}
