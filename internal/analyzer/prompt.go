package analyzer

import (
	"strings"

	_ "embed"
)

//go:embed prompt.md
var promptTemplate string

const noLabelsPlaceholder = "none"

// buildPrompt renders the analysis instruction for a single issue. It is a
// pure function: identical inputs always produce the identical prompt.
func buildPrompt(title, description string, labels []string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Title: {{TITLE}}\n\nDescription: {{DESCRIPTION}}\n\nLabels: {{LABELS}}\n\nResponse:"
	}

	labelText := noLabelsPlaceholder
	if joined := joinLabels(labels); joined != "" {
		labelText = joined
	}

	prompt := strings.ReplaceAll(template, "{{TITLE}}", title)
	prompt = strings.ReplaceAll(prompt, "{{DESCRIPTION}}", description)
	prompt = strings.ReplaceAll(prompt, "{{LABELS}}", labelText)
	return prompt
}

func joinLabels(labels []string) string {
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		if label = strings.TrimSpace(label); label != "" {
			parts = append(parts, label)
		}
	}
	return strings.Join(parts, ", ")
}
