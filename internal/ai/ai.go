package ai

import "context"

// Generator produces a textual completion for a prompt. Implementations wrap
// a concrete provider SDK and translate its failures into *ProviderError.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}
