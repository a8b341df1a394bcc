package gemini

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewGenerator(context.Background(), "  ", "gemini-2.5-flash", 0, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	t.Parallel()

	g := &Generator{logger: zap.NewNop()}
	if _, err := g.GenerateContent(context.Background(), "analyze"); err == nil {
		// client is nil, the guard must trip before any network call
		t.Fatal("expected error for uninitialized generator")
	}

	if _, err := (*Generator)(nil).GenerateContent(context.Background(), "analyze"); err == nil {
		t.Fatal("expected error for nil generator")
	}
}

func TestModel(t *testing.T) {
	t.Parallel()

	g := &Generator{modelName: "gemini-2.5-flash"}
	if got := g.Model(); got != "gemini-2.5-flash" {
		t.Fatalf("unexpected model: %q", got)
	}

	if got := (*Generator)(nil).Model(); got != "" {
		t.Fatalf("expected empty model for nil generator, got %q", got)
	}
}
