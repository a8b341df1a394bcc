package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  s3cret \n"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	got, err := Load(Source{Name: "gemini api key", File: path, Value: "ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "s3cret" {
		t.Fatalf("expected trimmed secret, got %q", got)
	}
}

func TestLoadEmptyFileFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	if _, err := Load(Source{Name: "token", File: path}); err == nil {
		t.Fatal("expected error for empty secret file")
	}
}

func TestLoadFromValue(t *testing.T) {
	t.Parallel()

	got, err := Load(Source{Value: " inline "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "inline" {
		t.Fatalf("expected %q, got %q", "inline", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GSOC_BUDDY_TEST_SECRET", "from-env")

	got, err := Load(Source{Name: "github token", Env: "GSOC_BUDDY_TEST_SECRET"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "from-env" {
		t.Fatalf("expected %q, got %q", "from-env", got)
	}
}

func TestLoadUnconfigured(t *testing.T) {
	t.Parallel()

	if _, err := Load(Source{Name: "github token"}); err == nil {
		t.Fatal("expected error when nothing is configured")
	}
}
