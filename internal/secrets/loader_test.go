package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "key")
	if err := os.WriteFile(file, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	t.Setenv("SECRET_TEST_KEY", "from-env")

	secret, err := Load(Source{Name: "api key", File: file, Env: "SECRET_TEST_KEY", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "from-file" {
		t.Fatalf("expected file to win, got %q", secret)
	}

	secret, err = Load(Source{Name: "api key", Env: "SECRET_TEST_KEY", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "from-env" {
		t.Fatalf("expected env to win over inline, got %q", secret)
	}

	secret, err = Load(Source{Name: "api key", Value: " inline "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "inline" {
		t.Fatalf("expected trimmed inline value, got %q", secret)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatalf("expected error for unconfigured secret")
	}

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: empty}); err == nil {
		t.Fatalf("expected error for empty secret file")
	}

	if _, err := Load(Source{Name: "api key", File: filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("expected error for missing secret file")
	}
}

func TestLoadOptional(t *testing.T) {
	secret, err := LoadOptional(Source{Name: "adzuna app id", Env: "SECRET_TEST_UNSET"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "" {
		t.Fatalf("expected empty secret, got %q", secret)
	}

	if _, err := LoadOptional(Source{Name: "adzuna app id", File: "/nonexistent/secret"}); err == nil {
		t.Fatalf("expected error for unreadable explicit file")
	}
}
