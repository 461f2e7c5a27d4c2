package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path for a test, creating parent directories.
// It returns the path for call-site convenience.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
