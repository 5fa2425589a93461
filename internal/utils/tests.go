package util

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateTempFile writes content to a fresh file under t.TempDir and returns its path.
func CreateTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
