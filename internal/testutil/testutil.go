package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempBook creates a temporary song book holding files, keyed by path
// relative to the book root.
func TempBook(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		WriteFile(t, root, path, content)
	}
	return root
}

// WriteFile writes content to a file in the test directory
func WriteFile(t *testing.T, dir, path, content string) {
	t.Helper()
	fullPath := filepath.Join(dir, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
}

// ReadFile reads content from a test file
func ReadFile(t *testing.T, dir, path string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, path))
	require.NoError(t, err)
	return string(content)
}

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	spaceAtTag = regexp.MustCompile(`>\s+<`)
)

// NormalizeHTML normalizes HTML for comparison (whitespace between tags)
func NormalizeHTML(html string) string {
	html = spaceRun.ReplaceAllString(html, " ")
	html = spaceAtTag.ReplaceAllString(html, "><")
	return strings.TrimSpace(html)
}

// FileExists checks if a file exists
func FileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}
