package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "index.html")

	require.NoError(t, WriteFileAtomic(path, []byte("first")))
	require.NoError(t, WriteFileAtomic(path, []byte("second")))

	got, err := ReadToString(path)
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteFileAtomicFailsOnDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0o755))

	assert.Error(t, WriteFileAtomic(target, []byte("x")))
	assert.True(t, DirExists(target))
}

func TestWriteFileAndExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b.txt")

	require.NoError(t, WriteFile(path, []byte("B")))
	assert.True(t, FileExists(path))
	assert.False(t, DirExists(path))
	assert.True(t, DirExists(filepath.Dir(path)))

	_, err := ReadToString(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestHumanBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, HumanBytes(c.in), "input=%d", c.in)
	}
}
