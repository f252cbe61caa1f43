package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("var x = 1;\n"), 0o644))
}

func TestScanFindsJavaScriptFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"))
	writeFile(t, filepath.Join(dir, "b.mjs"))
	writeFile(t, filepath.Join(dir, "sub", "c.cjs"))
	writeFile(t, filepath.Join(dir, "readme.txt"))

	s := NewScanner(nil)
	files, err := s.ScanPaths([]string{dir})
	require.NoError(t, err)
	assert.Len(t, files, 3)
	for _, f := range files {
		assert.NotEqual(t, ".txt", filepath.Ext(f))
	}
}

func TestScanExcludesDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.js"))
	writeFile(t, filepath.Join(dir, "node_modules", "dep.js"))

	s := NewScanner([]string{"node_modules"})
	files, err := s.ScanPaths([]string{dir})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], "app.js"))
}

func TestScanSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.js")
	writeFile(t, path)

	s := NewScanner(nil)
	files, err := s.ScanPath(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestScanMissingPath(t *testing.T) {
	s := NewScanner(nil)
	_, err := s.ScanPath(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestScanDeduplicatesPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"))

	s := NewScanner(nil)
	files, err := s.ScanPaths([]string{dir, dir})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
