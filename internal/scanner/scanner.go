package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DefaultMaxFileSize is the largest file the scanner will hand to the
// analyzer. Bundled or minified artifacts past this size are skipped.
const DefaultMaxFileSize = 10 * 1024 * 1024

// Scanner recursively finds JavaScript files in directories
type Scanner struct {
	Excludes    []string
	MaxFileSize int64
}

// NewScanner creates a new file scanner with exclusion patterns
func NewScanner(excludes []string) *Scanner {
	return &Scanner{Excludes: excludes, MaxFileSize: DefaultMaxFileSize}
}

// ScanPath scans a file or directory for JavaScript files
func (s *Scanner) ScanPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	if !info.IsDir() {
		if s.isJSFile(path) {
			return []string{path}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files/dirs with errors
		}

		if d.IsDir() {
			if s.shouldExclude(filePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isJSFile(filePath) && !s.shouldExclude(filePath) && !s.tooLarge(d) {
			files = append(files, filePath)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", path)
	}

	return files, nil
}

// ScanPaths scans multiple paths for JavaScript files
func (s *Scanner) ScanPaths(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}

		for _, f := range files {
			absPath, _ := filepath.Abs(f)
			if !seen[absPath] {
				seen[absPath] = true
				allFiles = append(allFiles, absPath)
			}
		}
	}

	return allFiles, nil
}

func (s *Scanner) tooLarge(d os.DirEntry) bool {
	if s.MaxFileSize <= 0 {
		return false
	}
	info, err := d.Info()
	if err != nil {
		return false
	}
	return info.Size() > s.MaxFileSize
}

func (s *Scanner) isJSFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".js" || ext == ".mjs" || ext == ".cjs"
}

func (s *Scanner) shouldExclude(path string) bool {
	for _, exclude := range s.Excludes {
		// Match against directory name or path component
		base := filepath.Base(path)
		if base == exclude {
			return true
		}
		if strings.Contains(path, string(filepath.Separator)+exclude+string(filepath.Separator)) {
			return true
		}
		if strings.HasSuffix(path, string(filepath.Separator)+exclude) {
			return true
		}
	}
	return false
}
