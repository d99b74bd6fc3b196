// Package scanner finds QFX statements on disk.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/qfx-rebank/internal/logging"
)

// Extensions are the statement file extensions picked up, compared
// case-insensitively.
var Extensions = []string{".qfx", ".ofx"}

// StatementScanner lists statement files in directories.
type StatementScanner struct {
	logger logging.Logger
	// skipSuffixes excludes files whose names end with any of them.
	skipSuffixes []string
}

// NewStatementScanner creates a scanner that ignores file names ending with
// any of skipSuffixes, typically previous conversion outputs.
func NewStatementScanner(logger logging.Logger, skipSuffixes ...string) *StatementScanner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &StatementScanner{
		logger:       logger.WithField("component", "StatementScanner"),
		skipSuffixes: skipSuffixes,
	}
}

// Scan returns the statement files in dir, sorted. Subdirectories are only
// visited when recursive is set.
func (s *StatementScanner) Scan(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.WithError(err).WithField("path", path).Warn("Error walking path")
			return nil
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if s.matches(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dir, err)
	}

	sort.Strings(files)
	s.logger.Debug("Scanned directory",
		logging.F("path", dir),
		logging.F(logging.FieldCount, len(files)))
	return files, nil
}

func (s *StatementScanner) matches(name string) bool {
	for _, suffix := range s.skipSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
