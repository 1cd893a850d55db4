// Package ingest discovers source files under a root directory and turns
// them into entity records for the graph. Discovery honors glob include
// and exclude patterns plus the root's .gitignore.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/hargabyte/scout/internal/extract"
)

// DefaultMaxFileSize is the per-file size cap (1MB). Larger files are
// skipped: they are almost always generated or vendored and would bloat
// the graph's stored content.
const DefaultMaxFileSize int64 = 1 << 20

// defaultExcludedDirs are directory names never descended into.
var defaultExcludedDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"vendor":       {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
	"dist":         {},
	"build":        {},
	"target":       {},
	".next":        {},
	".cache":       {},
	".idea":        {},
	".vscode":      {},
}

var (
	// ErrRootEmpty indicates the root path was not specified.
	ErrRootEmpty = errors.New("root path cannot be empty")

	// ErrRootNotDir indicates the root path is not a directory.
	ErrRootNotDir = errors.New("root path is not a directory")
)

// Options configures a scan.
type Options struct {
	// Include holds glob patterns matched against the slash-separated
	// path relative to the root. Empty means every supported file.
	Include []string

	// Exclude holds glob patterns for files to skip.
	Exclude []string

	// MaxFileSize caps the size of files read. Zero means
	// DefaultMaxFileSize.
	MaxFileSize int64

	// SkipAutoExclude disables marker-file detection of dependency
	// directories (virtualenvs, nested build trees).
	SkipAutoExclude bool
}

// Scanner walks a directory tree and extracts entity records from the
// files that match.
type Scanner struct {
	root         string
	include      []glob.Glob
	exclude      []glob.Glob
	maxSize      int64
	ignorer      *ignore.GitIgnore
	autoExcluded map[string]string
}

// NewScanner validates the root and compiles the configured patterns.
func NewScanner(root string, opts Options) (*Scanner, error) {
	if root == "" {
		return nil, ErrRootEmpty
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDir, root)
	}

	include, err := compileGlobs(opts.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.Exclude)
	if err != nil {
		return nil, err
	}

	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	s := &Scanner{
		root:    root,
		include: include,
		exclude: exclude,
		maxSize: maxSize,
	}

	// A missing or unreadable .gitignore just means nothing is ignored.
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		s.ignorer = gi
	}

	if !opts.SkipAutoExclude {
		s.autoExcluded = detectAutoExcludes(root)
	}

	return s, nil
}

// AutoExcluded returns the directories skipped by marker-file detection,
// mapped to the detection reason.
func (s *Scanner) AutoExcluded() map[string]string {
	return s.autoExcluded
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		matchers = append(matchers, matcher)
	}
	return matchers, nil
}

// Scan walks the root and returns one record per matching file, in walk
// order. Files of unsupported languages are skipped unless an include
// pattern names them explicitly. Unreadable files are skipped, not fatal.
func (s *Scanner) Scan(ctx context.Context) ([]*extract.FileRecord, error) {
	var records []*extract.FileRecord

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == s.root {
				return nil
			}
			if _, excluded := defaultExcludedDirs[d.Name()]; excluded {
				return filepath.SkipDir
			}
			if _, excluded := s.autoExcluded[rel]; excluded {
				return filepath.SkipDir
			}
			if s.ignorer != nil && s.ignorer.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.wants(rel) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil || info.Size() > s.maxSize {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}

		rec, _ := extract.File(rel, string(content))
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// wants reports whether a relative file path passes the ignore, exclude,
// include, and language filters.
func (s *Scanner) wants(rel string) bool {
	if s.ignorer != nil && s.ignorer.MatchesPath(rel) {
		return false
	}
	for _, matcher := range s.exclude {
		if matcher.Match(rel) {
			return false
		}
	}
	if len(s.include) > 0 {
		for _, matcher := range s.include {
			if matcher.Match(rel) {
				return true
			}
		}
		return false
	}
	return extract.DetectLanguage(rel) != ""
}
