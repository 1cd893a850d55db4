package ingest

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// detectAutoExcludes walks root looking for marker files that identify
// dependency or build directories the name-based skip list misses, such
// as a Python virtualenv with a custom name or a nested Rust target
// directory. Only file-existence checks are used, so there are no false
// positives. Returns slash-separated paths relative to root mapped to the
// detection reason.
func detectAutoExcludes(root string) map[string]string {
	found := make(map[string]string)

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if _, skip := defaultExcludedDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			for dir := range found {
				if rel == dir || strings.HasPrefix(rel, dir+"/") {
					return filepath.SkipDir
				}
			}
			return nil
		}

		relDir := filepath.ToSlash(filepath.Dir(rel))

		switch d.Name() {
		case "pyvenv.cfg":
			// The directory containing pyvenv.cfg is a virtualenv,
			// whatever it is named.
			if relDir != "." {
				found[relDir] = "python virtualenv"
			}

		case "Cargo.toml":
			if dir := sibling(root, relDir, "target"); dir != "" {
				found[dir] = "rust build artifacts"
			}

		case "package.json":
			if dir := sibling(root, relDir, "node_modules"); dir != "" {
				found[dir] = "node dependencies"
			}

		case "go.mod":
			dir := sibling(root, relDir, "vendor")
			if dir != "" && fileExists(filepath.Join(root, dir, "modules.txt")) {
				found[dir] = "go vendored dependencies"
			}
		}

		return nil
	})

	return found
}

// sibling returns the relative path of a directory next to relDir, or ""
// when it does not exist.
func sibling(root, relDir, name string) string {
	dir := name
	if relDir != "." {
		dir = relDir + "/" + name
	}
	info, err := os.Stat(filepath.Join(root, dir))
	if err != nil || !info.IsDir() {
		return ""
	}
	return dir
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
