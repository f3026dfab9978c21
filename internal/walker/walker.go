package walker

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/phyten/phrep/internal/detect"
)

// typicalExcludes are directories that are almost never worth
// searching in a PHP project.
var typicalExcludes = []string{
	".git",
	".svn",
	".idea",
	"vendor",
	"node_modules",
	"cache",
}

// Options control one traversal.
type Options struct {
	// Root is the directory to search. Empty means the current
	// directory.
	Root string
	// NameFilter keeps only files whose base name contains the
	// substring. Empty keeps everything.
	NameFilter string
	// Includes are doublestar globs (matched against the slashed
	// root-relative path) that admit non-PHP files into the walk.
	Includes []string
	// Excludes are doublestar globs that drop files and prune
	// directories.
	Excludes []string
	// ExcludeTypical additionally prunes VCS/dependency directories.
	ExcludeTypical bool
}

// Walk returns the root-relative slashed paths of every candidate
// file, in deterministic directory-traversal order. Unreadable
// directories are skipped, not fatal.
func Walk(opts Options) ([]string, error) {
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("search dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("search dir %s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if opts.ExcludeTypical && isTypical(d.Name()) {
				return filepath.SkipDir
			}
			if matchesAny(opts.Excludes, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matchesAny(opts.Excludes, rel) {
			return nil
		}
		if opts.NameFilter != "" && !strings.Contains(d.Name(), opts.NameFilter) {
			return nil
		}
		if !candidate(path, rel, opts.Includes) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func candidate(path, rel string, includes []string) bool {
	if detect.PathIsPHP(rel) {
		return true
	}
	if matchesAny(includes, rel) {
		return true
	}
	// Extensionless files get a cheap content sniff for a php shebang
	// or open tag.
	if filepath.Ext(rel) == "" {
		return sniffFile(path)
	}
	return false
}

func sniffFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, 256)
	n, err := f.Read(buf)
	if n == 0 && err != nil && err != io.EOF {
		return false
	}
	return detect.Sniff(buf[:n])
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
		// Plain directory names act as path-component excludes.
		if !strings.ContainsAny(p, "*?[{") && hasComponent(rel, p) {
			return true
		}
	}
	return false
}

func hasComponent(rel, name string) bool {
	for _, part := range strings.Split(rel, "/") {
		if part == name {
			return true
		}
	}
	return false
}

func isTypical(name string) bool {
	for _, t := range typicalExcludes {
		if name == t {
			return true
		}
	}
	return false
}
