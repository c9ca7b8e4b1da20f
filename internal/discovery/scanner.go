package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner enumerates files under configured directories matching configured
// glob patterns.
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip.
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan walks each dir under root and collects files whose base name matches
// one of the globs. A directory that does not exist is skipped, not an
// error: not every project uses every convention. Results are deduplicated
// and sorted so the overall scan order is deterministic.
func (s *Scanner) Scan(root string, dirs []string, globs []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, dir := range dirs {
		base := filepath.Clean(filepath.Join(root, dir))
		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			continue
		}

		err = filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				// Skip hidden directories (starting with .)
				if strings.HasPrefix(name, ".") && name != "." && name != ".." {
					return filepath.SkipDir
				}
				if s.skipDirs[name] {
					return filepath.SkipDir
				}
				return nil
			}
			if matchAny(globs, d.Name()) && !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func matchAny(globs []string, name string) bool {
	for _, g := range globs {
		if ok, err := filepath.Match(g, name); err == nil && ok {
			return true
		}
	}
	return false
}
