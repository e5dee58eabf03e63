package scan

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/inoxlang/islands/internal/afs"
	"github.com/inoxlang/islands/internal/symbols"
	"github.com/maruel/natural"
)

const (
	DEFAULT_MAX_SCANNED_FILE_SIZE = symbols.DEFAULT_MAX_SOURCE_FILE_SIZE
)

type Configuration struct {
	Patterns    []string //doublestar patterns relative to the project root (src/*.{tsx,jsx}, src/**/*.tsx)
	Exclude     []string //patterns of excluded files, node_modules is always excluded
	MaxFileSize int64    //defaults to DEFAULT_MAX_SCANNED_FILE_SIZE, larger files are ignored
}

// ScanSources returns the TSX/JSX/TS/JS files matching the configured patterns in natural order.
func ScanSources(ctx context.Context, fls afs.Filesystem, config Configuration) ([]string, error) {
	if len(config.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns")
	}

	maxFileSize := config.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DEFAULT_MAX_SCANNED_FILE_SIZE
	}

	fsys := afs.MakeStdlibFsAdapter(fls)
	seen := map[string]struct{}{}

	for _, pattern := range config.Patterns {
		pattern = NormalizePattern(pattern)
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern: %s", pattern)
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", pattern, err)
		}

		for _, match := range matches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			if !symbols.IsSourceFile(match) || isExcluded(match, config.Exclude) {
				continue
			}

			//Ignore large files.
			stat, err := fls.Stat(match)
			if err != nil {
				if os.IsNotExist(err) { //The file may have been deleted by the developer.
					continue
				}
				return nil, err
			}
			if stat.Size() > maxFileSize {
				continue
			}

			seen[match] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for file := range seen {
		files = append(files, file)
	}
	sort.Sort(natural.StringSlice(files))

	return files, nil
}

// NormalizePattern removes the leading ./ or / of a pattern.
func NormalizePattern(pattern string) string {
	pattern = strings.TrimPrefix(pattern, "./")
	return strings.TrimLeft(pattern, "/")
}

func isExcluded(path string, exclude []string) bool {
	if path == "node_modules" || strings.HasPrefix(path, "node_modules/") || strings.Contains(path, "/node_modules/") {
		return true
	}
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(NormalizePattern(pattern), path); ok {
			return true
		}
	}
	return false
}
