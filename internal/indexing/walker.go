// Package indexing handles file discovery and watch-mode regeneration for
// the tag pipeline.
package indexing

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
)

// Expand resolves command-line arguments into the list of files to index.
// Without recurse the arguments pass through untouched, in order, so the
// caller can report per-argument problems itself. With recurse, directory
// arguments are walked and filtered through the include/exclude globs; the
// result is sorted for deterministic output.
func Expand(args []string, recurse bool, include, exclude []string) ([]string, error) {
	if !recurse {
		return args, nil
	}

	var files []string
	seen := make(map[string]bool)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			// Same taxonomy as an unreadable file without recursion:
			// warn and move to the next argument.
			log.Warn().Err(err).Str("path", arg).Msg("skipping unreadable argument")
			continue
		}
		if !info.IsDir() {
			if !seen[arg] {
				seen[arg] = true
				files = append(files, arg)
			}
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
				return nil
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(arg, path)
			if err != nil {
				rel = path
			}
			if !matchesAny(include, filepath.ToSlash(rel)) {
				return nil
			}
			if matchesAny(exclude, filepath.ToSlash(rel)) {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
