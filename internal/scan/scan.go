// Package scan discovers the candidate files for a run. Discovery is
// pattern-based: each include pattern is globbed against the root, matches
// are deduplicated, then ignore rules and the tool's own output artifacts are
// filtered out.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrRootNotFound is returned when the scan root does not exist or is not a
// directory.
var ErrRootNotFound = errors.New("scan: root directory not found")

// IgnoreFileName is the root-level ignore file combined with configured
// exclude patterns. Absence means "no additional rules".
const IgnoreFileName = ".gitignore"

// FileRef identifies one discovered file. RelPath always uses forward
// slashes, regardless of host platform.
type FileRef struct {
	AbsPath string
	RelPath string
}

// Options configures discovery.
type Options struct {
	// IncludePatterns are gitignore-style globs ("src/**/*.ts"). Empty means
	// match everything.
	IncludePatterns []string
	// ExcludePatterns are combined with the root ignore file's rules.
	ExcludePatterns []string
	// OutputArtifacts are base names this tool writes itself (generated
	// documents, the cache file); they are always excluded so a second run
	// never re-analyzes its own output.
	OutputArtifacts []string
}

// Discover returns the deduplicated, lexicographically sorted list of files
// under root that match the include patterns and survive the ignore rules.
func Discover(root string, opts Options) ([]FileRef, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	patterns := opts.IncludePatterns
	if len(patterns) == 0 {
		patterns = []string{"**/*"}
	}

	fsys := os.DirFS(absRoot)
	seen := map[string]struct{}{}
	for _, pat := range patterns {
		matches, err := doublestar.Glob(fsys, pat)
		if err != nil {
			return nil, fmt.Errorf("scan: bad include pattern %q: %w", pat, err)
		}
		for _, m := range matches {
			if fi, err := fs.Stat(fsys, m); err != nil || fi.IsDir() {
				continue
			}
			seen[path.Clean(m)] = struct{}{}
		}
	}

	matcher, err := loadIgnoreRules(absRoot, opts.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	artifacts := map[string]struct{}{}
	for _, name := range opts.OutputArtifacts {
		artifacts[name] = struct{}{}
	}

	refs := make([]FileRef, 0, len(seen))
	for rel := range seen {
		if _, own := artifacts[path.Base(rel)]; own {
			continue
		}
		if matcher.MatchesPath(rel) {
			continue
		}
		refs = append(refs, FileRef{
			AbsPath: filepath.Join(absRoot, filepath.FromSlash(rel)),
			RelPath: rel,
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].RelPath < refs[j].RelPath })
	return refs, nil
}
