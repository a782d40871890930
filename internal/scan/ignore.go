package scan

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// loadIgnoreRules compiles the root ignore file (if present) together with
// the configured exclude patterns into one matcher. File rules come first so
// configured excludes can still negate them, mirroring gitignore's
// last-match-wins ordering.
func loadIgnoreRules(absRoot string, excludes []string) (*gitignore.GitIgnore, error) {
	var lines []string
	raw, err := os.ReadFile(filepath.Join(absRoot, IgnoreFileName))
	if err == nil {
		for _, line := range strings.Split(string(raw), "\n") {
			line = strings.TrimRight(line, "\r")
			if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
				continue
			}
			lines = append(lines, line)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	lines = append(lines, excludes...)
	return gitignore.CompileIgnoreLines(lines...), nil
}
