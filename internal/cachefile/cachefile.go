package cachefile

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FormatVersion is bumped whenever the entry layout changes. A stored version
// that differs invalidates the whole file; there is no partial migration.
const FormatVersion = 3

// hashLen is the number of hex characters kept from the sha256 digest.
// A false hit only skips re-analysis of unchanged-looking content, so the
// truncated collision risk is an acceptable trade for cache-file size.
const hashLen = 12

// TokenUsage records the service cost of one analysis.
type TokenUsage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

// Entry is one file's last-known analysis result.
type Entry struct {
	ContentHash string     `json:"contentHash"`
	Category    string     `json:"category"`
	Summary     string     `json:"summary"`
	AnalyzedAt  time.Time  `json:"analyzedAt"`
	TokenUsage  TokenUsage `json:"tokenUsage"`
}

type fileFormat struct {
	FormatVersion int              `json:"formatVersion"`
	Entries       map[string]Entry `json:"entries"`
}

// Store is the persistent mapping from repo-relative path to Entry.
// Put may be called from concurrent analysis tasks; everything else is
// expected to run from the driving goroutine.
type Store struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewStore returns an empty store at the current format version.
func NewStore() *Store {
	return &Store{entries: map[string]Entry{}}
}

// Load reads the cache file at path. Missing, unreadable, or structurally
// invalid data — including a format version mismatch — yields a fresh empty
// store; loading never fails.
func Load(path string) *Store {
	raw, err := os.ReadFile(path)
	if err != nil {
		return NewStore()
	}
	var f fileFormat
	if err := json.Unmarshal(raw, &f); err != nil {
		return NewStore()
	}
	if f.FormatVersion != FormatVersion || f.Entries == nil {
		return NewStore()
	}
	return &Store{entries: f.Entries}
}

// Save serializes the store to path. The file is written to a temp sibling
// and renamed into place so a concurrent or later Load never sees a partial
// file.
func (s *Store) Save(path string) error {
	s.mu.Lock()
	raw, err := json.MarshalIndent(fileFormat{FormatVersion: FormatVersion, Entries: s.entries}, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// ComputeHash digests file content for change detection.
func ComputeHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:hashLen]
}

// Get returns the entry for relPath, if any.
func (s *Store) Get(relPath string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[relPath]
	return e, ok
}

// Put inserts or overwrites the entry for relPath. Safe for concurrent use.
func (s *Store) Put(relPath string, e Entry) {
	s.mu.Lock()
	s.entries[relPath] = e
	s.mu.Unlock()
}

// Len reports the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Valid reports whether relPath has an entry whose stored hash equals
// currentHash. A missing entry is never valid.
func (s *Store) Valid(relPath, currentHash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[relPath]
	return ok && e.ContentHash == currentHash
}

// Prune deletes every entry whose key is absent from currentPaths and returns
// the removed keys, sorted. Entries whose key is present are left untouched
// even if their content changed; re-hashing is the orchestrator's concern.
func (s *Store) Prune(currentPaths []string) []string {
	keep := make(map[string]struct{}, len(currentPaths))
	for _, p := range currentPaths {
		keep[p] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []string
	for k := range s.entries {
		if _, ok := keep[k]; !ok {
			removed = append(removed, k)
			delete(s.entries, k)
		}
	}
	sort.Strings(removed)
	return removed
}
