// Package analyze drives per-file summarization: hash, cache lookup, and on
// miss a bounded-concurrency call to the summarization service.
package analyze

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"codescribe/internal/cachefile"
	"codescribe/internal/classify"
	"codescribe/internal/llm"
	"codescribe/internal/scan"
)

// FileAnalysis is the per-file result flowing out of AnalyzeAll.
type FileAnalysis struct {
	Ref         scan.FileRef
	Category    classify.Category
	Summary     string
	ContentHash string
	TokenUsage  cachefile.TokenUsage
	FromCache   bool
	Skipped     bool
}

// Options tunes one analyzer instance.
type Options struct {
	// Concurrency bounds simultaneous service calls. Cache hits never consume
	// a slot.
	Concurrency int
	// MaxFileBytes marks larger files as skipped instead of summarizing.
	MaxFileBytes int
	// MaxAvgLineLen marks files with longer average lines as skipped; long
	// average lines almost always mean minified or generated output.
	MaxAvgLineLen int
	// OnProgress, if set, fires once per completed file in completion order
	// (not input order) with the running completed count and the total.
	OnProgress func(done, total int)
}

const (
	defaultConcurrency   = 4
	defaultMaxFileBytes  = 100_000
	defaultMaxAvgLineLen = 400
	memoSize             = 512
)

const skippedSummary = "Skipped: content too large or minified/generated."

// Analyzer coordinates hashing, the cache store, and the service.
type Analyzer struct {
	store *cachefile.Store
	svc   llm.Summarizer
	slots *semaphore.Weighted
	// memo deduplicates identical content within a run: two paths with the
	// same hash cost one service call.
	memo *lru.Cache[string, string]
	opts Options

	mu    sync.Mutex
	stats Stats
}

// New builds an Analyzer over an already-loaded store.
func New(store *cachefile.Store, svc llm.Summarizer, opts Options) *Analyzer {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = defaultMaxFileBytes
	}
	if opts.MaxAvgLineLen <= 0 {
		opts.MaxAvgLineLen = defaultMaxAvgLineLen
	}
	memo, _ := lru.New[string, string](memoSize)
	return &Analyzer{
		store: store,
		svc:   svc,
		slots: semaphore.NewWeighted(int64(opts.Concurrency)),
		memo:  memo,
		opts:  opts,
	}
}

// AnalyzeAll runs one task per file, concurrently up to the configured
// capacity, and returns results in the original input order regardless of
// completion order. A single task failure aborts the whole batch; entries
// already committed to the in-memory store stay committed.
func (a *Analyzer) AnalyzeAll(ctx context.Context, files []scan.FileRef) ([]FileAnalysis, Stats, error) {
	results := make([]FileAnalysis, len(files))

	events := make(chan struct{})
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		done := 0
		for range events {
			done++
			if a.opts.OnProgress != nil {
				a.opts.OnProgress(done, len(files))
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			res, err := a.analyzeOne(gctx, f)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", f.RelPath, err)
			}
			results[i] = res
			select {
			case events <- struct{}{}:
			case <-gctx.Done():
			}
			return nil
		})
	}
	err := g.Wait()
	close(events)
	<-drained
	if err != nil {
		return nil, Stats{}, err
	}
	return results, a.Snapshot(), nil
}

// Snapshot returns the stats accumulated so far.
func (a *Analyzer) Snapshot() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

func (a *Analyzer) analyzeOne(ctx context.Context, ref scan.FileRef) (FileAnalysis, error) {
	// The hash is always recomputed so the result reflects the file as it is
	// on disk right now, not as the cache remembers it.
	raw, err := os.ReadFile(ref.AbsPath)
	if err != nil {
		return FileAnalysis{}, fmt.Errorf("hash: %w", err)
	}
	content := string(raw)
	hash := cachefile.ComputeHash(raw)

	// Hit path: resolve immediately, no slot. Fully-cached runs finish with
	// effectively unbounded throughput.
	if entry, ok := a.store.Get(ref.RelPath); ok && entry.ContentHash == hash {
		a.bump(func(s *Stats) {
			s.CachedCount++
			s.InputTokens += entry.TokenUsage.Input
			s.OutputTokens += entry.TokenUsage.Output
		})
		return FileAnalysis{
			Ref:         ref,
			Category:    classify.ParseCategory(entry.Category),
			Summary:     entry.Summary,
			ContentHash: hash,
			TokenUsage:  entry.TokenUsage,
			FromCache:   true,
		}, nil
	}

	category := classify.Classify(ref.RelPath, content)

	if err := a.slots.Acquire(ctx, 1); err != nil {
		return FileAnalysis{}, err
	}
	defer a.slots.Release(1)

	if len(content) > a.opts.MaxFileBytes || avgLineLen(content) > a.opts.MaxAvgLineLen {
		entry := cachefile.Entry{
			ContentHash: hash,
			Category:    category.String(),
			Summary:     skippedSummary,
			AnalyzedAt:  time.Now().UTC(),
		}
		a.store.Put(ref.RelPath, entry)
		a.bump(func(s *Stats) { s.SkippedCount++ })
		return FileAnalysis{
			Ref:         ref,
			Category:    category,
			Summary:     entry.Summary,
			ContentHash: hash,
			Skipped:     true,
		}, nil
	}

	text, usage, err := a.summarize(ctx, ref.RelPath, category, content, hash)
	if err != nil {
		return FileAnalysis{}, err
	}

	entry := cachefile.Entry{
		ContentHash: hash,
		Category:    category.String(),
		Summary:     text,
		AnalyzedAt:  time.Now().UTC(),
		TokenUsage:  usage,
	}
	a.store.Put(ref.RelPath, entry)
	a.bump(func(s *Stats) {
		s.AnalyzedCount++
		s.InputTokens += usage.Input
		s.OutputTokens += usage.Output
	})
	return FileAnalysis{
		Ref:         ref,
		Category:    category,
		Summary:     text,
		ContentHash: hash,
		TokenUsage:  usage,
	}, nil
}

func (a *Analyzer) summarize(ctx context.Context, relPath string, category classify.Category, content, hash string) (string, cachefile.TokenUsage, error) {
	if text, ok := a.memo.Get(hash); ok {
		// Identical bytes were summarized earlier in this run; the tokens
		// were charged to that call.
		return text, cachefile.TokenUsage{}, nil
	}
	sum, err := a.svc.Summarize(ctx, llm.Request{
		Path:     relPath,
		Category: category.String(),
		Content:  content,
	})
	if err != nil {
		return "", cachefile.TokenUsage{}, err
	}
	a.memo.Add(hash, sum.Text)
	return sum.Text, cachefile.TokenUsage{Input: sum.InputTokens, Output: sum.OutputTokens}, nil
}

func (a *Analyzer) bump(fn func(*Stats)) {
	a.mu.Lock()
	fn(&a.stats)
	a.mu.Unlock()
}

func avgLineLen(content string) int {
	if content == "" {
		return 0
	}
	lines := strings.Count(content, "\n") + 1
	return len(content) / lines
}
