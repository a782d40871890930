package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"codescribe/internal/analyze"
	"codescribe/internal/cachefile"
	"codescribe/internal/config"
	"codescribe/internal/doctree"
	"codescribe/internal/llm"
	"codescribe/internal/render"
	"codescribe/internal/scan"
)

func main() {
	cfg := config.Load()

	root := flag.String("root", "", "path to the source tree to document")
	out := flag.String("out", "docs", "output directory for generated documents")
	model := flag.String("model", cfg.Model, "summarization model id")
	concurrency := flag.Int("concurrency", 4, "max simultaneous service calls")
	offline := flag.Bool("offline", false, "use the offline fake summarizer")
	include := flag.String("include", "", "comma-separated include patterns (overrides defaults)")
	exclude := flag.String("exclude", "", "comma-separated extra exclude patterns")
	flag.Parse()

	cfg.Root = *root
	cfg.OutDir = *out
	cfg.Model = *model
	cfg.Concurrency = *concurrency
	cfg.Offline = *offline
	if *include != "" {
		cfg.IncludePatterns = splitList(*include)
	}
	cfg.ExcludePatterns = append(cfg.ExcludePatterns, splitList(*exclude)...)

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "codescribe"})

	files, err := scan.Discover(cfg.Root, scan.Options{
		IncludePatterns: cfg.IncludePatterns,
		ExcludePatterns: cfg.ExcludePatterns,
		OutputArtifacts: render.OutputArtifacts(config.CacheFileName),
	})
	if err != nil {
		logger.Fatal("discovery failed", "err", err)
	}
	logger.Info("discovered files", "count", len(files))

	cachePath := filepath.Join(cfg.OutDir, config.CacheFileName)
	store := cachefile.Load(cachePath)
	rels := make([]string, len(files))
	for i, f := range files {
		rels[i] = f.RelPath
	}
	if removed := store.Prune(rels); len(removed) > 0 {
		logger.Info("pruned stale cache entries", "count", len(removed))
	}

	var svc llm.Summarizer
	if cfg.Offline {
		svc = llm.NewFakeSummarizer()
	} else {
		svc, err = llm.NewGeminiSummarizer(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			logger.Fatal("summarizer init failed", "err", err)
		}
	}
	defer svc.Close()

	analyzer := analyze.New(store, svc, analyze.Options{
		Concurrency: cfg.Concurrency,
		OnProgress: func(done, total int) {
			logger.Info("progress", "done", done, "total", total)
		},
	})

	results, stats, err := analyzer.AnalyzeAll(ctx, files)
	if err != nil {
		// The batch is fail-fast: the error names the file that sank it, and
		// the cache file keeps only entries saved by the last clean run.
		logger.Fatal("analysis aborted", "err", err)
	}

	tree := doctree.Build(results)
	if err := render.WriteAll(cfg.OutDir, tree, stats); err != nil {
		logger.Fatal("writing documents failed", "err", err)
	}
	if err := store.Save(cachePath); err != nil {
		logger.Fatal("saving cache failed", "err", err)
	}

	logger.Info("done",
		"analyzed", stats.AnalyzedCount,
		"cached", stats.CachedCount,
		"skipped", stats.SkippedCount,
		"cost", stats.EstimatedCost(),
	)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
