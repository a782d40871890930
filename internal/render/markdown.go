// Package render writes the generated documents: one summary per folder with
// content, plus a root navigation document with run statistics. Output names
// are exported so discovery can exclude them.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codescribe/internal/analyze"
	"codescribe/internal/classify"
	"codescribe/internal/doctree"
)

const (
	// FolderDocName is the per-folder document written into OutDir mirrors.
	FolderDocName = "SUMMARY.md"
	// NavDocName is the root navigation document.
	NavDocName = "CODEBASE.md"
)

// OutputArtifacts lists every base name this tool writes, for discovery
// self-exclusion.
func OutputArtifacts(cacheFileName string) []string {
	return []string{FolderDocName, NavDocName, cacheFileName}
}

// WriteAll renders the tree under outDir, mirroring the source folder layout.
func WriteAll(outDir string, tree *doctree.FolderTree, stats analyze.Stats) error {
	folders := tree.FoldersWithContent()
	for _, node := range folders {
		dir := outDir
		if node.Path != doctree.RootPath {
			dir = filepath.Join(outDir, filepath.FromSlash(node.Path))
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		doc := FolderDoc(node)
		if err := os.WriteFile(filepath.Join(dir, FolderDocName), []byte(doc), 0o644); err != nil {
			return err
		}
	}
	nav := NavDoc(folders, stats)
	return os.WriteFile(filepath.Join(outDir, NavDocName), []byte(nav), 0o644)
}

// FolderDoc renders one folder's document, grouping files by category in
// display order.
func FolderDoc(node *doctree.FolderNode) string {
	var b strings.Builder
	title := node.Path
	if title == doctree.RootPath {
		title = "(root)"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	byCat := map[classify.Category][]analyze.FileAnalysis{}
	for _, fa := range node.Files {
		byCat[fa.Category] = append(byCat[fa.Category], fa)
	}
	for _, cat := range classify.Categories {
		files := byCat[cat]
		if len(files) == 0 {
			continue
		}
		sort.Slice(files, func(i, j int) bool { return files[i].Ref.RelPath < files[j].Ref.RelPath })
		fmt.Fprintf(&b, "## %s\n\n", cat.Label())
		for _, fa := range files {
			fmt.Fprintf(&b, "### `%s`\n\n%s\n\n", fa.Ref.RelPath, strings.TrimSpace(fa.Summary))
		}
	}
	if len(node.Subfolders) > 0 {
		b.WriteString("## Subfolders\n\n")
		for _, name := range node.Subfolders {
			fmt.Fprintf(&b, "- [%s](%s/%s)\n", name, name, FolderDocName)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// NavDoc renders the navigation document: the surviving folder hierarchy and
// the run's cost block.
func NavDoc(folders []*doctree.FolderNode, stats analyze.Stats) string {
	var b strings.Builder
	b.WriteString("# Codebase Guide\n\n")
	b.WriteString("Generated folder summaries. Start at the folder closest to what you are changing.\n\n")

	for _, node := range folders {
		if node.Path == doctree.RootPath {
			fmt.Fprintf(&b, "- [(root)](%s) — %d files\n", FolderDocName, len(node.Files))
			continue
		}
		indent := strings.Repeat("  ", node.Depth)
		fmt.Fprintf(&b, "%s- [%s](%s/%s) — %d files\n", indent, node.Name, node.Path, FolderDocName, len(node.Files))
	}

	b.WriteString("\n## Run stats\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Analyzed | %d |\n", stats.AnalyzedCount)
	fmt.Fprintf(&b, "| From cache | %d |\n", stats.CachedCount)
	fmt.Fprintf(&b, "| Skipped | %d |\n", stats.SkippedCount)
	fmt.Fprintf(&b, "| Input tokens | %d |\n", stats.InputTokens)
	fmt.Fprintf(&b, "| Output tokens | %d |\n", stats.OutputTokens)
	fmt.Fprintf(&b, "| Estimated cost | $%.4f |\n", stats.EstimatedCost())
	return b.String()
}
