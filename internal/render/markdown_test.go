package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codescribe/internal/analyze"
	"codescribe/internal/classify"
	"codescribe/internal/doctree"
	"codescribe/internal/scan"
)

func fa(rel string, cat classify.Category, summary string) analyze.FileAnalysis {
	return analyze.FileAnalysis{
		Ref:      scan.FileRef{RelPath: rel},
		Category: cat,
		Summary:  summary,
	}
}

func TestFolderDoc_GroupsByCategoryInDisplayOrder(t *testing.T) {
	tree := doctree.Build([]analyze.FileAnalysis{
		fa("utils/fmt.ts", classify.Util, "formats things"),
		fa("utils/db.ts", classify.Schema, "defines tables"),
	})
	doc := FolderDoc(tree.Folders["utils"])

	schemaAt := strings.Index(doc, "Schemas & Models")
	utilAt := strings.Index(doc, "Utilities")
	if schemaAt < 0 || utilAt < 0 {
		t.Fatalf("missing category headings:\n%s", doc)
	}
	if schemaAt > utilAt {
		t.Fatalf("schema section must precede util section:\n%s", doc)
	}
	if !strings.Contains(doc, "`utils/db.ts`") || !strings.Contains(doc, "defines tables") {
		t.Fatalf("file summary missing:\n%s", doc)
	}
}

func TestWriteAll_MirrorsFolderLayout(t *testing.T) {
	out := t.TempDir()
	tree := doctree.Build([]analyze.FileAnalysis{
		fa("a.ts", classify.Other, "root file"),
		fa("sub/b.ts", classify.Other, "nested file"),
	})
	if err := WriteAll(out, tree, analyze.Stats{AnalyzedCount: 2}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	for _, p := range []string{
		filepath.Join(out, FolderDocName),
		filepath.Join(out, "sub", FolderDocName),
		filepath.Join(out, NavDocName),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
	}

	nav, err := os.ReadFile(filepath.Join(out, NavDocName))
	if err != nil {
		t.Fatalf("read nav: %v", err)
	}
	if !strings.Contains(string(nav), "| Analyzed | 2 |") {
		t.Fatalf("nav doc missing stats:\n%s", nav)
	}
}

func TestOutputArtifacts_IncludeCacheFile(t *testing.T) {
	names := OutputArtifacts(".codescribe-cache.json")
	joined := strings.Join(names, ",")
	for _, want := range []string{FolderDocName, NavDocName, ".codescribe-cache.json"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing artifact %q in %v", want, names)
		}
	}
}
