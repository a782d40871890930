// Package doctree reconstructs a navigable folder hierarchy from the flat
// per-file analysis list, synthesizing ancestor folders so every node has an
// unbroken chain to the root.
package doctree

import (
	"path"
	"sort"
	"strings"

	"codescribe/internal/analyze"
)

// RootPath is the sentinel path of the tree root.
const RootPath = "."

// FolderNode aggregates one directory's direct files and immediate
// subdirectory names.
type FolderNode struct {
	Path       string
	Name       string
	Depth      int
	Files      []analyze.FileAnalysis
	Subfolders []string
}

// FolderTree maps folder paths to nodes. For every non-root folder present,
// every ancestor up to RootPath is present too.
type FolderTree struct {
	Root    string
	Folders map[string]*FolderNode
}

// Build assigns each analysis to its containing folder and synthesizes all
// ancestor folders. Built fresh each run; never persisted.
func Build(analyses []analyze.FileAnalysis) *FolderTree {
	tree := &FolderTree{
		Root:    RootPath,
		Folders: map[string]*FolderNode{},
	}
	tree.ensure(RootPath)

	for _, fa := range analyses {
		folder := path.Dir(fa.Ref.RelPath)
		node := tree.ensure(folder)
		node.Files = append(node.Files, fa)
		for p := folder; p != RootPath; p = path.Dir(p) {
			tree.ensure(p)
		}
	}

	// Subfolder names come from the full folder-path set, deduplicated and
	// sorted.
	children := map[string]map[string]struct{}{}
	for p := range tree.Folders {
		if p == RootPath {
			continue
		}
		parent := path.Dir(p)
		if children[parent] == nil {
			children[parent] = map[string]struct{}{}
		}
		children[parent][path.Base(p)] = struct{}{}
	}
	for parent, set := range children {
		node := tree.Folders[parent]
		node.Subfolders = node.Subfolders[:0]
		for name := range set {
			node.Subfolders = append(node.Subfolders, name)
		}
		sort.Strings(node.Subfolders)
	}
	return tree
}

func (t *FolderTree) ensure(p string) *FolderNode {
	if p == "" || p == "/" {
		p = RootPath
	}
	if node, ok := t.Folders[p]; ok {
		return node
	}
	node := &FolderNode{
		Path:  p,
		Name:  folderName(p),
		Depth: folderDepth(p),
	}
	t.Folders[p] = node
	return node
}

// FoldersWithContent returns, sorted by path, every folder whose subtree
// (itself or any descendant) holds at least one file. Each surviving node's
// subfolder list is filtered to surviving children only.
func (t *FolderTree) FoldersWithContent() []*FolderNode {
	alive := map[string]bool{}
	var mark func(p string) bool
	mark = func(p string) bool {
		if v, ok := alive[p]; ok {
			return v
		}
		node := t.Folders[p]
		if node == nil {
			alive[p] = false
			return false
		}
		// Seed false first so a cyclic path (impossible for clean inputs)
		// cannot recurse forever.
		alive[p] = false
		has := len(node.Files) > 0
		for _, name := range node.Subfolders {
			if mark(childPath(p, name)) {
				has = true
			}
		}
		alive[p] = has
		return has
	}
	for p := range t.Folders {
		mark(p)
	}

	var out []*FolderNode
	for p, node := range t.Folders {
		if !alive[p] {
			continue
		}
		kept := *node
		kept.Subfolders = nil
		for _, name := range node.Subfolders {
			if alive[childPath(p, name)] {
				kept.Subfolders = append(kept.Subfolders, name)
			}
		}
		out = append(out, &kept)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func childPath(parent, name string) string {
	if parent == RootPath {
		return name
	}
	return parent + "/" + name
}

func folderName(p string) string {
	if p == RootPath {
		return RootPath
	}
	return path.Base(p)
}

func folderDepth(p string) int {
	if p == RootPath {
		return 0
	}
	return strings.Count(p, "/") + 1
}
