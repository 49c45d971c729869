package sptree

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSample builds a small tree by hand:
//
//	/docs
//	├── a.txt
//	├── b.txt
//	└── sub
//	    └── c.txt
func buildSample() *Tree {
	root := NewFolderNode("docs", "/docs")
	tree := New(root)

	root.AddChild(NewFileNode("a.txt", "/docs/a.txt"))
	root.AddChild(NewFileNode("b.txt", "/docs/b.txt"))

	sub := NewFolderNode("sub", "/docs/sub")
	tree.Attach(root, sub)
	sub.AddChild(NewFileNode("c.txt", "/docs/c.txt"))

	return tree
}

func TestAddChild_SetsParent(t *testing.T) {
	root := NewFolderNode("docs", "/docs")
	file := NewFileNode("a.txt", "/docs/a.txt")

	require.Nil(t, file.Parent())

	root.AddChild(file)

	assert.Same(t, root, file.Parent())
	require.Len(t, root.Children(), 1)
	assert.Same(t, Node(file), root.Children()[0])
	assert.Nil(t, root.Parent())
}

func TestNodePredicates(t *testing.T) {
	file := NewFileNode("a.txt", "/docs/a.txt")
	folder := NewFolderNode("docs", "/docs")

	assert.True(t, file.IsFile())
	assert.False(t, file.IsFolder())
	assert.Equal(t, KindFile, file.Kind())

	assert.True(t, folder.IsFolder())
	assert.False(t, folder.IsFile())
	assert.Equal(t, KindFolder, folder.Kind())
}

func TestNodes_DepthFirstPreOrder(t *testing.T) {
	tree := buildSample()

	var paths []string
	for node := range tree.Nodes() {
		paths = append(paths, node.Path())
	}

	// Children visit in insertion order: files first, then subfolders,
	// each subfolder's subtree before the next sibling.
	assert.Equal(t, []string{
		"/docs",
		"/docs/a.txt",
		"/docs/b.txt",
		"/docs/sub",
		"/docs/c.txt",
	}, paths)
}

func TestNodes_VisitsEveryNodeOnce(t *testing.T) {
	tree := buildSample()

	seen := map[string]int{}
	for node := range tree.Nodes() {
		seen[node.Path()]++
	}

	for path, n := range seen {
		assert.Equal(t, 1, n, "node %s visited %d times", path, n)
	}

	assert.Equal(t, tree.Count(), len(seen))
}

func TestNodes_Restartable(t *testing.T) {
	tree := buildSample()

	first := tree.Count()
	second := tree.Count()

	assert.Equal(t, first, second)
	assert.Equal(t, 5, first)
}

func TestNodes_EarlyBreak(t *testing.T) {
	tree := buildSample()

	n := 0
	for range tree.Nodes() {
		n++
		if n == 2 {
			break
		}
	}

	require.Equal(t, 2, n)

	// A fresh walk starts over from the root.
	assert.Equal(t, 5, tree.Count())
}

func TestCount_MatchesRecursiveSummation(t *testing.T) {
	tree := buildSample()

	var sum func(n Node) int
	sum = func(n Node) int {
		total := 1
		if folder, ok := n.(*FolderNode); ok {
			for _, c := range folder.Children() {
				total += sum(c)
			}
		}

		return total
	}

	assert.Equal(t, sum(tree.Root()), tree.Count())
}

func TestDict_Shape(t *testing.T) {
	tree := buildSample()

	d := tree.Dict()
	assert.Equal(t, "docs", d["name"])
	assert.Equal(t, "/docs", d["path"])
	assert.Equal(t, KindFolder, d["kind"])

	children, ok := d["children"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, children, 3)

	// File DTOs carry no children key.
	assert.Equal(t, "a.txt", children[0]["name"])
	_, hasChildren := children[0]["children"]
	assert.False(t, hasChildren)

	// Folder DTOs always carry children, even when empty.
	empty := NewFolderNode("empty", "/docs/empty").Dict()
	emptyChildren, ok := empty["children"].([]map[string]any)
	require.True(t, ok)
	assert.Empty(t, emptyChildren)
}

func TestDict_Idempotent(t *testing.T) {
	tree := buildSample()

	first := tree.Dict()
	second := tree.Dict()

	assert.True(t, reflect.DeepEqual(first, second))
}

func TestDepth_CountsFolderAttachments(t *testing.T) {
	root := NewFolderNode("docs", "/docs")
	tree := New(root)

	require.Equal(t, 0, tree.Depth())

	// Two sibling folders attached at the same level still bump the
	// counter twice — Depth tracks attachments, not path depth.
	tree.Attach(root, NewFolderNode("a", "/docs/a"))
	tree.Attach(root, NewFolderNode("b", "/docs/b"))

	assert.Equal(t, 2, tree.Depth())
}
