package sptree

import "iter"

// Tree owns a root folder node and mirrors one remote folder hierarchy.
type Tree struct {
	root *FolderNode

	// depth counts folder attachments made during the recursive build,
	// not path depth from the root. See Depth.
	depth int
}

// New creates a tree rooted at root.
func New(root *FolderNode) *Tree {
	return &Tree{root: root}
}

// Root returns the tree's root folder node.
func (t *Tree) Root() *FolderNode { return t.root }

// Attach adds folder as a child of parent and records the descent.
// Used by the builder for every folder node below the root.
func (t *Tree) Attach(parent, folder *FolderNode) {
	parent.AddChild(folder)
	t.depth++
}

// Depth returns the number of folder nodes attached below the root over
// the lifetime of the build. It is a recursion-activity signal, not the
// maximum path depth of the tree.
func (t *Tree) Depth() int { return t.depth }

// Nodes returns a restartable depth-first pre-order sequence over every
// node in the tree. A folder's children are pushed onto the walk stack in
// reverse so they pop in insertion order before any later sibling subtree.
func (t *Tree) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		stack := []Node{t.root}

		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(node) {
				return
			}

			if folder, ok := node.(*FolderNode); ok {
				children := folder.Children()
				for i := len(children) - 1; i >= 0; i-- {
					stack = append(stack, children[i])
				}
			}
		}
	}
}

// Count walks the whole tree and returns the node count, root included.
// There is no maintained size field — counting is always a full walk.
func (t *Tree) Count() int {
	n := 0
	for range t.Nodes() {
		n++
	}

	return n
}

// Dict serializes the tree to the nested-mapping DTO. Pure function of
// current state; calling it twice without mutation yields equal results.
func (t *Tree) Dict() map[string]any {
	return t.root.Dict()
}
