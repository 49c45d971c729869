// Package sptree implements the in-memory tree that mirrors a remote
// SharePoint folder hierarchy. A tree is built once per listing or folder
// download, walked depth-first, and discarded — it is never persisted.
package sptree

// Node kinds.
const (
	KindFile   = "file"
	KindFolder = "folder"
)

// Node is a single entry in the tree: a remote file or folder.
// The concrete types are *FileNode and *FolderNode.
type Node interface {
	// Name is the display name of the remote entity.
	Name() string
	// Path is the server-relative path, unique within the site.
	Path() string
	// Kind is KindFile or KindFolder.
	Kind() string
	// Parent is the owning folder node, or nil for the root.
	Parent() *FolderNode
	IsFile() bool
	IsFolder() bool
	// Dict serializes the node to the nested-mapping DTO:
	// {name, path, kind} for files, plus children for folders.
	Dict() map[string]any

	setParent(*FolderNode)
}

// base carries the attributes shared by both node variants. The parent
// back-reference is non-owning; a parent owns its children, never the
// other way around.
type base struct {
	name   string
	path   string
	kind   string
	parent *FolderNode
}

func (b *base) Name() string         { return b.name }
func (b *base) Path() string         { return b.path }
func (b *base) Kind() string         { return b.kind }
func (b *base) Parent() *FolderNode  { return b.parent }
func (b *base) IsFile() bool         { return b.kind == KindFile }
func (b *base) IsFolder() bool       { return b.kind == KindFolder }
func (b *base) setParent(p *FolderNode) { b.parent = p }

// FileNode is a leaf node mirroring a remote file.
type FileNode struct {
	base
}

// NewFileNode creates a file node. The parent back-reference is set when
// the node is added to a folder via AddChild.
func NewFileNode(name, path string) *FileNode {
	return &FileNode{base{name: name, path: path, kind: KindFile}}
}

func (f *FileNode) Dict() map[string]any {
	return map[string]any{
		"name": f.name,
		"path": f.path,
		"kind": f.kind,
	}
}

// FolderNode mirrors a remote folder. Children are kept in discovery
// order: files first, then subfolders.
type FolderNode struct {
	base
	children []Node
}

// NewFolderNode creates a folder node with no children.
func NewFolderNode(name, path string) *FolderNode {
	return &FolderNode{base: base{name: name, path: path, kind: KindFolder}}
}

// AddChild appends child to the folder's child list and sets its parent
// back-reference. Append-only: there is no removal and no duplicate
// detection — each node must be added to exactly one parent.
func (f *FolderNode) AddChild(child Node) {
	child.setParent(f)
	f.children = append(f.children, child)
}

// Children returns the child list in insertion order.
func (f *FolderNode) Children() []Node { return f.children }

func (f *FolderNode) Dict() map[string]any {
	children := make([]map[string]any, 0, len(f.children))
	for _, c := range f.children {
		children = append(children, c.Dict())
	}

	return map[string]any{
		"name":     f.name,
		"path":     f.path,
		"kind":     f.kind,
		"children": children,
	}
}
