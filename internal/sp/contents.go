package sp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spgo/sharepoint-go/internal/sptree"
)

// FolderContents builds a tree mirroring the remote hierarchy under
// folder. folder is either a server-relative path string or a
// *FolderInfo already fetched with Files+Folders expansion — accepting
// both spares a redundant round trip when the caller holds one. Any
// other type fails immediately with ErrBadFolderArg.
//
// With recursive false the tree holds the root and its direct files
// only: subfolders are present in the fetched expansion but the descent
// loop stops before emitting nodes for them. That asymmetry (use
// ListSubfolders for a one-level folder listing) is long-standing
// behavior that callers depend on, so it is kept and pinned by a test.
//
// On failure the partially-built tree is not rolled back; treat any
// error as "the tree is unusable."
func (c *Client) FolderContents(ctx context.Context, folder any, recursive bool) (*sptree.Tree, error) {
	return c.folderContents(ctx, folder, recursive, nil, nil)
}

// folderContents is the recursive worker. tree and parent are nil on
// the first call; recursive self-calls pass the accumulating tree and
// the node to attach under.
func (c *Client) folderContents(
	ctx context.Context, folder any, recursive bool,
	tree *sptree.Tree, parent *sptree.FolderNode,
) (*sptree.Tree, error) {
	var root *FolderInfo

	switch f := folder.(type) {
	case *FolderInfo:
		root = f
	case string:
		fetched, err := c.fetchFolder(ctx, normalizePath(f))
		if err != nil {
			return nil, err
		}

		root = fetched
	default:
		c.logger.Error("bad folder argument", slog.String("type", fmt.Sprintf("%T", folder)))
		return nil, fmt.Errorf("%w, got %T", ErrBadFolderArg, folder)
	}

	node := sptree.NewFolderNode(root.Name, root.ServerRelativeURL)

	if tree == nil {
		tree = sptree.New(node)
	} else {
		tree.Attach(parent, node)
	}

	for i := range root.Files {
		node.AddChild(sptree.NewFileNode(root.Files[i].Name, root.Files[i].ServerRelativeURL))
	}

	for i := range root.Folders {
		if !recursive {
			break
		}

		sub, err := c.fetchFolder(ctx, root.Folders[i].ServerRelativeURL)
		if err != nil {
			return nil, err
		}

		if _, err := c.folderContents(ctx, sub, recursive, tree, node); err != nil {
			return nil, err
		}
	}

	return tree, nil
}

// ListFolderContents builds a tree for folderURL and returns its
// serialized nested-mapping form.
func (c *Client) ListFolderContents(ctx context.Context, folderURL string, recursive bool) (map[string]any, error) {
	tree, err := c.FolderContents(ctx, folderURL, recursive)
	if err != nil {
		return nil, err
	}

	contents := tree.Dict()
	c.logger.Info("folder contents listed",
		slog.String("folder", folderURL),
		slog.Bool("recursive", recursive),
		slog.Int("nodes", tree.Count()),
	)

	return contents, nil
}
