package sp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// CreateFolder creates a folder named name directly under the parent
// folder. name must be a bare name, not a path. Returns the new
// folder's server-relative path.
func (c *Client) CreateFolder(ctx context.Context, parentFolderURL, name string) (string, error) {
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		c.logger.Error("bad folder name", slog.String("name", name))
		return "", fmt.Errorf("%w: %q", ErrBadFolderName, name)
	}

	parent, err := c.Folder(ctx, parentFolderURL)
	if err != nil {
		return "", err
	}

	c.logger.Info("creating folder",
		slog.String("name", name),
		slog.String("parent", parent.ServerRelativeURL),
	)

	res, err := c.conf(ctx).Web().GetFolder(parent.ServerRelativeURL).Folders().Add(name)
	if err != nil {
		return "", c.mapError(err)
	}

	var info FolderInfo
	if err := json.Unmarshal(res.Normalized(), &info); err != nil {
		return "", fmt.Errorf("sp: decoding create folder response: %w", err)
	}

	c.logger.Info("folder created", slog.String("path", info.ServerRelativeURL))

	return info.ServerRelativeURL, nil
}

// DeleteFolder deletes a folder by server-relative path. The server
// removes contents recursively; there is no non-recursive variant.
func (c *Client) DeleteFolder(ctx context.Context, folderURL string) error {
	folderURL = normalizePath(folderURL)

	if err := c.connect(ctx); err != nil {
		return err
	}

	c.logger.Info("deleting folder", slog.String("folder", folderURL))

	if err := c.conf(ctx).Web().GetFolder(folderURL).Delete(); err != nil {
		return c.mapError(err)
	}

	c.logger.Info("folder deleted", slog.String("folder", folderURL))

	return nil
}
