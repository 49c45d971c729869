package sp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Folder resolves a folder by server-relative path. expand names OData
// expansions ("Files", "Folders") resolved in the same request, so a
// single round trip can return the folder together with its children.
func (c *Client) Folder(ctx context.Context, folderURL string, expand ...string) (*FolderInfo, error) {
	folderURL = normalizePath(folderURL)

	if err := c.connect(ctx); err != nil {
		return nil, err
	}

	c.logger.Info("getting folder", slog.String("folder", folderURL))

	q := c.conf(ctx).Web().GetFolder(folderURL)
	if len(expand) > 0 {
		q = q.Expand(strings.Join(expand, ","))
	}

	res, err := q.Get()
	if err != nil {
		return nil, c.mapError(err)
	}

	var info FolderInfo
	if err := json.Unmarshal(res.Normalized(), &info); err != nil {
		return nil, fmt.Errorf("sp: decoding folder response: %w", err)
	}

	c.logger.Debug("folder resolved",
		slog.String("path", info.ServerRelativeURL),
		slog.Int("files", len(info.Files)),
		slog.Int("folders", len(info.Folders)),
	)

	return &info, nil
}

// File resolves a file by server-relative path.
func (c *Client) File(ctx context.Context, fileURL string) (*FileInfo, error) {
	fileURL = normalizePath(fileURL)

	if err := c.connect(ctx); err != nil {
		return nil, err
	}

	c.logger.Info("getting file", slog.String("file", fileURL))

	res, err := c.conf(ctx).Web().GetFile(fileURL).Get()
	if err != nil {
		return nil, c.mapError(err)
	}

	var info FileInfo
	if err := json.Unmarshal(res.Normalized(), &info); err != nil {
		return nil, fmt.Errorf("sp: decoding file response: %w", err)
	}

	c.logger.Debug("file resolved", slog.String("path", info.ServerRelativeURL))

	return &info, nil
}

// FileProperties returns a file's raw property map as the server sent
// it, for callers that need fields beyond the FileInfo descriptor.
func (c *Client) FileProperties(ctx context.Context, fileURL string) (map[string]any, error) {
	fileURL = normalizePath(fileURL)

	if err := c.connect(ctx); err != nil {
		return nil, err
	}

	c.logger.Info("getting file properties", slog.String("file", fileURL))

	res, err := c.conf(ctx).Web().GetFile(fileURL).Get()
	if err != nil {
		return nil, c.mapError(err)
	}

	props := map[string]any{}
	if err := json.Unmarshal(res.Normalized(), &props); err != nil {
		return nil, fmt.Errorf("sp: decoding file properties: %w", err)
	}

	return props, nil
}

// List resolves a list by title.
func (c *Client) List(ctx context.Context, title string) (*ListInfo, error) {
	if err := c.connect(ctx); err != nil {
		return nil, err
	}

	c.logger.Info("getting list", slog.String("list", title))

	res, err := c.conf(ctx).Web().Lists().GetByTitle(title).Get()
	if err != nil {
		return nil, c.mapError(err)
	}

	var info ListInfo
	if err := json.Unmarshal(res.Normalized(), &info); err != nil {
		return nil, fmt.Errorf("sp: decoding list response: %w", err)
	}

	return &info, nil
}

// ListFiles returns the files directly under a folder.
func (c *Client) ListFiles(ctx context.Context, folderURL string) ([]FileInfo, error) {
	folder, err := c.Folder(ctx, folderURL, "Files")
	if err != nil {
		return nil, err
	}

	c.logger.Info("listed files",
		slog.String("folder", folder.ServerRelativeURL),
		slog.Int("count", len(folder.Files)),
	)

	return folder.Files, nil
}

// ListSubfolders returns the immediate subfolders of a folder. This is
// always a one-level listing; recursive walks go through FolderContents.
func (c *Client) ListSubfolders(ctx context.Context, folderURL string) ([]FolderInfo, error) {
	folder, err := c.Folder(ctx, folderURL, "Folders")
	if err != nil {
		return nil, err
	}

	c.logger.Info("listed subfolders",
		slog.String("folder", folder.ServerRelativeURL),
		slog.Int("count", len(folder.Folders)),
	)

	return folder.Folders, nil
}
