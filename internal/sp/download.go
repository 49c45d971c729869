package sp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ReadFile downloads a file's content into memory.
func (c *Client) ReadFile(ctx context.Context, fileURL string) ([]byte, error) {
	fileURL = normalizePath(fileURL)

	if err := c.connect(ctx); err != nil {
		return nil, err
	}

	c.logger.Info("reading file", slog.String("file", fileURL))

	data, err := c.conf(ctx).Web().GetFile(fileURL).Download()
	if err != nil {
		return nil, c.mapError(err)
	}

	c.logger.Debug("file read",
		slog.String("file", fileURL),
		slog.Int("bytes", len(data)),
	)

	return data, nil
}

// DownloadFile streams a file's content to localPath. The partial file
// is removed when the transfer fails.
func (c *Client) DownloadFile(ctx context.Context, fileURL, localPath string) error {
	fileURL = normalizePath(fileURL)

	if err := c.connect(ctx); err != nil {
		return err
	}

	c.logger.Info("downloading file",
		slog.String("file", fileURL),
		slog.String("local", localPath),
	)

	r, err := c.conf(ctx).Web().GetFile(fileURL).GetReader()
	if err != nil {
		return c.mapError(err)
	}
	defer r.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("sp: creating %s: %w", localPath, err)
	}

	n, copyErr := io.Copy(f, r)

	if closeErr := f.Close(); copyErr == nil {
		copyErr = closeErr
	}

	if copyErr != nil {
		os.Remove(localPath)
		return fmt.Errorf("sp: writing %s: %w", localPath, copyErr)
	}

	c.logger.Debug("file downloaded",
		slog.String("local", localPath),
		slog.Int64("bytes", n),
	)

	return nil
}

// DeleteFile deletes a file by server-relative path.
func (c *Client) DeleteFile(ctx context.Context, fileURL string) error {
	fileURL = normalizePath(fileURL)

	if err := c.connect(ctx); err != nil {
		return err
	}

	c.logger.Info("deleting file", slog.String("file", fileURL))

	if err := c.conf(ctx).Web().GetFile(fileURL).Delete(); err != nil {
		return c.mapError(err)
	}

	c.logger.Info("file deleted", slog.String("file", fileURL))

	return nil
}
