package sp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/koltyakov/gosip/api"
)

// MaxChunkSize is the policy ceiling for a single request or upload
// chunk: 262,144,000 bytes (250 MiB). Checked locally before any
// network call.
const MaxChunkSize = 250 * 1024 * 1024

// DefaultChunkSize is the chunk size used when the caller passes zero.
const DefaultChunkSize = 10 * 1024 * 1024

// ProgressFunc receives cumulative uploaded bytes and the total size
// after each chunk.
type ProgressFunc func(uploaded, total int64)

// useChunked reports whether an upload of total bytes takes the chunked
// session path. A file exactly at the chunk boundary still goes in one
// request.
func useChunked(total, chunkSize int64) bool {
	return total > chunkSize
}

// UploadFile uploads a local file into the remote folder, keeping the
// local base name. Files no larger than chunkSize go up in a single
// request; larger files go through the vendor's chunked upload session
// with progress reported per chunk. Returns the server-relative path of
// the uploaded file.
func (c *Client) UploadFile(
	ctx context.Context, folderURL, localPath string,
	overwrite bool, chunkSize int64, progress ProgressFunc,
) (string, error) {
	fi, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("sp: stating %s: %w", localPath, err)
	}

	total := fi.Size()

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	if chunkSize > MaxChunkSize {
		c.logger.Error("chunk size over limit",
			slog.Int64("chunk_size", chunkSize),
			slog.Int64("max", MaxChunkSize),
		)

		return "", fmt.Errorf("%w: chunk size %d", ErrSizeLimit, chunkSize)
	}

	if progress == nil {
		progress = c.logProgress
	}

	folder, err := c.Folder(ctx, folderURL)
	if err != nil {
		return "", err
	}

	c.logger.Info("uploading file",
		slog.String("local", localPath),
		slog.String("folder", folder.ServerRelativeURL),
		slog.Int64("size", total),
		slog.Bool("chunked", useChunked(total, chunkSize)),
	)

	name := filepath.Base(localPath)
	files := c.conf(ctx).Web().GetFolder(folder.ServerRelativeURL).Files()

	var res api.FileResp

	if !useChunked(total, chunkSize) {
		data, readErr := os.ReadFile(localPath)
		if readErr != nil {
			return "", fmt.Errorf("sp: reading %s: %w", localPath, readErr)
		}

		res, err = files.Add(name, data, overwrite)
		if err != nil {
			return "", c.mapError(err)
		}

		progress(total, total)
	} else {
		f, openErr := os.Open(localPath)
		if openErr != nil {
			return "", fmt.Errorf("sp: opening %s: %w", localPath, openErr)
		}
		defer f.Close()

		var uploaded int64

		res, err = files.AddChunked(name, f, &api.AddChunkedOptions{
			Overwrite: overwrite,
			ChunkSize: int(chunkSize),
			Progress: func(data *api.FileUploadProgressData) bool {
				uploaded = int64(data.FileOffset)
				progress(uploaded, total)

				return true
			},
		})
		if err != nil {
			return "", c.mapError(err)
		}

		progress(total, total)
	}

	var info FileInfo
	if err := json.Unmarshal(res.Normalized(), &info); err != nil {
		return "", fmt.Errorf("sp: decoding upload response: %w", err)
	}

	c.logger.Info("file uploaded", slog.String("path", info.ServerRelativeURL))

	return info.ServerRelativeURL, nil
}

// logProgress is the default ProgressFunc: one info record per chunk in
// human units.
func (c *Client) logProgress(uploaded, total int64) {
	percent := 0.0
	if total > 0 {
		percent = float64(uploaded) / float64(total) * 100
	}

	c.logger.Info("upload progress",
		slog.String("uploaded", humanBytes(uploaded)),
		slog.String("total", humanBytes(total)),
		slog.String("percent", fmt.Sprintf("%.2f%%", percent)),
	)
}

// humanBytes formats byte counts in KB below 1 MB and MB above.
func humanBytes(n int64) string {
	const oneMB = 1024 * 1024

	if n >= oneMB {
		return fmt.Sprintf("%.2f MB", float64(n)/oneMB)
	}

	return fmt.Sprintf("%.2f KB", float64(n)/1024)
}
