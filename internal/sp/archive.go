package sp

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// zipExt is the single supported archive format for folder transfers.
const zipExt = ".zip"

// DownloadFolder mirrors a remote folder into a local .zip archive. The
// tree is built first, every file node is downloaded to its relative
// path under a temporary staging directory, the staging directory is
// archived to outputZip, and the staging directory is removed. A
// non-.zip target fails before any network call or staging directory is
// created.
func (c *Client) DownloadFolder(ctx context.Context, folderURL, outputZip string, recursive bool) error {
	if !strings.HasSuffix(outputZip, zipExt) {
		c.logger.Error("unsupported archive format", slog.String("output", outputZip))
		return fmt.Errorf("%w: %s (only .zip archives are supported)", ErrUnsupportedFormat, outputZip)
	}

	c.logger.Info("downloading folder",
		slog.String("folder", folderURL),
		slog.String("output", outputZip),
		slog.Bool("recursive", recursive),
	)

	tree, err := c.FolderContents(ctx, folderURL, recursive)
	if err != nil {
		return err
	}

	staging, err := os.MkdirTemp("", "sharepoint-go-*")
	if err != nil {
		return fmt.Errorf("sp: creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	c.logger.Debug("staging directory created", slog.String("staging", staging))

	for node := range tree.Nodes() {
		if !node.IsFile() {
			continue
		}

		local := filepath.Join(staging, stagingRelPath(node.Path()))
		if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
			return fmt.Errorf("sp: creating staging subdirectory: %w", err)
		}

		if err := c.DownloadFile(ctx, node.Path(), local); err != nil {
			return err
		}
	}

	if err := zipDir(staging, outputZip); err != nil {
		return err
	}

	c.logger.Info("folder downloaded", slog.String("output", outputZip))

	return nil
}

// UploadFolderAsZip archives a local folder, uploads the archive into
// the remote folder, and removes the temporary archive. Returns the
// server-relative path of the uploaded file. With overwrite false a
// remote archive of the same name surfaces ErrFileAlreadyExists;
// replacing it is an explicit opt-in.
func (c *Client) UploadFolderAsZip(ctx context.Context, remoteFolderURL, localFolder string, overwrite bool) (string, error) {
	localZip := filepath.Clean(localFolder) + zipExt

	if err := zipDir(localFolder, localZip); err != nil {
		return "", err
	}
	defer os.Remove(localZip)

	return c.uploadFile(ctx, remoteFolderURL, localZip, overwrite, 0, nil)
}

// stagingRelPath converts a server-relative path into a local relative
// path. Names are NFC-normalized so archives extract identically across
// platforms that decompose filenames.
func stagingRelPath(serverRelative string) string {
	rel := strings.TrimPrefix(serverRelative, "/")
	rel = norm.NFC.String(rel)

	return filepath.FromSlash(rel)
}

// zipDir archives the contents of dir (not the directory itself) into a
// zip file at target.
func zipDir(dir, target string) error {
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("sp: creating archive %s: %w", target, err)
	}

	zw := zip.NewWriter(out)

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}

		w, createErr := zw.Create(filepath.ToSlash(rel))
		if createErr != nil {
			return createErr
		}

		f, openErr := os.Open(path)
		if openErr != nil {
			return openErr
		}
		defer f.Close()

		_, copyErr := io.Copy(w, f)

		return copyErr
	})

	if walkErr != nil {
		zw.Close()
		out.Close()
		os.Remove(target)

		return fmt.Errorf("sp: archiving %s: %w", dir, walkErr)
	}

	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(target)

		return fmt.Errorf("sp: finalizing archive: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(target)

		return fmt.Errorf("sp: closing archive: %w", err)
	}

	return nil
}
