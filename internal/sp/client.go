// Package sp is a thin convenience layer over the gosip SharePoint SDK.
// It owns three things: accessors that resolve files, folders, and lists
// by server-relative path; a recursive tree builder that mirrors a remote
// folder hierarchy in memory; and an error mapper that translates the
// vendor's failure shapes into a typed taxonomy. Everything network-level
// (auth handshake, request building, chunked upload sessions) belongs to
// gosip.
package sp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/koltyakov/gosip"
	"github.com/koltyakov/gosip/api"
	"github.com/koltyakov/gosip/auth/addin"
)

// Client is a lazily-connected SharePoint session. The underlying gosip
// session is established on first use and reused for the client's
// lifetime. A Client is meant for single-threaded use — there is no
// internal locking.
type Client struct {
	siteURL string
	logger  *slog.Logger

	auth      *addin.AuthCnfg
	sp        *api.SP
	connected bool

	// fetchFolder resolves a folder with Files+Folders expansion.
	// Defaults to the real accessor; tests override it to build trees
	// without a network.
	fetchFolder func(ctx context.Context, folderURL string) (*FolderInfo, error)

	// uploadFile performs a file upload. Defaults to UploadFile; tests
	// override it to exercise archive uploads without a network.
	uploadFile func(ctx context.Context, folderURL, localPath string,
		overwrite bool, chunkSize int64, progress ProgressFunc) (string, error)
}

// NewClient creates a client for the given site. The three credentials
// are opaque here — they are validated only by the auth handshake on
// first use.
func NewClient(siteURL, clientID, clientSecret string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		siteURL: siteURL,
		logger:  logger,
		auth: &addin.AuthCnfg{
			SiteURL:      siteURL,
			ClientID:     clientID,
			ClientSecret: clientSecret,
		},
	}

	c.fetchFolder = func(ctx context.Context, folderURL string) (*FolderInfo, error) {
		return c.Folder(ctx, folderURL, "Files", "Folders")
	}
	c.uploadFile = c.UploadFile

	return c
}

// connect establishes the gosip session and verifies it by loading the
// site's web. Idempotent; every remote-facing operation calls it first.
func (c *Client) connect(ctx context.Context) error {
	if c.connected {
		return nil
	}

	c.sp = api.NewSP(&gosip.SPClient{AuthCnfg: c.auth})

	res, err := c.conf(ctx).Web().Select("Title").Get()
	if err != nil {
		return c.mapError(err)
	}

	var web struct {
		Title string
	}
	if err := json.Unmarshal(res.Normalized(), &web); err != nil {
		return fmt.Errorf("sp: decoding web response: %w", err)
	}

	c.connected = true
	c.logger.Info("connected to site",
		slog.String("site", c.siteURL),
		slog.String("title", web.Title),
	)

	return nil
}

// conf binds the per-call context to the gosip API object so requests
// are cancelable.
func (c *Client) conf(ctx context.Context) *api.SP {
	return c.sp.Conf(&api.RequestConfig{Context: ctx})
}

// normalizePath converts backslash-separated paths to server-relative
// form with forward slashes.
func normalizePath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
