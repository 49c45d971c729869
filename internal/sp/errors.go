package sp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Sentinel errors for vendor failure classification.
// Use errors.Is(err, sp.ErrFolderNotFound) to check.
var (
	ErrFolderNotFound      = errors.New("sp: folder not found")
	ErrFileNotFound        = errors.New("sp: file not found")
	ErrFileAlreadyExists   = errors.New("sp: file already exists")
	ErrListNotFound        = errors.New("sp: list not found")
	ErrInvalidClientID     = errors.New("sp: unknown client id")
	ErrInvalidClientSecret = errors.New("sp: unknown client secret")
	ErrInvalidSiteURL      = errors.New("sp: invalid site url")
)

// Local precondition errors, raised before any network call.
var (
	// ErrUnsupportedFormat rejects folder archives that are not .zip.
	ErrUnsupportedFormat = errors.New("sp: unsupported archive format")
	// ErrSizeLimit rejects chunk sizes or unchunked files over the
	// 262,144,000 byte (250 MiB) single-request ceiling.
	ErrSizeLimit = errors.New("sp: size exceeds the 262,144,000 byte (250 MiB) limit")
	// ErrBadFolderArg rejects tree-builder inputs that are neither a
	// server-relative path nor an already-fetched folder descriptor.
	ErrBadFolderArg = errors.New("sp: folder must be a path string or *FolderInfo")
	// ErrBadFolderName rejects folder names that carry a path prefix.
	ErrBadFolderName = errors.New("sp: folder name must not start with a path separator")
)

// RequestError wraps a sentinel with the raw vendor diagnostic payload:
// the SharePoint error code, the server-side exception name, the error
// message, and the serialized error body.
type RequestError struct {
	Code      string
	Exception string
	Message   string
	Detail    string // raw odata error payload
	Err       error  // sentinel, for errors.Is()
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%v: %s (code %s, exception %s)", e.Err, e.Message, e.Code, e.Exception)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// AuthError wraps a sentinel with the token endpoint's failure payload.
type AuthError struct {
	Reason        string
	Description   string
	ErrorCodes    []int
	Timestamp     string
	TraceID       string
	CorrelationID string
	Err           error // sentinel, for errors.Is()
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Reason, e.Description)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// odataErrorBody matches the two envelope spellings SharePoint uses for
// request errors. The code field packs "<code>, <exception name>".
type odataErrorBody struct {
	Verbose *odataErrorDetail `json:"odata.error"`
	Plain   *odataErrorDetail `json:"error"`
}

type odataErrorDetail struct {
	Code    string `json:"code"`
	Message struct {
		Value string `json:"value"`
	} `json:"message"`
}

// authErrorBody matches the AAD/ACS token endpoint failure payload.
type authErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCodes       []int  `json:"error_codes"`
	Timestamp        string `json:"timestamp"`
	TraceID          string `json:"trace_id"`
	CorrelationID    string `json:"correlation_id"`
}

// tokenFailedMessage is the plain (non-JSON) failure the auth handshake
// produces when the site host itself does not resolve to a tenant.
const tokenFailedMessage = "Acquire app-only access token failed."

// mapError translates a vendor error into the typed taxonomy. Unmapped
// errors of any shape pass through unchanged — this layer reclassifies,
// it never suppresses or retries. Typed errors log at error severity
// when constructed, whether or not the caller later handles them.
func (c *Client) mapError(err error) error {
	if err == nil {
		return nil
	}

	text := err.Error()

	if code, exception, message, detail, ok := parseODataError(text); ok {
		if mapped := c.mapRequestError(code, exception, message, detail); mapped != nil {
			return mapped
		}

		return err
	}

	if body, ok := parseAuthError(text); ok {
		if mapped := c.mapAuthError(body); mapped != nil {
			return mapped
		}

		return err
	}

	if strings.Contains(text, tokenFailedMessage) {
		c.logger.Error("invalid site url",
			slog.String("site", c.siteURL),
			slog.String("detail", text),
		)

		return fmt.Errorf("%w: check the url and try again: %s", ErrInvalidSiteURL, c.siteURL)
	}

	return err
}

// mapRequestError applies the fixed (code, exception) catalog. Returns
// nil for combinations outside the catalog.
func (c *Client) mapRequestError(code, exception, message, detail string) error {
	var (
		sentinel error
		summary  string
	)

	switch {
	case exception == "System.IO.FileNotFoundException":
		sentinel, summary = ErrFolderNotFound, "folder not found"
	case exception == "Microsoft.SharePoint.SPException" && code == "-2130575338":
		sentinel, summary = ErrFileNotFound, "file not found"
	case exception == "Microsoft.SharePoint.SPException" && code == "-2130575257":
		sentinel, summary = ErrFileAlreadyExists, "file already exists, pass overwrite to replace it"
	case exception == "System.ArgumentException" && code == "-1":
		sentinel, summary = ErrListNotFound, "list not found"
	default:
		return nil
	}

	c.logger.Error(summary,
		slog.String("code", code),
		slog.String("exception", exception),
		slog.String("message", message),
		slog.String("detail", detail),
	)

	return &RequestError{
		Code:      code,
		Exception: exception,
		Message:   message,
		Detail:    detail,
		Err:       sentinel,
	}
}

// mapAuthError classifies token endpoint failures: unauthorized_client
// means the client id is unknown to the tenant, invalid_client means the
// secret did not match. Returns nil for other reasons.
func (c *Client) mapAuthError(body authErrorBody) error {
	var sentinel error

	switch body.Error {
	case "unauthorized_client":
		sentinel = ErrInvalidClientID
	case "invalid_client":
		sentinel = ErrInvalidClientSecret
	default:
		return nil
	}

	c.logger.Error("authentication failed",
		slog.String("reason", body.Error),
		slog.String("description", body.ErrorDescription),
		slog.String("trace_id", body.TraceID),
		slog.String("correlation_id", body.CorrelationID),
	)

	return &AuthError{
		Reason:        body.Error,
		Description:   body.ErrorDescription,
		ErrorCodes:    body.ErrorCodes,
		Timestamp:     body.Timestamp,
		TraceID:       body.TraceID,
		CorrelationID: body.CorrelationID,
		Err:           sentinel,
	}
}

// parseODataError extracts the odata error envelope embedded in a vendor
// error string. The code field packs "<numeric code>, <exception name>";
// both halves are returned separately along with the message text and
// the raw JSON slice for diagnostics.
func parseODataError(text string) (code, exception, message, detail string, ok bool) {
	idx := strings.Index(text, `{"odata.error"`)
	if idx < 0 {
		idx = strings.Index(text, `{"error":{`)
	}

	if idx < 0 {
		return "", "", "", "", false
	}

	dec := json.NewDecoder(strings.NewReader(text[idx:]))

	var body odataErrorBody
	if dec.Decode(&body) != nil {
		return "", "", "", "", false
	}

	inner := body.Verbose
	if inner == nil {
		inner = body.Plain
	}

	if inner == nil || inner.Code == "" {
		return "", "", "", "", false
	}

	detail = text[idx : idx+int(dec.InputOffset())]
	message = inner.Message.Value

	code, exception, found := strings.Cut(inner.Code, ", ")
	if !found {
		exception = ""
	}

	return code, exception, message, detail, true
}

// parseAuthError extracts the AAD/ACS failure payload from a vendor
// error string. The error field is a plain string there, which is what
// distinguishes it from the odata envelope.
func parseAuthError(text string) (authErrorBody, bool) {
	idx := strings.Index(text, `{"error"`)
	if idx < 0 {
		return authErrorBody{}, false
	}

	dec := json.NewDecoder(strings.NewReader(text[idx:]))

	var body authErrorBody
	if dec.Decode(&body) != nil || body.Error == "" {
		return authErrorBody{}, false
	}

	return body, true
}
