package sp

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a client that never connects; the logger is
// silenced so typed-error construction doesn't spam test output.
func newTestClient(t *testing.T) *Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewClient("https://contoso.sharepoint.com/sites/dev", "client-id", "client-secret", logger)
}

// vendorErr builds an error shaped like the SDK's request failures: a
// prefix followed by the raw response body.
func vendorErr(body string) error {
	return errors.New("unable to request api: 404 Not Found :: " + body)
}

func TestMapError_RequestCatalog(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		sentinel error
	}{
		{
			"folder not found",
			`{"odata.error":{"code":"-2147024894, System.IO.FileNotFoundException","message":{"lang":"en-US","value":"File Not Found."}}}`,
			ErrFolderNotFound,
		},
		{
			"file not found",
			`{"odata.error":{"code":"-2130575338, Microsoft.SharePoint.SPException","message":{"lang":"en-US","value":"The file does not exist."}}}`,
			ErrFileNotFound,
		},
		{
			"file already exists",
			`{"odata.error":{"code":"-2130575257, Microsoft.SharePoint.SPException","message":{"lang":"en-US","value":"A file with the same name already exists."}}}`,
			ErrFileAlreadyExists,
		},
		{
			"list not found",
			`{"odata.error":{"code":"-1, System.ArgumentException","message":{"lang":"en-US","value":"List 'Nope' does not exist at site."}}}`,
			ErrListNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t)

			err := client.mapError(vendorErr(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.NotEmpty(t, reqErr.Code)
			assert.NotEmpty(t, reqErr.Exception)
			assert.NotEmpty(t, reqErr.Message)
			assert.Contains(t, reqErr.Detail, "odata.error")
		})
	}
}

func TestMapError_CarriesVendorCode(t *testing.T) {
	client := newTestClient(t)

	err := client.mapError(vendorErr(
		`{"odata.error":{"code":"-2130575338, Microsoft.SharePoint.SPException","message":{"lang":"en-US","value":"The file does not exist."}}}`,
	))

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "-2130575338", reqErr.Code)
	assert.Equal(t, "Microsoft.SharePoint.SPException", reqErr.Exception)
	assert.Equal(t, "The file does not exist.", reqErr.Message)
}

func TestMapError_UnknownCodePassesThrough(t *testing.T) {
	client := newTestClient(t)

	orig := vendorErr(`{"odata.error":{"code":"-2147024809, System.ArgumentException","message":{"lang":"en-US","value":"Value does not fall within the expected range."}}}`)

	err := client.mapError(orig)
	assert.Same(t, orig, err)
}

func TestMapError_AuthFailures(t *testing.T) {
	tests := []struct {
		name     string
		reason   string
		sentinel error
	}{
		{"unknown client id", "unauthorized_client", ErrInvalidClientID},
		{"unknown client secret", "invalid_client", ErrInvalidClientSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t)

			orig := errors.New(`unable to get auth: {"error":"` + tt.reason +
				`","error_description":"AADSTS700016: application not found","error_codes":[700016],` +
				`"timestamp":"2024-05-03 12:00:00Z","trace_id":"trace-1","correlation_id":"corr-1"}`)

			err := client.mapError(orig)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.reason, authErr.Reason)
			assert.Equal(t, []int{700016}, authErr.ErrorCodes)
			assert.Equal(t, "trace-1", authErr.TraceID)
		})
	}
}

func TestMapError_UnknownAuthReasonPassesThrough(t *testing.T) {
	client := newTestClient(t)

	orig := errors.New(`unable to get auth: {"error":"invalid_request","error_description":"bad request"}`)

	err := client.mapError(orig)
	assert.Same(t, orig, err)
}

func TestMapError_InvalidSiteURL(t *testing.T) {
	client := newTestClient(t)

	err := client.mapError(errors.New("Acquire app-only access token failed."))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSiteURL)
	assert.Contains(t, err.Error(), "contoso.sharepoint.com")
}

func TestMapError_UnrecognizedPassesThrough(t *testing.T) {
	client := newTestClient(t)

	tests := []error{
		errors.New("dial tcp: lookup contoso.sharepoint.com: no such host"),
		errors.New("unable to request api: 500 Internal Server Error :: <html>not json</html>"),
		errors.New(`{"error":{"code":"itemNotFound"}}`), // object-form error without the packed code
	}

	for _, orig := range tests {
		assert.Same(t, orig, client.mapError(orig))
	}
}

func TestMapError_Nil(t *testing.T) {
	client := newTestClient(t)

	assert.NoError(t, client.mapError(nil))
}

func TestParseODataError_TrailingText(t *testing.T) {
	body := `prefix {"odata.error":{"code":"-1, System.ArgumentException","message":{"lang":"en-US","value":"nope"}}} trailing garbage`

	code, exception, message, detail, ok := parseODataError(body)
	require.True(t, ok)
	assert.Equal(t, "-1", code)
	assert.Equal(t, "System.ArgumentException", exception)
	assert.Equal(t, "nope", message)
	assert.NotContains(t, detail, "trailing")
}
