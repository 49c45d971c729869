package sp

import (
	"bytes"
	"strconv"
	"time"
)

// ByteCount is an int64 that tolerates both JSON number and string
// encodings. SharePoint serializes Edm.Int64 properties as strings in
// some OData modes and as numbers in others.
type ByteCount int64

func (b *ByteCount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*b = 0
		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}

	*b = ByteCount(n)

	return nil
}

// FileInfo is a file descriptor normalized from the vendor response.
// Field names follow the SharePoint REST property names so the structs
// unmarshal straight from gosip's Normalized() payloads.
type FileInfo struct {
	Name              string    `json:"Name"`
	ServerRelativeURL string    `json:"ServerRelativeUrl"`
	Length            ByteCount `json:"Length"`
	UniqueID          string    `json:"UniqueId"`
	TimeCreated       time.Time `json:"TimeCreated"`
	TimeLastModified  time.Time `json:"TimeLastModified"`
	Exists            bool      `json:"Exists"`
}

// FolderInfo is a folder descriptor. Files and Folders are populated
// only when the folder was fetched with the matching expansions.
type FolderInfo struct {
	Name              string    `json:"Name"`
	ServerRelativeURL string    `json:"ServerRelativeUrl"`
	ItemCount         int       `json:"ItemCount"`
	UniqueID          string    `json:"UniqueId"`
	TimeCreated       time.Time `json:"TimeCreated"`
	TimeLastModified  time.Time `json:"TimeLastModified"`
	Exists            bool      `json:"Exists"`

	Files   []FileInfo   `json:"Files"`
	Folders []FolderInfo `json:"Folders"`
}

// ListInfo is a list descriptor.
type ListInfo struct {
	ID           string `json:"Id"`
	Title        string `json:"Title"`
	Description  string `json:"Description"`
	BaseTemplate int    `json:"BaseTemplate"`
	ItemCount    int    `json:"ItemCount"`
	Hidden       bool   `json:"Hidden"`
}
