package sp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteCount_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ByteCount
	}{
		{"number", `1024`, 1024},
		{"quoted number", `"262144000"`, 262144000},
		{"zero", `0`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ByteCount
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileInfo_Unmarshal(t *testing.T) {
	body := `{
		"Name": "report.pdf",
		"ServerRelativeUrl": "/sites/dev/Shared Documents/report.pdf",
		"Length": "52429",
		"UniqueId": "a2f1c9e0-0000-4000-8000-000000000001",
		"TimeCreated": "2024-05-03T12:00:00Z",
		"TimeLastModified": "2024-05-04T08:30:00Z",
		"Exists": true
	}`

	var info FileInfo
	require.NoError(t, json.Unmarshal([]byte(body), &info))

	assert.Equal(t, "report.pdf", info.Name)
	assert.Equal(t, "/sites/dev/Shared Documents/report.pdf", info.ServerRelativeURL)
	assert.Equal(t, ByteCount(52429), info.Length)
	assert.True(t, info.Exists)
	assert.Equal(t, 2024, info.TimeCreated.Year())
}

func TestFolderInfo_UnmarshalWithExpansions(t *testing.T) {
	body := `{
		"Name": "docs",
		"ServerRelativeUrl": "/sites/dev/docs",
		"ItemCount": 3,
		"Files": [{"Name": "a.txt", "ServerRelativeUrl": "/sites/dev/docs/a.txt"}],
		"Folders": [{"Name": "sub", "ServerRelativeUrl": "/sites/dev/docs/sub"}]
	}`

	var info FolderInfo
	require.NoError(t, json.Unmarshal([]byte(body), &info))

	assert.Equal(t, 3, info.ItemCount)
	require.Len(t, info.Files, 1)
	require.Len(t, info.Folders, 1)
	assert.Equal(t, "a.txt", info.Files[0].Name)
	assert.Equal(t, "sub", info.Folders[0].Name)
}

func TestListInfo_Unmarshal(t *testing.T) {
	body := `{
		"Id": "4f2a0000-0000-4000-8000-00000000beef",
		"Title": "Projects",
		"Description": "project tracker",
		"BaseTemplate": 100,
		"ItemCount": 12,
		"Hidden": false
	}`

	var info ListInfo
	require.NoError(t, json.Unmarshal([]byte(body), &info))

	assert.Equal(t, "Projects", info.Title)
	assert.Equal(t, 100, info.BaseTemplate)
	assert.Equal(t, 12, info.ItemCount)
	assert.False(t, info.Hidden)
}
