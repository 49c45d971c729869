package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spgo/sharepoint-go/internal/sp"
)

func TestRunRmdir_RequiresForce(t *testing.T) {
	cmd := newRmdirCmd()

	err := runRmdir(cmd, []string{"/sites/dev/docs"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}

func TestPrintFolderJSON_SortedFoldersFirst(t *testing.T) {
	folder := &sp.FolderInfo{
		Name: "docs", ServerRelativeURL: "/docs",
		Files: []sp.FileInfo{
			{Name: "z.txt", ServerRelativeURL: "/docs/z.txt"},
			{Name: "a.txt", ServerRelativeURL: "/docs/a.txt"},
		},
		Folders: []sp.FolderInfo{
			{Name: "beta", ServerRelativeURL: "/docs/beta"},
			{Name: "alpha", ServerRelativeURL: "/docs/alpha"},
		},
	}

	sortFolderEntries(folder)

	var buf bytes.Buffer
	require.NoError(t, printFolderJSON(&buf, folder))

	var out []lsJSONItem
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	// Same ordering contract as the table output: folders first, each
	// group alphabetical.
	names := make([]string, len(out))
	for i := range out {
		names[i] = out[i].Name
	}

	assert.Equal(t, []string{"alpha", "beta", "a.txt", "z.txt"}, names)
	assert.True(t, out[0].IsFolder)
	assert.False(t, out[2].IsFolder)
}

func TestNewPutFolderCmd_OverwriteDefaultsOff(t *testing.T) {
	cmd := newPutFolderCmd()

	overwrite, err := cmd.Flags().GetBool("overwrite")
	require.NoError(t, err)
	assert.False(t, overwrite)
}

func TestNewListCreateCmd_TemplateDefault(t *testing.T) {
	cmd := newListCreateCmd()

	template, err := cmd.Flags().GetString("template")
	require.NoError(t, err)
	assert.Equal(t, "GenericList", template)
}

func TestNewListCreateCmd_LongNamesTemplates(t *testing.T) {
	cmd := newListCreateCmd()

	assert.Contains(t, cmd.Long, "DocumentLibrary")
	assert.Contains(t, cmd.Long, "IssueTracking")
}
