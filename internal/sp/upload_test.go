package sp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseChunked(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		chunkSize int64
		want      bool
	}{
		{"empty file", 0, DefaultChunkSize, false},
		{"below chunk", DefaultChunkSize - 1, DefaultChunkSize, false},
		{"exactly chunk", DefaultChunkSize, DefaultChunkSize, false},
		{"one over chunk", DefaultChunkSize + 1, DefaultChunkSize, true},
		{"at policy ceiling", MaxChunkSize, MaxChunkSize, false},
		{"over policy ceiling", MaxChunkSize + 1, MaxChunkSize, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, useChunked(tt.total, tt.chunkSize))
		})
	}
}

func TestUploadFile_ChunkSizeOverLimit(t *testing.T) {
	client := newTestClient(t)

	local := filepath.Join(t.TempDir(), "payload.bin")
	require.NoError(t, os.WriteFile(local, []byte("data"), 0o644))

	// Fails on the local policy check; resolving the folder would need
	// a network.
	_, err := client.UploadFile(context.Background(), "/docs", local, false, MaxChunkSize+1, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSizeLimit)
}

func TestUploadFile_MissingLocalFile(t *testing.T) {
	client := newTestClient(t)

	_, err := client.UploadFile(context.Background(), "/docs", filepath.Join(t.TempDir(), "absent.bin"), false, 0, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "0.00 KB", humanBytes(0))
	assert.Equal(t, "1.00 KB", humanBytes(1024))
	assert.Equal(t, "512.00 KB", humanBytes(512*1024))
	assert.Equal(t, "1.00 MB", humanBytes(1024*1024))
	assert.Equal(t, "2.50 MB", humanBytes(2*1024*1024+512*1024))
}
