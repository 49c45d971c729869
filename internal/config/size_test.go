package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"0", 0},
		{"1024", 1024},
		{"1KB", 1000},
		{"1KiB", 1024},
		{"10MiB", 10 * 1024 * 1024},
		{"250MiB", 250 * 1024 * 1024},
		{"1.5GiB", 1536 * 1024 * 1024},
		{"2GB", 2_000_000_000},
		{"100B", 100},
		{" 5MiB ", 5 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSize_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "MiB", "-5", "-1KiB", "1XB"} {
		t.Run(in, func(t *testing.T) {
			_, err := parseSize(in)
			assert.Error(t, err)
		})
	}
}
