package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHumanSize verifies the binary-unit formatting across magnitudes.
func TestHumanSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{532, "532 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{3145728, "3.0 MiB"},
		{5368709120, "5.0 GiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanSize(tt.bytes), "bytes %d", tt.bytes)
	}
}
