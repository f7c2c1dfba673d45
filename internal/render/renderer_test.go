package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// TestNew verifies the method-to-renderer mapping and rejection of
// non-concrete methods.
func TestNew(t *testing.T) {
	tests := []struct {
		method  model.ConversionMethod
		wantErr bool
	}{
		{model.MethodImageMagick, false},
		{model.MethodPoppler, false},
		{model.MethodDocker, false},
		{model.MethodAuto, true},
		{"soffice", true},
	}

	for _, tt := range tests {
		r, err := New(tt.method)
		if tt.wantErr {
			assert.Error(t, err, "method %q", tt.method)
			continue
		}
		require.NoError(t, err, "method %q", tt.method)
		assert.Equal(t, tt.method, r.Method())
	}
}

// TestTrailingNumber covers the filename patterns the three backends
// actually produce, plus names with no page number.
func TestTrailingNumber(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"page_0004.png", 4, true},
		{"page-12.png", 12, true},
		{"page-02.png", 2, true},
		{"page1.png", 1, true},
		{"page.png", 0, false},
		{"cover.png", 0, false},
		{"7.png", 7, true},
	}

	for _, tt := range tests {
		got, ok := trailingNumber(tt.name)
		assert.Equal(t, tt.wantOK, ok, "name %q", tt.name)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "name %q", tt.name)
		}
	}
}

// TestCollectImages verifies numeric ordering across mixed zero-padding
// and that non-PNG files are ignored.
func TestCollectImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"page-10.png", "page-2.png", "page-1.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	paths, err := collectImages(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	assert.Equal(t, filepath.Join(dir, "page-1.png"), paths[0])
	assert.Equal(t, filepath.Join(dir, "page-2.png"), paths[1])
	assert.Equal(t, filepath.Join(dir, "page-10.png"), paths[2])
}

// TestCollectImagesEmpty verifies that an empty render output is an
// error rather than a zero-slide deck.
func TestCollectImagesEmpty(t *testing.T) {
	_, err := collectImages(t.TempDir())
	assert.Error(t, err)
}
