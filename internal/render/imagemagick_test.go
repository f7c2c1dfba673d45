package render

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// TestParseMagickVersion covers both major release lines and malformed
// output.
func TestParseMagickVersion(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		wantMajor int
		wantMinor int
		wantErr   bool
	}{
		{
			name:      "ImageMagick 7",
			output:    "Version: ImageMagick 7.1.1-21 Q16-HDRI x86_64 21834\nCopyright: (C) 1999 ImageMagick Studio LLC\n",
			wantMajor: 7,
			wantMinor: 1,
		},
		{
			name:      "ImageMagick 6",
			output:    "Version: ImageMagick 6.9.12-98 Q16 x86_64 18038\n",
			wantMajor: 6,
			wantMinor: 9,
		},
		{
			name:    "not ImageMagick",
			output:  "GraphicsMagick 1.3.40 2023-01-14 Q16\n",
			wantErr: true,
		},
		{
			name:    "empty",
			output:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			major, minor, err := parseMagickVersion(tt.output)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMajor, major)
			assert.Equal(t, tt.wantMinor, minor)
		})
	}
}

// TestMagickInput verifies the 0-based inclusive index suffix for the
// three range shapes: full document, bounded range, open-ended range.
func TestMagickInput(t *testing.T) {
	tests := []struct {
		name string
		opts model.ConvertOptions
		want string
	}{
		{
			name: "all pages",
			opts: model.ConvertOptions{},
			want: "deck.pdf",
		},
		{
			name: "first page zero means all",
			opts: model.ConvertOptions{FirstPage: 1},
			want: "deck.pdf",
		},
		{
			name: "bounded range from start",
			opts: model.ConvertOptions{FirstPage: 1, PageCount: 3},
			want: "deck.pdf[0-2]",
		},
		{
			name: "bounded range mid-document",
			opts: model.ConvertOptions{FirstPage: 4, PageCount: 2},
			want: "deck.pdf[3-4]",
		},
		{
			name: "open-ended from page 5",
			opts: model.ConvertOptions{FirstPage: 5},
			want: "deck.pdf[4--1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, magickInput("deck.pdf", tt.opts))
		})
	}
}

// TestMagickArgs verifies the full argument list shape.
func TestMagickArgs(t *testing.T) {
	opts := model.ConvertOptions{Resolution: 150, FirstPage: 2, PageCount: 2}
	args := magickArgs("in.pdf", "out", opts)

	assert.Equal(t, []string{
		"-density", "150",
		"in.pdf[1-2]",
		filepath.Join("out", "page_%04d.png"),
	}, args)
}
