package model

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseConversionMethod verifies parsing of valid method names,
// including whitespace and case normalization, and rejection of unknowns.
func TestParseConversionMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    ConversionMethod
		wantErr bool
	}{
		{"auto", MethodAuto, false},
		{"imagemagick", MethodImageMagick, false},
		{"pdftoppm", MethodPoppler, false},
		{"docker", MethodDocker, false},
		{"  ImageMagick  ", MethodImageMagick, false},
		{"libreoffice", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseConversionMethod(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q should be rejected", tt.input)
			continue
		}
		require.NoError(t, err, "input %q should parse", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

// TestClassifyRatio exercises the tolerance bands around the two standard
// geometries, including their boundaries.
func TestClassifyRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  AspectRatio
	}{
		{"exact 4:3", 0.75, RatioStandard},
		{"lower 4:3 bound", 0.74, RatioStandard},
		{"upper 4:3 bound", 0.76, RatioStandard},
		{"exact 16:9", 0.5625, RatioWidescreen},
		{"lower 16:9 bound", 0.55, RatioWidescreen},
		{"upper 16:9 bound", 0.57, RatioWidescreen},
		{"A4 portrait", 1.414, RatioCustom},
		{"just outside 4:3", 0.77, RatioCustom},
		{"just outside 16:9", 0.58, RatioCustom},
		{"square", 1.0, RatioCustom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRatio(tt.ratio))
		})
	}
}

// TestSlideSize verifies the EMU dimensions per ratio, with custom pages
// falling back to the 4:3 geometry.
func TestSlideSize(t *testing.T) {
	cx, cy := RatioStandard.SlideSize()
	assert.Equal(t, int64(9144000), cx)
	assert.Equal(t, int64(6858000), cy)

	cx, cy = RatioWidescreen.SlideSize()
	assert.Equal(t, int64(9144000), cx)
	assert.Equal(t, int64(5143500), cy)

	cx, cy = RatioCustom.SlideSize()
	assert.Equal(t, int64(9144000), cx)
	assert.Equal(t, int64(6858000), cy, "custom ratio should use 4:3 dimensions")
}

// TestConvertOptionsValidate covers defaulting and range checks.
func TestConvertOptionsValidate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := ConvertOptions{}
		require.NoError(t, opts.Validate())
		assert.Equal(t, DefaultResolution, opts.Resolution)
		assert.Equal(t, MethodAuto, opts.Method)
	})

	t.Run("resolution too low", func(t *testing.T) {
		opts := ConvertOptions{Resolution: 50}
		assert.Error(t, opts.Validate())
	})

	t.Run("resolution too high", func(t *testing.T) {
		opts := ConvertOptions{Resolution: 2400}
		assert.Error(t, opts.Validate())
	})

	t.Run("negative first page", func(t *testing.T) {
		opts := ConvertOptions{FirstPage: -1}
		assert.Error(t, opts.Validate())
	})

	t.Run("negative page count", func(t *testing.T) {
		opts := ConvertOptions{PageCount: -3}
		assert.Error(t, opts.Validate())
	})

	t.Run("bad method", func(t *testing.T) {
		opts := ConvertOptions{Method: "soffice"}
		assert.Error(t, opts.Validate())
	})

	t.Run("valid explicit options", func(t *testing.T) {
		opts := ConvertOptions{
			Resolution: 150,
			Method:     MethodPoppler,
			FirstPage:  2,
			PageCount:  5,
			Ratio:      RatioWidescreen,
		}
		assert.NoError(t, opts.Validate())
	})
}

// TestDefaultOutputPath verifies the stem + .pptx derivation.
func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/docs/report.pdf", "/docs/report.pptx"},
		{"slides.PDF", "slides.pptx"},
		{"no-extension", "no-extension.pptx"},
		{"/a/b.c/deck.pdf", "/a/b.c/deck.pptx"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultOutputPath(tt.input), "input %q", tt.input)
	}
}

// TestOutputPathIn verifies the output lands in the fixed directory
// regardless of where the input lives.
func TestOutputPathIn(t *testing.T) {
	assert.Equal(t, filepath.Join("/decks", "report.pptx"), OutputPathIn("/decks", "/docs/report.pdf"))
	assert.Equal(t, filepath.Join("out", "slides.pptx"), OutputPathIn("out", "slides.PDF"))
}

// TestCLIError verifies message formatting and error unwrapping.
func TestCLIError(t *testing.T) {
	base := errors.New("boom")

	wrapped := WrapCLIError(ExitGeneralError, "conversion failed", base)
	assert.Equal(t, "conversion failed: boom", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base), "Unwrap should expose the underlying error")

	plain := NewCLIError(ExitGeneralError, "no renderer available")
	assert.Equal(t, "no renderer available", plain.Error())
	assert.Nil(t, plain.Unwrap())
}
