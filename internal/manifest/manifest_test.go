package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// writeManifest writes a manifest file into a temp dir and returns its path.
func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad verifies parsing, path resolution against the manifest
// directory, and absolute paths passing through untouched.
func TestLoad(t *testing.T) {
	path := writeManifest(t, `
defaults:
  resolution: 150
  method: imagemagick
jobs:
  - input: slides/intro.pdf
  - input: /abs/deep-dive.pdf
    output: out/deep-dive.pptx
    firstPage: 2
    pageCount: 10
`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Jobs, 2)

	baseDir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(baseDir, "slides", "intro.pdf"), m.Jobs[0].Input)
	assert.Equal(t, "/abs/deep-dive.pdf", m.Jobs[1].Input)
	assert.Equal(t, filepath.Join(baseDir, "out", "deep-dive.pptx"), m.Jobs[1].Output)
	assert.Equal(t, 150, m.Defaults.Resolution)
}

// TestLoadRejects covers empty manifests and jobs without inputs.
func TestLoadRejects(t *testing.T) {
	t.Run("no jobs", func(t *testing.T) {
		_, err := Load(writeManifest(t, `defaults: {resolution: 150}`))
		assert.Error(t, err)
	})

	t.Run("job without input", func(t *testing.T) {
		_, err := Load(writeManifest(t, "jobs:\n  - output: x.pptx\n"))
		assert.Error(t, err)
	})

	t.Run("not yaml", func(t *testing.T) {
		_, err := Load(writeManifest(t, "jobs: [}{"))
		assert.Error(t, err)
	})
}

// TestOptions verifies job-over-defaults precedence and validation.
func TestOptions(t *testing.T) {
	m := &Manifest{
		Defaults: Defaults{Resolution: 150, Method: "imagemagick", Ratio: "16:9"},
	}

	t.Run("defaults apply", func(t *testing.T) {
		opts, err := m.Options(Job{Input: "a.pdf"})
		require.NoError(t, err)

		assert.Equal(t, 150, opts.Resolution)
		assert.Equal(t, model.MethodImageMagick, opts.Method)
		assert.Equal(t, model.RatioWidescreen, opts.Ratio)
		assert.False(t, opts.DetectRatio)
	})

	t.Run("job overrides defaults", func(t *testing.T) {
		opts, err := m.Options(Job{
			Input:      "b.pdf",
			Resolution: 600,
			Method:     "pdftoppm",
			Ratio:      "4:3",
			FirstPage:  3,
			PageCount:  2,
		})
		require.NoError(t, err)

		assert.Equal(t, 600, opts.Resolution)
		assert.Equal(t, model.MethodPoppler, opts.Method)
		assert.Equal(t, model.RatioStandard, opts.Ratio)
		assert.Equal(t, 3, opts.FirstPage)
		assert.Equal(t, 2, opts.PageCount)
	})

	t.Run("auto ratio enables detection", func(t *testing.T) {
		empty := &Manifest{}
		opts, err := empty.Options(Job{Input: "c.pdf", Ratio: "auto"})
		require.NoError(t, err)

		assert.True(t, opts.DetectRatio)
		assert.Equal(t, model.DefaultResolution, opts.Resolution)
	})

	t.Run("bad method is rejected", func(t *testing.T) {
		_, err := m.Options(Job{Input: "d.pdf", Method: "soffice"})
		assert.ErrorContains(t, err, "d.pdf")
	})

	t.Run("bad resolution is rejected", func(t *testing.T) {
		_, err := m.Options(Job{Input: "e.pdf", Resolution: 12})
		assert.Error(t, err)
	})
}

// TestOutputPath verifies explicit and derived outputs.
func TestOutputPath(t *testing.T) {
	assert.Equal(t, "out.pptx", Job{Input: "a.pdf", Output: "out.pptx"}.OutputPath())
	assert.Equal(t, "/x/a.pptx", Job{Input: "/x/a.pdf"}.OutputPath())
}
