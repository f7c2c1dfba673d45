package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// writeConfig writes a config file into dir and returns its path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad verifies JSONC parsing, including comments and trailing commas.
func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ProjectFileName, `{
		// rendering density
		"resolution": 150,
		"method": "pdftoppm",
		"keepImages": true,
		"dockerImage": "example/magick:7", // containerized fallback
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 150, cfg.Resolution)
	assert.Equal(t, "pdftoppm", cfg.Method)
	assert.True(t, cfg.KeepImages)
	assert.Equal(t, "example/magick:7", cfg.DockerImage)
}

// TestLoadRejectsBadValues verifies validation failures name the file.
func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	t.Run("bad resolution", func(t *testing.T) {
		path := writeConfig(t, dir, "res.jsonc", `{"resolution": 9999}`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "res.jsonc")
	})

	t.Run("bad method", func(t *testing.T) {
		path := writeConfig(t, dir, "method.jsonc", `{"method": "soffice"}`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		path := writeConfig(t, dir, "broken.jsonc", `{resolution`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}

// TestDiscover verifies the per-project file wins and that a missing
// file yields an empty config rather than an error.
func TestDiscover(t *testing.T) {
	t.Run("project file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ProjectFileName, `{"resolution": 96}`)

		cfg, err := Discover(dir)
		require.NoError(t, err)
		assert.Equal(t, 96, cfg.Resolution)
	})

	t.Run("FindFile reports the path", func(t *testing.T) {
		dir := t.TempDir()
		want := writeConfig(t, dir, ProjectFileName, `{}`)

		got, ok := FindFile(dir)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("no file anywhere", func(t *testing.T) {
		// Point HOME at an empty directory so a real user config does
		// not leak into the test.
		t.Setenv("HOME", t.TempDir())

		cfg, err := Discover(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})
}

// TestApply verifies flag-over-config precedence: set option fields are
// never overwritten.
func TestApply(t *testing.T) {
	cfg := &Config{
		Resolution:  150,
		Method:      "docker",
		KeepImages:  true,
		WorkDir:     "/tmp/pages",
		DockerImage: "example/magick:7",
	}

	t.Run("fills unset fields", func(t *testing.T) {
		opts := model.ConvertOptions{}
		cfg.Apply(&opts)

		assert.Equal(t, 150, opts.Resolution)
		assert.Equal(t, model.MethodDocker, opts.Method)
		assert.True(t, opts.KeepImages)
		assert.Equal(t, "/tmp/pages", opts.WorkDir)
		assert.Equal(t, "example/magick:7", opts.DockerImage)
	})

	t.Run("keeps explicit fields", func(t *testing.T) {
		opts := model.ConvertOptions{
			Resolution: 600,
			Method:     model.MethodImageMagick,
			WorkDir:    "/elsewhere",
		}
		cfg.Apply(&opts)

		assert.Equal(t, 600, opts.Resolution)
		assert.Equal(t, model.MethodImageMagick, opts.Method)
		assert.Equal(t, "/elsewhere", opts.WorkDir)
	})
}
