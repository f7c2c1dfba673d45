package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// ProjectFileName is the per-project config file looked up in the
// current working directory.
const ProjectFileName = ".pagedeck.jsonc"

// Config holds the file-settable defaults for conversions. All fields
// are optional; the zero value means "not set" and leaves the built-in
// default in place.
type Config struct {
	// Resolution is the default rendering density in DPI.
	Resolution int `json:"resolution,omitempty"`

	// Method is the default renderer backend name.
	Method string `json:"method,omitempty"`

	// OutputDir redirects generated decks into a fixed directory
	// instead of next to the input PDF. It applies to the convert and
	// gui commands; batch jobs name their outputs in the manifest.
	OutputDir string `json:"outputDir,omitempty"`

	// KeepImages preserves rendered page images after conversion.
	KeepImages bool `json:"keepImages,omitempty"`

	// WorkDir is the workspace directory used when keepImages is set.
	WorkDir string `json:"workDir,omitempty"`

	// DockerImage overrides the image used by the docker renderer.
	DockerImage string `json:"dockerImage,omitempty"`
}

// Load reads and parses a config file. Comments and trailing commas
// are stripped before parsing, so the file may be annotated freely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Unknown fields are silently ignored so a config written for a
	// newer version still loads.
	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// FindFile returns the path of the effective config file for dir: the
// per-project file first, then the per-user file. ok is false when
// neither exists.
func FindFile(dir string) (path string, ok bool) {
	candidates := []string{filepath.Join(dir, ProjectFileName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "pagedeck", "config.jsonc"))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// Discover finds and loads the effective config for dir. Returns an
// empty Config when no file exists; a file that exists but fails to
// parse is an error.
func Discover(dir string) (*Config, error) {
	path, ok := FindFile(dir)
	if !ok {
		return &Config{}, nil
	}
	return Load(path)
}

// validate rejects values that would fail later anyway, so the error
// names the config file instead of a flag.
func (c *Config) validate() error {
	if c.Resolution != 0 && (c.Resolution < model.MinResolution || c.Resolution > model.MaxResolution) {
		return fmt.Errorf("resolution %d out of range (%d-%d)",
			c.Resolution, model.MinResolution, model.MaxResolution)
	}
	if c.Method != "" {
		if _, err := model.ParseConversionMethod(c.Method); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies the set fields onto opts, leaving opts fields that are
// already set untouched. Flags are applied after this, so precedence
// ends up flags > config > defaults.
func (c *Config) Apply(opts *model.ConvertOptions) {
	if opts.Resolution == 0 && c.Resolution != 0 {
		opts.Resolution = c.Resolution
	}
	if (opts.Method == "" || opts.Method == model.MethodAuto) && c.Method != "" {
		// validate() already checked the name.
		m, err := model.ParseConversionMethod(c.Method)
		if err == nil {
			opts.Method = m
		}
	}
	if !opts.KeepImages && c.KeepImages {
		opts.KeepImages = true
	}
	if opts.WorkDir == "" && c.WorkDir != "" {
		opts.WorkDir = c.WorkDir
	}
	if opts.DockerImage == "" && c.DockerImage != "" {
		opts.DockerImage = c.DockerImage
	}
}
