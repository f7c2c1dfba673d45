package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// Defaults holds manifest-wide settings applied to every job that does
// not override them.
type Defaults struct {
	Resolution int    `yaml:"resolution,omitempty"`
	Method     string `yaml:"method,omitempty"`
	Ratio      string `yaml:"ratio,omitempty"`
	KeepImages bool   `yaml:"keepImages,omitempty"`
}

// Job is one conversion in a batch manifest.
type Job struct {
	// Input is the source PDF path, relative paths resolved against
	// the manifest file's directory.
	Input string `yaml:"input"`

	// Output is the target .pptx path. Empty derives it from Input.
	Output string `yaml:"output,omitempty"`

	Resolution int    `yaml:"resolution,omitempty"`
	Method     string `yaml:"method,omitempty"`
	Ratio      string `yaml:"ratio,omitempty"`
	FirstPage  int    `yaml:"firstPage,omitempty"`
	PageCount  int    `yaml:"pageCount,omitempty"`
	KeepImages bool   `yaml:"keepImages,omitempty"`
}

// Manifest is a parsed batch file.
type Manifest struct {
	Defaults Defaults `yaml:"defaults,omitempty"`
	Jobs     []Job    `yaml:"jobs"`
}

// Load reads and parses a manifest file, resolving each job's relative
// paths against the manifest's directory so the batch can be run from
// anywhere.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if len(m.Jobs) == 0 {
		return nil, fmt.Errorf("manifest %s defines no jobs", path)
	}

	baseDir := filepath.Dir(path)
	for i := range m.Jobs {
		if m.Jobs[i].Input == "" {
			return nil, fmt.Errorf("manifest %s: job %d has no input", path, i+1)
		}
		if !filepath.IsAbs(m.Jobs[i].Input) {
			m.Jobs[i].Input = filepath.Join(baseDir, m.Jobs[i].Input)
		}
		if m.Jobs[i].Output != "" && !filepath.IsAbs(m.Jobs[i].Output) {
			m.Jobs[i].Output = filepath.Join(baseDir, m.Jobs[i].Output)
		}
	}

	return &m, nil
}

// Options merges a job with the manifest defaults into ConvertOptions.
// Precedence is job > defaults > built-in defaults; Validate fills the
// latter and catches bad values.
func (m *Manifest) Options(job Job) (model.ConvertOptions, error) {
	opts := model.ConvertOptions{
		Resolution: job.Resolution,
		FirstPage:  job.FirstPage,
		PageCount:  job.PageCount,
		KeepImages: job.KeepImages || m.Defaults.KeepImages,
	}

	if opts.Resolution == 0 {
		opts.Resolution = m.Defaults.Resolution
	}

	methodName := job.Method
	if methodName == "" {
		methodName = m.Defaults.Method
	}
	if methodName != "" {
		method, err := model.ParseConversionMethod(methodName)
		if err != nil {
			return model.ConvertOptions{}, fmt.Errorf("job %s: %w", job.Input, err)
		}
		opts.Method = method
	}

	ratioName := job.Ratio
	if ratioName == "" {
		ratioName = m.Defaults.Ratio
	}
	switch ratioName {
	case "", "auto":
		opts.DetectRatio = true
	default:
		ratio, err := model.ParseAspectRatio(ratioName)
		if err != nil {
			return model.ConvertOptions{}, fmt.Errorf("job %s: %w", job.Input, err)
		}
		opts.Ratio = ratio
	}

	if err := opts.Validate(); err != nil {
		return model.ConvertOptions{}, fmt.Errorf("job %s: %w", job.Input, err)
	}
	return opts, nil
}

// OutputPath returns the job's target path, derived from the input
// when not set explicitly.
func (j Job) OutputPath() string {
	if j.Output != "" {
		return j.Output
	}
	return model.DefaultOutputPath(j.Input)
}
