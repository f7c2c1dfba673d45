package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mmr-tortoise/pagedeck/internal/deck"
	"github.com/mmr-tortoise/pagedeck/internal/model"
	"github.com/mmr-tortoise/pagedeck/internal/pdfmeta"
	"github.com/mmr-tortoise/pagedeck/internal/render"
)

// Request describes one conversion.
type Request struct {
	// Input is the source PDF path.
	Input string

	// Output is the target .pptx path. Empty derives it from Input.
	Output string

	// Opts are the conversion parameters. Zero fields are defaulted
	// by Validate.
	Opts model.ConvertOptions

	// Logf receives progress messages when set. The CLI wires this to
	// its verbose logger; the UI to its status line.
	Logf func(format string, args ...any)
}

// Run executes the pipeline and returns a summary of what was built.
//
// Geometry detection is best-effort: when the PDF's metadata cannot be
// read the deck falls back to 4:3 and the renderers get a chance to
// fail with their own, usually better, diagnostics.
func Run(ctx context.Context, req Request) (*model.ConvertResult, error) {
	start := time.Now()
	logf := req.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	opts := req.Opts
	if err := opts.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "invalid conversion options", err)
	}

	if _, err := os.Stat(req.Input); err != nil {
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("input PDF not found: %s", req.Input),
			err,
		)
	}

	output := req.Output
	if output == "" {
		output = model.DefaultOutputPath(req.Input)
	}

	ratio, err := resolveRatio(req.Input, &opts, logf)
	if err != nil {
		return nil, err
	}
	logf("using %s slide geometry", ratio)

	renderer, err := render.Select(ctx, opts.Method)
	if err != nil {
		return nil, err
	}
	logf("rendering with %s at %d dpi", renderer.Method(), opts.Resolution)

	imageDir, cleanup, err := imageWorkspace(output, opts)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	images, err := renderer.Render(ctx, req.Input, imageDir, opts)
	if err != nil {
		return nil, err
	}
	logf("rendered %d page(s)", len(images))

	title := strings.TrimSuffix(filepath.Base(req.Input), filepath.Ext(req.Input))
	slides, err := deck.BuildFile(output, title, ratio, images)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to build deck %s", output),
			err,
		)
	}

	result := &model.ConvertResult{
		InputPath:  req.Input,
		OutputPath: output,
		Slides:     slides,
		Method:     renderer.Method(),
		Ratio:      ratio,
		Duration:   time.Since(start),
	}
	if opts.KeepImages {
		result.ImageDir = imageDir
	}
	return result, nil
}

// resolveRatio determines the slide geometry and validates the page
// range against the document where possible.
func resolveRatio(input string, opts *model.ConvertOptions, logf func(string, ...any)) (model.AspectRatio, error) {
	explicit := opts.Ratio != "" && opts.Ratio != model.RatioCustom

	info, err := pdfmeta.ReadInfo(input)
	if err != nil {
		// The renderers parse the PDF themselves, so a metadata read
		// failure downgrades detection instead of aborting.
		if explicit {
			return opts.Ratio, nil
		}
		logf("cannot read PDF metadata (%v), assuming 4:3", err)
		return model.RatioStandard, nil
	}

	// The range check applies whether the ratio is explicit or detected.
	if opts.FirstPage > info.PageCount {
		return "", model.NewCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("first page %d is beyond the end of the document (%d pages)",
				opts.FirstPage, info.PageCount),
		)
	}

	if explicit {
		return opts.Ratio, nil
	}
	if !opts.DetectRatio {
		return model.RatioStandard, nil
	}
	if info.Ratio == model.RatioCustom {
		logf("page geometry %.3f matches no standard ratio, using 4:3 slides", info.RatioValue)
	}
	return info.Ratio, nil
}

// imageWorkspace returns the directory page images are rendered into
// and a cleanup func. Temp directories are removed after the build;
// keep-images workspaces persist and the cleanup is a no-op.
func imageWorkspace(output string, opts model.ConvertOptions) (string, func(), error) {
	if opts.KeepImages {
		dir := opts.WorkDir
		if dir == "" {
			dir = strings.TrimSuffix(output, filepath.Ext(output)) + "_pages"
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
		}
		// A reused workspace may still hold pages from an earlier run.
		// The deck is built from every numbered PNG in the directory,
		// so stale pages would become extra slides.
		if err := clearPageImages(dir); err != nil {
			return "", nil, err
		}
		return dir, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "pagedeck-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

// clearPageImages removes the numbered PNG files a renderer left in dir
// on a previous run. Other files are untouched.
func clearPageImages(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read image directory %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		if !hasTrailingNumber(e.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("failed to remove stale page image %s: %w", e.Name(), err)
		}
	}
	return nil
}

// hasTrailingNumber reports whether the filename stem ends in a digit,
// the pattern all renderer backends use for page images.
func hasTrailingNumber(name string) bool {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		return false
	}
	last := stem[len(stem)-1]
	return last >= '0' && last <= '9'
}
