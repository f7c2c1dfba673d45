package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// Renderer turns the pages of a PDF into PNG images.
//
// Available reports whether the backend can run on this machine; the
// returned error explains what is missing (binary not on PATH, version
// too old, Docker daemon unreachable). Render writes one PNG per page
// into outDir and returns the image paths sorted by page number.
type Renderer interface {
	// Method identifies the backend.
	Method() model.ConversionMethod

	// Available returns nil when the backend is usable, or an error
	// describing why it is not.
	Available(ctx context.Context) error

	// Render rasterizes pdfPath into outDir at opts.Resolution DPI,
	// honoring the FirstPage/PageCount range.
	Render(ctx context.Context, pdfPath, outDir string, opts model.ConvertOptions) ([]string, error)
}

// autoOrder is the probe order for MethodAuto: host renderers first
// (fast, no daemon needed), Docker as the last resort.
var autoOrder = []model.ConversionMethod{
	model.MethodImageMagick,
	model.MethodPoppler,
	model.MethodDocker,
}

// New returns the renderer for an explicit (non-auto) method.
func New(method model.ConversionMethod) (Renderer, error) {
	switch method {
	case model.MethodImageMagick:
		return &ImageMagickRenderer{}, nil
	case model.MethodPoppler:
		return &PopplerRenderer{}, nil
	case model.MethodDocker:
		return &DockerRenderer{}, nil
	default:
		return nil, fmt.Errorf("no renderer for method %q", method)
	}
}

// Select resolves a ConversionMethod to a usable Renderer.
//
// For an explicit method the backend is probed once and its error is
// returned verbatim, so the user learns exactly why their chosen tool
// cannot run. For MethodAuto the backends are probed in autoOrder and
// the first available one wins; when none is, the combined probe errors
// are reported so the user can fix any of them.
func Select(ctx context.Context, method model.ConversionMethod) (Renderer, error) {
	if method != model.MethodAuto {
		r, err := New(method)
		if err != nil {
			return nil, err
		}
		if err := r.Available(ctx); err != nil {
			return nil, model.WrapCLIError(
				model.ExitGeneralError,
				fmt.Sprintf("renderer %q is not available", method),
				err,
			)
		}
		return r, nil
	}

	var reasons []string
	for _, m := range autoOrder {
		r, err := New(m)
		if err != nil {
			continue
		}
		if err := r.Available(ctx); err != nil {
			reasons = append(reasons, fmt.Sprintf("%s: %v", m, err))
			continue
		}
		return r, nil
	}

	return nil, model.NewCLIError(
		model.ExitGeneralError,
		"no PDF renderer available — install ImageMagick or poppler-utils, or start Docker\n  "+
			strings.Join(reasons, "\n  "),
	)
}

// Probe runs Available on every backend and returns the per-method
// results. Used by the check command to print a prerequisite report.
func Probe(ctx context.Context) map[model.ConversionMethod]error {
	results := make(map[model.ConversionMethod]error, len(autoOrder))
	for _, m := range autoOrder {
		r, err := New(m)
		if err != nil {
			results[m] = err
			continue
		}
		results[m] = r.Available(ctx)
	}
	return results
}

// collectImages lists the PNG files a renderer wrote into dir, sorted by
// the page number embedded in the filename. Lexical sorting is wrong
// here: pdftoppm pads page numbers to the width of the page count, so
// "page-2.png" and "page-10.png" can coexist only with numeric order.
func collectImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory %s: %w", dir, err)
	}

	type page struct {
		path string
		num  int
	}
	var pages []page
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		num, ok := trailingNumber(e.Name())
		if !ok {
			continue
		}
		pages = append(pages, page{path: filepath.Join(dir, e.Name()), num: num})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("renderer produced no page images in %s", dir)
	}

	sort.Slice(pages, func(i, j int) bool {
		return pages[i].num < pages[j].num
	})

	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.path
	}
	return paths, nil
}

// trailingNumber extracts the digit run immediately before the file
// extension, e.g. "page_0004.png" → 4 and "page-12.png" → 12.
func trailingNumber(name string) (int, bool) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	end := len(stem)
	start := end
	for start > 0 && stem[start-1] >= '0' && stem[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0, false
	}
	n, err := strconv.Atoi(stem[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
