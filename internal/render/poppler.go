package render

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// PopplerRenderer rasterizes pages with poppler's pdftoppm. It is the
// second choice after ImageMagick: ubiquitous on Linux (poppler-utils)
// and fast, but not installed by default on macOS or Windows.
type PopplerRenderer struct{}

// Method identifies this backend.
func (r *PopplerRenderer) Method() model.ConversionMethod {
	return model.MethodPoppler
}

// Available checks that pdftoppm is on PATH.
func (r *PopplerRenderer) Available(ctx context.Context) error {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return fmt.Errorf("pdftoppm not found on PATH (install poppler-utils)")
	}
	return nil
}

// Render runs `pdftoppm -png -r N [-f first] [-l last] input.pdf outDir/page`.
// pdftoppm numbers its output files 1-based and zero-pads them to the
// width of the document's page count.
func (r *PopplerRenderer) Render(ctx context.Context, pdfPath, outDir string, opts model.ConvertOptions) ([]string, error) {
	args := popplerArgs(pdfPath, outDir, opts)
	cmd := exec.CommandContext(ctx, "pdftoppm", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("pdftoppm failed: %s", strings.TrimSpace(string(out))),
			err,
		)
	}

	return collectImages(outDir)
}

// popplerArgs builds the pdftoppm argument list. Page numbers are
// 1-based and the -f/-l bounds are inclusive.
func popplerArgs(pdfPath, outDir string, opts model.ConvertOptions) []string {
	args := []string{"-png", "-r", strconv.Itoa(opts.Resolution)}

	first := opts.FirstPage
	if first < 1 {
		first = 1
	}
	if first > 1 {
		args = append(args, "-f", strconv.Itoa(first))
	}
	if opts.PageCount > 0 {
		args = append(args, "-l", strconv.Itoa(first+opts.PageCount-1))
	}

	return append(args, pdfPath, filepath.Join(outDir, "page"))
}
