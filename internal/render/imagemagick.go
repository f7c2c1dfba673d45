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

// minMagickMajor/minMagickMinor is the oldest ImageMagick that renders
// PDFs reliably with -density; 6.9 predates every current distro package.
const (
	minMagickMajor = 6
	minMagickMinor = 9
)

// ImageMagickRenderer rasterizes pages with the host ImageMagick install.
// ImageMagick 7 ships a unified `magick` binary; version 6 uses the
// classic `convert` name. Both accept the same arguments for this job.
type ImageMagickRenderer struct{}

// Method identifies this backend.
func (r *ImageMagickRenderer) Method() model.ConversionMethod {
	return model.MethodImageMagick
}

// Available checks that an ImageMagick binary is on PATH and at least
// version 6.9.
func (r *ImageMagickRenderer) Available(ctx context.Context) error {
	bin, err := magickBinary()
	if err != nil {
		return err
	}

	out, err := exec.CommandContext(ctx, bin, "-version").CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s -version failed: %w", bin, err)
	}

	major, minor, err := parseMagickVersion(string(out))
	if err != nil {
		return err
	}
	if major < minMagickMajor || (major == minMagickMajor && minor < minMagickMinor) {
		return fmt.Errorf("ImageMagick %d.%d is too old (need %d.%d or newer)",
			major, minor, minMagickMajor, minMagickMinor)
	}
	return nil
}

// Render runs `<magick|convert> -density N input.pdf[range] outDir/page_%04d.png`.
func (r *ImageMagickRenderer) Render(ctx context.Context, pdfPath, outDir string, opts model.ConvertOptions) ([]string, error) {
	bin, err := magickBinary()
	if err != nil {
		return nil, err
	}

	args := magickArgs(pdfPath, outDir, opts)
	cmd := exec.CommandContext(ctx, bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("%s failed: %s", bin, strings.TrimSpace(string(out))),
			err,
		)
	}

	return collectImages(outDir)
}

// magickBinary locates the ImageMagick executable, preferring the
// version 7 `magick` name over the legacy `convert`.
func magickBinary() (string, error) {
	if path, err := exec.LookPath("magick"); err == nil {
		return path, nil
	}
	if path, err := exec.LookPath("convert"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("ImageMagick not found on PATH (looked for magick and convert)")
}

// magickArgs builds the argument list for a render run.
//
// The page range is expressed with ImageMagick's index suffix, which is
// 0-based and inclusive: report.pdf[2-4] renders pages 3 through 5.
// The -1 index means the last page, so an open-ended range from page N
// becomes [N-1--1].
func magickArgs(pdfPath, outDir string, opts model.ConvertOptions) []string {
	return []string{
		"-density", strconv.Itoa(opts.Resolution),
		magickInput(pdfPath, opts),
		filepath.Join(outDir, "page_%04d.png"),
	}
}

// magickInput appends the index suffix for the requested page range to
// the input path. Shared with the docker renderer, which runs the same
// ImageMagick invocation inside a container.
func magickInput(pdfPath string, opts model.ConvertOptions) string {
	first := opts.FirstPage
	if first < 1 {
		first = 1
	}
	switch {
	case opts.PageCount > 0:
		return fmt.Sprintf("%s[%d-%d]", pdfPath, first-1, first-1+opts.PageCount-1)
	case first > 1:
		return fmt.Sprintf("%s[%d--1]", pdfPath, first-1)
	default:
		return pdfPath
	}
}

// parseMagickVersion extracts the major and minor version from the first
// line of `-version` output, e.g.
//
//	Version: ImageMagick 7.1.1-21 Q16-HDRI x86_64 ...
func parseMagickVersion(output string) (major, minor int, err error) {
	fields := strings.Fields(output)
	for i, f := range fields {
		if f != "ImageMagick" || i+1 >= len(fields) {
			continue
		}
		parts := strings.SplitN(fields[i+1], ".", 3)
		if len(parts) < 2 {
			break
		}
		major, err = strconv.Atoi(parts[0])
		if err != nil {
			break
		}
		// The minor field may carry a patch suffix like "1-21".
		minorStr, _, _ := strings.Cut(parts[1], "-")
		minor, err = strconv.Atoi(minorStr)
		if err != nil {
			break
		}
		return major, minor, nil
	}
	return 0, 0, fmt.Errorf("cannot parse ImageMagick version from %q", firstLine(output))
}

// firstLine returns the first line of s for error messages.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
