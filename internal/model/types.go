package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ConversionMethod identifies the renderer used to turn PDF pages into
// page images. The pipeline supports three backends:
//
//   - imagemagick: `magick`/`convert -density` on the host
//   - pdftoppm:    poppler's `pdftoppm -png` on the host
//   - docker:      containerized ImageMagick via the Docker daemon
//
// MethodAuto selects the first available backend in the order above.
type ConversionMethod string

const (
	// MethodAuto picks the best available renderer at runtime.
	MethodAuto ConversionMethod = "auto"

	// MethodImageMagick renders pages with the host ImageMagick install.
	MethodImageMagick ConversionMethod = "imagemagick"

	// MethodPoppler renders pages with poppler's pdftoppm.
	MethodPoppler ConversionMethod = "pdftoppm"

	// MethodDocker renders pages inside a containerized ImageMagick.
	// Used as a fallback when no host renderer is installed.
	MethodDocker ConversionMethod = "docker"
)

// String returns the string representation of ConversionMethod.
func (m ConversionMethod) String() string {
	return string(m)
}

// IsValid checks whether the ConversionMethod value is one of the
// predefined methods.
func (m ConversionMethod) IsValid() bool {
	switch m {
	case MethodAuto, MethodImageMagick, MethodPoppler, MethodDocker:
		return true
	default:
		return false
	}
}

// ParseConversionMethod converts a string to a ConversionMethod.
// Returns an error if the string does not match any known method.
func ParseConversionMethod(s string) (ConversionMethod, error) {
	m := ConversionMethod(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid conversion method: %q (valid: auto, imagemagick, pdftoppm, docker)", s)
	}
	return m, nil
}

// AspectRatio classifies the page geometry of the source PDF, which
// determines the slide dimensions of the generated deck.
type AspectRatio string

const (
	// RatioStandard is the classic 4:3 presentation geometry.
	RatioStandard AspectRatio = "4:3"

	// RatioWidescreen is the 16:9 presentation geometry.
	RatioWidescreen AspectRatio = "16:9"

	// RatioCustom covers pages that match neither standard geometry.
	// Decks for custom pages use the 4:3 slide dimensions.
	RatioCustom AspectRatio = "custom"
)

// String returns the string representation of AspectRatio.
func (r AspectRatio) String() string {
	return string(r)
}

// IsValid checks whether the AspectRatio value is one of the
// predefined ratios.
func (r AspectRatio) IsValid() bool {
	switch r {
	case RatioStandard, RatioWidescreen, RatioCustom:
		return true
	default:
		return false
	}
}

// ParseAspectRatio converts a string to an AspectRatio.
// Returns an error if the string does not match any known ratio.
func ParseAspectRatio(s string) (AspectRatio, error) {
	r := AspectRatio(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid aspect ratio: %q (valid: 4:3, 16:9, custom)", s)
	}
	return r, nil
}

// ClassifyRatio maps a page height/width quotient to an AspectRatio.
// A 4:3 page has a quotient of 0.75 and a 16:9 page 0.5625; both get a
// small tolerance band because PDF MediaBoxes are rarely exact.
func ClassifyRatio(heightOverWidth float64) AspectRatio {
	switch {
	case heightOverWidth >= 0.74 && heightOverWidth <= 0.76:
		return RatioStandard
	case heightOverWidth >= 0.55 && heightOverWidth <= 0.57:
		return RatioWidescreen
	default:
		return RatioCustom
	}
}

// EMU (English Metric Unit) slide dimensions. OOXML positions everything
// in EMUs: 914400 per inch. Slides are 10 inches wide; height follows
// the aspect ratio (7.5in for 4:3, 5.625in for 16:9).
const (
	SlideWidthEMU            int64 = 9144000
	SlideHeightStandardEMU   int64 = 6858000
	SlideHeightWidescreenEMU int64 = 5143500
)

// SlideSize returns the slide dimensions in EMUs for the ratio.
// Custom ratios fall back to the 4:3 dimensions.
func (r AspectRatio) SlideSize() (cx, cy int64) {
	if r == RatioWidescreen {
		return SlideWidthEMU, SlideHeightWidescreenEMU
	}
	return SlideWidthEMU, SlideHeightStandardEMU
}

// Resolution bounds for page rendering. Below 72 DPI output is unreadable;
// above 1200 DPI ImageMagick memory use becomes pathological on large PDFs.
const (
	MinResolution     = 72
	MaxResolution     = 1200
	DefaultResolution = 300
)

// ConvertOptions carries the tunable parameters of a single conversion.
type ConvertOptions struct {
	// Resolution is the rendering density in DPI.
	Resolution int `json:"resolution"`

	// Method selects the renderer backend.
	Method ConversionMethod `json:"method"`

	// FirstPage is the 1-based first page to convert. Zero means page 1.
	FirstPage int `json:"firstPage,omitempty"`

	// PageCount is the number of pages to convert from FirstPage.
	// Zero means all remaining pages.
	PageCount int `json:"pageCount,omitempty"`

	// Ratio forces the slide geometry. RatioCustom (or empty) with
	// DetectRatio set means the geometry is read from the PDF.
	Ratio AspectRatio `json:"ratio,omitempty"`

	// DetectRatio enables reading the slide geometry from the first
	// page's MediaBox. Ignored when Ratio is set explicitly.
	DetectRatio bool `json:"detectRatio"`

	// KeepImages preserves the rendered page images in the workspace
	// directory instead of a temp directory that is removed afterwards.
	KeepImages bool `json:"keepImages"`

	// WorkDir is the workspace directory used when KeepImages is set.
	// Empty means a directory next to the output file.
	WorkDir string `json:"workDir,omitempty"`

	// DockerImage overrides the image used by the docker renderer.
	DockerImage string `json:"dockerImage,omitempty"`
}

// Validate checks the option values and fills defaulted fields in place.
func (o *ConvertOptions) Validate() error {
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	if o.Resolution < MinResolution || o.Resolution > MaxResolution {
		return fmt.Errorf("resolution %d out of range (%d-%d)", o.Resolution, MinResolution, MaxResolution)
	}
	if o.Method == "" {
		o.Method = MethodAuto
	}
	if !o.Method.IsValid() {
		return fmt.Errorf("invalid conversion method: %q", o.Method)
	}
	if o.FirstPage < 0 {
		return fmt.Errorf("first page must not be negative: %d", o.FirstPage)
	}
	if o.PageCount < 0 {
		return fmt.Errorf("page count must not be negative: %d", o.PageCount)
	}
	if o.Ratio != "" && !o.Ratio.IsValid() {
		return fmt.Errorf("invalid aspect ratio: %q", o.Ratio)
	}
	return nil
}

// ConvertResult summarizes a completed conversion for output formatting.
type ConvertResult struct {
	// InputPath is the absolute path of the source PDF.
	InputPath string `json:"inputPath"`

	// OutputPath is the absolute path of the generated .pptx file.
	OutputPath string `json:"outputPath"`

	// Slides is the number of slides in the generated deck.
	Slides int `json:"slides"`

	// Method is the renderer that produced the page images.
	Method ConversionMethod `json:"method"`

	// Ratio is the slide geometry used.
	Ratio AspectRatio `json:"ratio"`

	// ImageDir is the directory holding the rendered page images.
	// Empty unless KeepImages was set.
	ImageDir string `json:"imageDir,omitempty"`

	// Duration is the wall-clock time of the whole pipeline.
	Duration time.Duration `json:"-"`
}

// DefaultOutputPath derives the output .pptx path from an input PDF path:
// same directory, same stem, ".pptx" extension.
func DefaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".pptx"
}

// OutputPathIn derives the output .pptx path for an input PDF inside a
// fixed directory, ignoring the input's own directory.
func OutputPathIn(dir, inputPath string) string {
	return filepath.Join(dir, DefaultOutputPath(filepath.Base(inputPath)))
}

// ExitCode defines the CLI process exit codes. The launcher contract is
// deliberately coarse: every failure exits 1, success exits 0, so that
// wrapping scripts can mirror the status without a code table.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates any failure: missing prerequisites,
	// missing input files, or a failed conversion pipeline.
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// The CLI layer translates these into process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
