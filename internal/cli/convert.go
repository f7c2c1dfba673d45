// Package cli — convert.go implements the "pagedeck convert" command.
//
// The convert command runs the full pipeline for a single PDF: renderer
// selection, page rasterization, and deck assembly. When invoked with
// no input, or with an input that does not exist, it prints the PDFs
// found in the current directory as a hint and fails.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pagedeck/internal/config"
	"github.com/mmr-tortoise/pagedeck/internal/convert"
	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// convertFlags holds the flag values for the convert command.
type convertFlags struct {
	output     string
	resolution int
	method     string
	firstPage  int
	pageCount  int
	ratio      string
	keepImages bool
}

// NewConvertCommand creates the "convert" cobra command.
func NewConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [input.pdf] [output.pptx]",
		Short: "Convert a PDF into a PowerPoint deck",
		Long: `Convert a PDF into a PowerPoint deck, one slide per page.

The output path defaults to the input path with a .pptx extension.
Without arguments, the PDFs in the current directory are listed so one
can be picked.

Examples:
  pagedeck convert report.pdf
  pagedeck convert report.pdf slides.pptx
  pagedeck convert report.pdf -r 150 --method pdftoppm
  pagedeck convert report.pdf --first 2 --count 10 --ratio 16:9`,

		Args: cobra.MaximumNArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output .pptx path (default: input with .pptx extension)")
	cmd.Flags().IntVarP(&flags.resolution, "resolution", "r", 0,
		fmt.Sprintf("Rendering density in DPI (default: %d)", model.DefaultResolution))
	cmd.Flags().StringVar(&flags.method, "method", "auto", "Renderer: auto, imagemagick, pdftoppm, docker")
	cmd.Flags().IntVar(&flags.firstPage, "first", 0, "First page to convert (1-based)")
	cmd.Flags().IntVar(&flags.pageCount, "count", 0, "Number of pages to convert (default: all)")
	cmd.Flags().StringVar(&flags.ratio, "ratio", "auto", "Slide geometry: auto, 4:3, 16:9")
	cmd.Flags().BoolVar(&flags.keepImages, "keep-images", false, "Keep the rendered page images")

	return cmd
}

// runConvert is the main logic function for the convert command.
func runConvert(ctx context.Context, flags *convertFlags, args []string) error {
	// Without an input there is nothing to convert; list what the
	// current directory offers so the next invocation can name one.
	if len(args) == 0 {
		printAvailablePDFs(".")
		return model.NewCLIError(model.ExitGeneralError, "no input PDF specified")
	}

	input := args[0]
	if _, err := os.Stat(input); err != nil {
		printAvailablePDFs(".")
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("input PDF not found: %s", input),
			err,
		)
	}

	opts, err := buildOptions(flags)
	if err != nil {
		return err
	}

	output := flags.output
	if output == "" && len(args) == 2 {
		output = args[1]
	}

	cfg, err := config.Discover(".")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load config", err)
	}
	cfg.Apply(&opts)
	if output == "" && cfg.OutputDir != "" {
		output = model.OutputPathIn(cfg.OutputDir, input)
	}

	result, err := convert.Run(ctx, convert.Request{
		Input:  input,
		Output: output,
		Opts:   opts,
		Logf:   VerboseLog,
	})
	if err != nil {
		return err
	}

	printConvertResult(result)
	return nil
}

// buildOptions translates the flag values into ConvertOptions. The
// values are validated later by the pipeline; only the enum flags are
// parsed here so errors name the flag value the user typed.
func buildOptions(flags *convertFlags) (model.ConvertOptions, error) {
	opts := model.ConvertOptions{
		Resolution: flags.resolution,
		FirstPage:  flags.firstPage,
		PageCount:  flags.pageCount,
		KeepImages: flags.keepImages,
	}

	if flags.method != "" {
		method, err := model.ParseConversionMethod(flags.method)
		if err != nil {
			return model.ConvertOptions{}, model.WrapCLIError(model.ExitGeneralError, "invalid --method", err)
		}
		opts.Method = method
	}

	switch flags.ratio {
	case "", "auto":
		opts.DetectRatio = true
	default:
		ratio, err := model.ParseAspectRatio(flags.ratio)
		if err != nil {
			return model.ConvertOptions{}, model.WrapCLIError(model.ExitGeneralError, "invalid --ratio", err)
		}
		opts.Ratio = ratio
	}

	return opts, nil
}

// printConvertResult outputs the conversion summary in text or JSON
// format, depending on the global --json flag.
func printConvertResult(result *model.ConvertResult) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Created %s (%d slides, %s, %s) in %s\n",
		result.OutputPath,
		result.Slides,
		result.Ratio,
		result.Method,
		result.Duration.Round(timeRounding),
	)
	if result.ImageDir != "" {
		fmt.Printf("Page images kept in %s\n", result.ImageDir)
	}
}
