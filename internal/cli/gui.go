// Package cli — gui.go implements the "pagedeck gui" command.
//
// The gui command opens the interactive terminal UI: a picker over the
// PDFs in the current directory that converts the selected file. The
// renderer prerequisites are checked before the UI starts, so a machine
// with no renderer fails fast with the same message the check command
// prints.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pagedeck/internal/config"
	"github.com/mmr-tortoise/pagedeck/internal/model"
	"github.com/mmr-tortoise/pagedeck/internal/render"
	"github.com/mmr-tortoise/pagedeck/internal/tui"
)

// guiFlags holds the flag values for the gui command.
type guiFlags struct {
	resolution int
	method     string
}

// NewGUICommand creates the "gui" cobra command.
func NewGUICommand() *cobra.Command {
	flags := &guiFlags{}

	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Open the interactive PDF picker",
		Long: `Open an interactive terminal UI listing the PDFs in the current
directory. Selecting one converts it with the default options.

Examples:
  pagedeck gui
  pagedeck gui -r 150 --method pdftoppm`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), flags)
		},
	}

	cmd.Flags().IntVarP(&flags.resolution, "resolution", "r", 0, "Rendering density in DPI")
	cmd.Flags().StringVar(&flags.method, "method", "auto", "Renderer: auto, imagemagick, pdftoppm, docker")

	return cmd
}

// runGUI is the main logic function for the gui command.
func runGUI(ctx context.Context, flags *guiFlags) error {
	opts := model.ConvertOptions{
		Resolution:  flags.resolution,
		DetectRatio: true,
	}
	if flags.method != "" {
		method, err := model.ParseConversionMethod(flags.method)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "invalid --method", err)
		}
		opts.Method = method
	}

	cfg, err := config.Discover(".")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load config", err)
	}
	cfg.Apply(&opts)

	// Gate on a usable renderer before drawing anything, so the failure
	// is a plain error instead of a broken UI.
	if _, err := render.Select(ctx, opts.Method); err != nil {
		return err
	}
	VerboseLog("starting interactive UI")

	if err := tui.Run(opts, cfg.OutputDir); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "interactive UI failed", err)
	}
	return nil
}
