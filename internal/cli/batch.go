// Package cli — batch.go implements the "pagedeck batch" command.
//
// The batch command converts every job listed in a YAML manifest. Jobs
// run sequentially; a failed job does not stop the batch, but any
// failure makes the command exit non-zero after the remaining jobs ran.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pagedeck/internal/convert"
	"github.com/mmr-tortoise/pagedeck/internal/manifest"
	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// NewBatchCommand creates the "batch" cobra command.
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Convert every PDF listed in a YAML manifest",
		Long: `Convert every job listed in a YAML manifest.

The manifest holds shared defaults and a job list; relative paths are
resolved against the manifest's directory:

  defaults:
    resolution: 150
  jobs:
    - input: slides/intro.pdf
    - input: slides/deep-dive.pdf
      output: out/deep-dive.pptx

Examples:
  pagedeck batch decks.yaml
  pagedeck batch decks.yaml --json`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), args[0])
		},
	}

	return cmd
}

// batchJobJSON is the JSON output structure for one job result.
type batchJobJSON struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Slides int    `json:"slides,omitempty"`
	Error  string `json:"error,omitempty"`
}

// runBatch is the main logic function for the batch command.
func runBatch(ctx context.Context, manifestPath string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load manifest", err)
	}

	VerboseLog("manifest %s: %d job(s)", manifestPath, len(m.Jobs))

	results := make([]batchJobJSON, 0, len(m.Jobs))
	failed := 0
	for _, job := range m.Jobs {
		entry := batchJobJSON{Input: job.Input}

		opts, err := m.Options(job)
		if err == nil {
			var result *model.ConvertResult
			result, err = convert.Run(ctx, convert.Request{
				Input:  job.Input,
				Output: job.OutputPath(),
				Opts:   opts,
				Logf:   VerboseLog,
			})
			if err == nil {
				entry.Output = result.OutputPath
				entry.Slides = result.Slides
			}
		}

		if err != nil {
			// One bad job must not sink the rest of the batch.
			entry.Error = err.Error()
			failed++
			if !IsJSONOutput() {
				fmt.Printf("FAIL  %s: %v\n", job.Input, err)
			}
		} else if !IsJSONOutput() {
			fmt.Printf("ok    %s -> %s (%d slides)\n", job.Input, entry.Output, entry.Slides)
		}

		results = append(results, entry)
	}

	if IsJSONOutput() {
		result := struct {
			Jobs   []batchJobJSON `json:"jobs"`
			Failed int            `json:"failed"`
		}{Jobs: results, Failed: failed}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	}

	if failed > 0 {
		return model.NewCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("%d of %d job(s) failed", failed, len(m.Jobs)),
		)
	}
	return nil
}
