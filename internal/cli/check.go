// Package cli — check.go implements the "pagedeck check" command.
//
// The check command probes every renderer backend and reports which
// prerequisites are met. It exits non-zero when no renderer is usable,
// so scripts can gate conversions on it.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pagedeck/internal/config"
	"github.com/mmr-tortoise/pagedeck/internal/model"
	"github.com/mmr-tortoise/pagedeck/internal/render"
)

// NewCheckCommand creates the "check" cobra command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check which PDF renderers are available",
		Long: `Check which renderer backends are available on this machine.

Probes ImageMagick (needs version 6.9 or newer), poppler's pdftoppm,
and the Docker daemon. Exits with status 1 when none of them is usable.

Examples:
  pagedeck check
  pagedeck check --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context())
		},
	}

	return cmd
}

// checkEntryJSON is the JSON output structure for one backend probe.
type checkEntryJSON struct {
	Method    string `json:"method"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// runCheck is the main logic function for the check command.
func runCheck(ctx context.Context) error {
	results := render.Probe(ctx)

	// Fixed order: the same order auto-selection probes in.
	methods := []model.ConversionMethod{
		model.MethodImageMagick,
		model.MethodPoppler,
		model.MethodDocker,
	}

	anyAvailable := false
	entries := make([]checkEntryJSON, 0, len(methods))
	for _, m := range methods {
		probeErr := results[m]
		entry := checkEntryJSON{
			Method:    m.String(),
			Available: probeErr == nil,
		}
		if probeErr != nil {
			entry.Reason = probeErr.Error()
		} else {
			anyAvailable = true
		}
		entries = append(entries, entry)
	}

	configPath, configFound := config.FindFile(".")

	if IsJSONOutput() {
		result := struct {
			Renderers  []checkEntryJSON `json:"renderers"`
			ConfigFile string           `json:"configFile,omitempty"`
			Ok         bool             `json:"ok"`
		}{Renderers: entries, ConfigFile: configPath, Ok: anyAvailable}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	} else {
		for _, e := range entries {
			if e.Available {
				fmt.Printf("  ok    %s\n", e.Method)
			} else {
				fmt.Printf("  --    %s (%s)\n", e.Method, e.Reason)
			}
		}
		if configFound {
			fmt.Printf("  ok    config file %s\n", configPath)
		} else {
			fmt.Println("  --    no config file (optional)")
		}
	}

	if !anyAvailable {
		return model.NewCLIError(
			model.ExitGeneralError,
			"no PDF renderer available — install ImageMagick or poppler-utils, or start Docker",
		)
	}
	return nil
}
