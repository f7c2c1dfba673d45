// Package cli — list.go implements the "pagedeck list" command.
//
// The list command shows the PDF files in a directory, with sizes and
// page counts, as a text table or JSON array. The same listing is also
// printed by the convert command when no usable input was given.
package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pagedeck/internal/model"
	"github.com/mmr-tortoise/pagedeck/internal/pdfmeta"
)

// timeRounding is the precision used when printing durations.
const timeRounding = 10 * time.Millisecond

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List the PDF files in a directory",
		Long: `List the PDF files in a directory (default: the current directory),
with their size and page count.

Examples:
  pagedeck list
  pagedeck list ~/slides
  pagedeck list --json`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runList(dir)
		},
	}

	return cmd
}

// listEntryJSON is the JSON output structure for one PDF in the list.
type listEntryJSON struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	Pages int    `json:"pages,omitempty"`
	Ratio string `json:"ratio,omitempty"`
}

// runList is the main logic function for the list command.
func runList(dir string) error {
	entries, err := pdfmeta.ListPDFs(dir)
	if err != nil {
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to list PDFs in %s", dir),
			err,
		)
	}

	if IsJSONOutput() {
		// Empty slice rather than nil so the output shows [] not null.
		result := make([]listEntryJSON, 0, len(entries))
		for _, e := range entries {
			entry := listEntryJSON{Path: e.Path, Size: e.Size}
			// Page count and geometry are nice-to-have; unreadable
			// files still appear in the listing.
			if info, err := pdfmeta.ReadInfo(e.Path); err == nil {
				entry.Pages = info.PageCount
				entry.Ratio = info.Ratio.String()
			}
			result = append(result, entry)
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Printf("No PDF files found in %s\n", dir)
		return nil
	}

	fmt.Printf("%-50s %10s %8s %6s\n", "FILE", "SIZE", "PAGES", "RATIO")
	for _, e := range entries {
		pages, ratio := "-", "-"
		if info, err := pdfmeta.ReadInfo(e.Path); err == nil {
			pages = fmt.Sprintf("%d", info.PageCount)
			ratio = info.Ratio.String()
		}
		fmt.Printf("%-50s %10s %8s %6s\n", e.Path, humanSize(e.Size), pages, ratio)
	}
	return nil
}

// printAvailablePDFs prints the PDFs in dir as a hint when the convert
// command has no usable input. Listing failures are swallowed — the
// caller is already about to report the real error.
func printAvailablePDFs(dir string) {
	entries, err := pdfmeta.ListPDFs(dir)
	if err != nil || len(entries) == 0 {
		return
	}

	fmt.Println("Available PDF files:")
	for _, e := range entries {
		fmt.Printf("  %s (%s)\n", e.Path, humanSize(e.Size))
	}
}

// humanSize formats a byte count with a binary unit suffix.
//
// Example:
//
//	532      → "532 B"
//	1536     → "1.5 KiB"
//	3145728  → "3.0 MiB"
func humanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
