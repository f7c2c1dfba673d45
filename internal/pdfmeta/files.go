package pdfmeta

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry describes one discovered PDF file.
type Entry struct {
	// Path is the file path, joined with the searched directory.
	Path string `json:"path"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// ListPDFs returns all PDF files directly inside dir (non-recursive),
// sorted by name. The extension check is case-insensitive.
//
// This backs the "no input given" hint of the convert command as well as
// the list command and the interactive picker.
func ListPDFs(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var pdfs []Entry
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}

		fi, err := e.Info()
		if err != nil {
			// The file vanished between ReadDir and Info — skip it.
			continue
		}
		pdfs = append(pdfs, Entry{
			Path: filepath.Join(dir, e.Name()),
			Size: fi.Size(),
		})
	}

	sort.Slice(pdfs, func(i, j int) bool {
		return pdfs[i].Path < pdfs[j].Path
	})
	return pdfs, nil
}
