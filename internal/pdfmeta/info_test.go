package pdfmeta

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// writeTestPDF writes a minimal but structurally valid PDF with the given
// number of pages, all sharing one MediaBox. The cross-reference offsets
// are computed while the file is assembled, so the fixture stays valid
// regardless of formatting changes.
func writeTestPDF(t *testing.T, path string, pages int, width, height float64) {
	t.Helper()

	var buf strings.Builder
	offsets := make([]int, 0, pages+2)

	buf.WriteString("%PDF-1.4\n")

	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	// Object 1: document catalog.
	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	// Object 2: page tree root.
	kids := make([]string, 0, pages)
	for i := 0; i < pages; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+i))
	}
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pages))

	// Objects 3..: one page object per page.
	for i := 0; i < pages; i++ {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] >>\nendobj\n",
			3+i, width, height))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset)

	require.NoError(t, os.WriteFile(path, []byte(buf.String()), 0644))
}

// TestReadInfoStandard verifies page count and 4:3 classification.
func TestReadInfoStandard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standard.pdf")
	writeTestPDF(t, path, 3, 800, 600)

	info, err := ReadInfo(path)
	require.NoError(t, err)

	assert.Equal(t, 3, info.PageCount)
	assert.Equal(t, float64(800), info.Width)
	assert.Equal(t, float64(600), info.Height)
	assert.Equal(t, model.RatioStandard, info.Ratio)
	assert.InDelta(t, 0.75, info.RatioValue, 0.0001)
}

// TestReadInfoWidescreen verifies 16:9 classification.
func TestReadInfoWidescreen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.pdf")
	writeTestPDF(t, path, 1, 960, 540)

	info, err := ReadInfo(path)
	require.NoError(t, err)

	assert.Equal(t, 1, info.PageCount)
	assert.Equal(t, model.RatioWidescreen, info.Ratio)
}

// TestReadInfoCustom verifies that non-presentation geometry (A4 portrait)
// is classified as custom rather than forced into a standard ratio.
func TestReadInfoCustom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a4.pdf")
	writeTestPDF(t, path, 2, 595, 842)

	info, err := ReadInfo(path)
	require.NoError(t, err)

	assert.Equal(t, 2, info.PageCount)
	assert.Equal(t, model.RatioCustom, info.Ratio)
	assert.InDelta(t, 842.0/595.0, info.RatioValue, 0.0001)
}

// TestReadInfoMissingFile verifies a plain error (not a panic) for a
// nonexistent path.
func TestReadInfoMissingFile(t *testing.T) {
	_, err := ReadInfo(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}

// TestReadInfoMalformed verifies that garbage input is reported as an
// error. rsc.io/pdf panics on malformed files, so this also covers the
// recover wrapper.
func TestReadInfoMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\nnot really a pdf"), 0644))

	_, err := ReadInfo(path)
	assert.Error(t, err)
}

// TestListPDFs verifies discovery, case-insensitive extension matching,
// ordering, and that directories and non-PDFs are skipped.
func TestListPDFs(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.PDF"), []byte("xy"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdf"), 0755))

	entries, err := ListPDFs(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, filepath.Join(dir, "A.PDF"), entries[0].Path)
	assert.Equal(t, int64(2), entries[0].Size)
	assert.Equal(t, filepath.Join(dir, "b.pdf"), entries[1].Path)
}

// TestListPDFsEmptyDir verifies an empty result without error.
func TestListPDFsEmptyDir(t *testing.T) {
	entries, err := ListPDFs(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestListPDFsMissingDir verifies an error for a nonexistent directory.
func TestListPDFsMissingDir(t *testing.T) {
	_, err := ListPDFs(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
