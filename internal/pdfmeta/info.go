package pdfmeta

import (
	"fmt"

	"rsc.io/pdf"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// Info holds the metadata extracted from a PDF file.
type Info struct {
	// PageCount is the total number of pages.
	PageCount int

	// Width and Height are the first page's MediaBox dimensions in
	// PDF points (1/72 inch). Zero when the MediaBox is absent.
	Width  float64
	Height float64

	// Ratio is the slide geometry classification for Height/Width.
	Ratio model.AspectRatio

	// RatioValue is the raw Height/Width quotient, 0 when unknown.
	RatioValue float64
}

// ReadInfo opens a PDF and extracts page count and first-page geometry.
//
// rsc.io/pdf panics on malformed files rather than returning errors, so
// the whole read is wrapped in a recover. A PDF whose first page has no
// resolvable MediaBox still yields a valid Info with the default 4:3
// classification; geometry detection is best-effort.
func ReadInfo(path string) (info *Info, err error) {
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = fmt.Errorf("malformed PDF %s: %v", path, r)
		}
	}()

	reader, openErr := pdf.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, openErr)
	}

	info = &Info{
		PageCount: reader.NumPage(),
		Ratio:     model.RatioStandard,
	}
	if info.PageCount < 1 {
		return nil, fmt.Errorf("PDF has no pages: %s", path)
	}

	// MediaBox is [llx lly urx ury]. Only the first page matters for the
	// slide geometry; mixed-geometry PDFs follow their first page.
	box := reader.Page(1).V.Key("MediaBox")
	if box.Kind() != pdf.Array || box.Len() != 4 {
		// Inherited or missing MediaBox — keep the 4:3 default.
		return info, nil
	}

	llx := numberValue(box.Index(0))
	lly := numberValue(box.Index(1))
	urx := numberValue(box.Index(2))
	ury := numberValue(box.Index(3))

	info.Width = urx - llx
	info.Height = ury - lly
	if info.Width <= 0 || info.Height <= 0 {
		return info, nil
	}

	info.RatioValue = info.Height / info.Width
	info.Ratio = model.ClassifyRatio(info.RatioValue)
	return info, nil
}

// numberValue reads a PDF numeric value as float64. PDF allows both
// integer and real numbers in a MediaBox.
func numberValue(v pdf.Value) float64 {
	switch v.Kind() {
	case pdf.Integer:
		return float64(v.Int64())
	case pdf.Real:
		return v.Float64()
	default:
		return 0
	}
}
