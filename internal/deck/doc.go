// Package deck assembles PowerPoint (.pptx) files from page images,
// one full-bleed image per slide. The PPTX container is an OOXML zip:
// every part is generated directly, so the output does not depend on a
// bundled template file.
//
// The part inventory is the minimum PowerPoint and LibreOffice both
// accept: content types, package relationships, core/app properties,
// the presentation part with one blank master/layout/theme chain, and
// one slide + relationship + media part per page image.
package deck
