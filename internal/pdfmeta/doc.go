// Package pdfmeta reads structural metadata from PDF files: page counts,
// first-page dimensions, and the derived slide aspect ratio. It also
// provides PDF discovery for the list command and the interactive UI.
//
// Rendering is NOT done here — page rasterization delegates to external
// tools (see internal/render). This package only needs the cross-reference
// table and page tree, which rsc.io/pdf parses without any native deps.
package pdfmeta
