// Package convert runs the PDF-to-PPTX pipeline: read the source PDF's
// metadata, pick a renderer, rasterize the pages, and assemble the deck.
// Both the convert/batch commands and the interactive UI drive their
// conversions through Run.
package convert
