// Package render rasterizes PDF pages into PNG images using external
// renderers. Three backends are supported:
//
//   - ImageMagick (`magick` or legacy `convert`) on the host
//   - poppler's `pdftoppm` on the host
//   - containerized ImageMagick via the Docker daemon
//
// Select picks a backend either explicitly or, for MethodAuto, by probing
// the backends in the order above and taking the first available one.
// All backends write numbered PNG files into a caller-provided directory
// and return the resulting paths in page order.
package render
