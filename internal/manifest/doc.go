// Package manifest parses YAML batch manifests for the batch command.
// A manifest lists conversion jobs plus shared defaults:
//
//	defaults:
//	  resolution: 150
//	  method: imagemagick
//	jobs:
//	  - input: slides/intro.pdf
//	  - input: slides/deep-dive.pdf
//	    output: out/deep-dive.pptx
//	    firstPage: 2
//	    pageCount: 10
//
// Per-job fields override the defaults; unset fields fall back to the
// built-in conversion defaults.
package manifest
