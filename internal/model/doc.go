// Package model defines the domain types for the pagedeck CLI.
//
// All entities here are transient: a conversion request is assembled from
// flags and config at startup, carried through the pipeline, and discarded.
// There is no persistent state beyond the optional workspace image directory.
package model
