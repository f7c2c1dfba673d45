// Package config loads the optional pagedeck configuration file. The
// file format is JSONC (JSON with Comments): comments are stripped with
// github.com/tidwall/jsonc before parsing with encoding/json.
//
// Two locations are searched, in order:
//
//	./.pagedeck.jsonc                    (per-project)
//	~/.config/pagedeck/config.jsonc      (per-user)
//
// Config values sit below command-line flags: a flag the user passes
// always wins over the file.
package config
