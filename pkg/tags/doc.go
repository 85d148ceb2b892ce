// Package tags parses tag lists, the input of a cloud layout.
//
// A tag is an optional label plus the size of the rectangle it occupies.
// Three formats are understood, chosen by file extension:
//
//	.json   [{"label": "go", "width": 40, "height": 12}, ...]
//	        or {"tags": [...]}
//	.toml   [[tag]] tables with label, width, height
//	other   one tag per line: "width height [label...]"
//	        blank lines and lines starting with # are ignored
//
// Sizes are validated while parsing, so a parsed List can be fed to a
// layouter without further checks.
package tags
