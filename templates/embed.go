// Package templates holds the spreadsheet templates and their cell bindings.
package templates

import "embed"

//go:embed *.xlsx *.yaml
var FS embed.FS

// Logical document names, one binding file <name>.yaml each.
const (
	Honorari = "honorari"
	Prijevoz = "prijevoz"
)
