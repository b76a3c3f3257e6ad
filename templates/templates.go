// Package templates holds the storefront's HTML pages, embedded into the
// binary.
package templates

import (
	"embed"
	"html/template"

	"lumenstore.com/app/internal/config"
)

//go:embed *.tmpl
var files embed.FS

// Parse compiles every page with the helpers from Funcs.
func Parse(theme config.ThemeSettings) (*template.Template, error) {
	return template.New("").Funcs(Funcs(theme)).ParseFS(files, "*.tmpl")
}
