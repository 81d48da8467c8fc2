// Package web holds the embedded HTML templates for the rendered
// pages. Markup is intentionally minimal; styling is not a concern of
// this service.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
