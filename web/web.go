// Package web holds the server-rendered HTML templates.
package web

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var FS embed.FS

// Funcs are available to every template.
var Funcs = template.FuncMap{
	"lines": func(s string) []string {
		return strings.Split(strings.TrimSpace(s), "\n")
	},
	"year": func(t time.Time) int {
		return t.Year()
	},
}

// Templates parses every page and partial. Each page is addressed by its
// file name, e.g. "login.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(FS, "templates/*.html")
}
