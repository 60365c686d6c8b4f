// Package web holds the page templates, compiled into the binary.
package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
}

// Templates parses every page. Pages are addressed by file name, e.g.
// "login.html"; layout.html only defines the shared header and footer.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
