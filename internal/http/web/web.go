// Package web holds the embedded HTML page and its template helpers.
package web

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var files embed.FS

var md = goldmark.New()

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"markdown": Markdown,
	}).ParseFS(files, "templates/*.html")
}

// Markdown renders model-written Markdown to HTML. Raw HTML in the input is
// dropped by goldmark's default renderer.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
