// File: internal/handlers/markdown.go
package handlers

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

// templateFuncs is installed on every cached template set.
var templateFuncs = template.FuncMap{
	"markdown": renderMarkdown,
}

// renderMarkdown converts message bodies and room descriptions to HTML.
// goldmark escapes raw HTML by default, so user input stays inert.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
