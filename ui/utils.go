package ui

import (
	"encoding/json"
	"html/template"
	"strconv"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// templateFuncs are the helpers available to every page and fragment
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"has": func(list []string, v string) bool {
			for _, item := range list {
				if item == v {
					return true
				}
			}
			return false
		},
		"fmtFloat": func(f float64) string {
			return strconv.FormatFloat(f, 'g', 6, 64)
		},
		"toJSON": func(v any) string {
			b, err := json.Marshal(v)
			if err != nil {
				return "{}"
			}
			return string(b)
		},
	}
}

// renderMarkdown converts the intro text to HTML. The source is an embedded
// asset, not user input.
func renderMarkdown(md []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML(md, p, renderer))
}
