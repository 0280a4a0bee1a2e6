// Package markdown renders the static page content written in Markdown.
package markdown

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToHTML renders md with common extensions. Links open in a new tab and
// raw HTML in the source is skipped.
func ToHTML(md []byte) string {
	opts := html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	}
	renderer := html.NewRenderer(opts)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	return string(markdown.Render(p.Parse(md), renderer))
}

// Template renders md for direct inclusion in an html/template page.
func Template(md []byte) template.HTML {
	return template.HTML(ToHTML(md))
}
