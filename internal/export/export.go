// Package export assembles rendered fragments into deliverable
// artifacts: a self-contained HTML page with inlined styles and
// data-URI assets. PDF generation stays outside this service; the
// PageExporter interface marks that seam.
package export

import (
	"context"
	_ "embed"
	"html"
	"io"
	"strings"
)

//go:embed styles.css
var defaultStylesheet string

// PageExporter converts a finished HTML page into another format, e.g.
// PDF. Implementations live in the host application.
type PageExporter interface {
	Export(ctx context.Context, page string, out io.Writer) error
}

// PageOptions controls page assembly.
type PageOptions struct {
	Title      string
	Lang       string // html lang attribute, e.g. "en"
	Stylesheet string // empty: the embedded default
}

// Page wraps a rendered fragment into a complete standalone HTML
// document. The stylesheet is inlined so the result needs no companion
// files.
func Page(fragment string, opts PageOptions) string {
	css := opts.Stylesheet
	if css == "" {
		css = defaultStylesheet
	}
	lang := opts.Lang
	if lang == "" {
		lang = "en"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="` + html.EscapeString(lang) + `">` + "\n<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString("<title>")
	b.WriteString(html.EscapeString(opts.Title))
	b.WriteString("</title>\n<style>\n")
	b.WriteString(css)
	b.WriteString("\n</style>\n</head>\n<body>\n")
	b.WriteString(fragment)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
