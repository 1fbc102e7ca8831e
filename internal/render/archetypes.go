package render

import (
	"html"
	"strconv"

	"github.com/archetype-tools/proteusview/internal/model"
)

// registerArchetypes binds the standard rule set. Registration order is
// irrelevant; selection is by the object's most specific class tag.
func registerArchetypes(r *Renderer) {
	r.Register("document", renderDocument)
	r.Register("section", renderSection)
	r.Register("appendix", renderAppendix)
	r.Register("paragraph", renderParagraph)
	r.Register("external-resource", renderFigure)
	r.Register("figure", renderFigure)
	r.Register("glossary-item", renderGlossaryItem)

	r.Register("objective", renderObjective)
	r.Register("stakeholder", renderStakeholder)
	r.Register("organization", renderOrganization)
	r.Register("information-requirement", renderInformationRequirement)

	r.Register("object-type", renderObjectType)
	r.Register("association", renderAssociation)
	r.Register("enumeration", renderEnumeration)
	r.Register("constraint", renderConstraint)
	r.Register("system-operation", renderSystemOperation)

	r.Register("traceability-matrix", renderMatrix)
}

// renderDocument emits the cover page, the table of contents, and then
// the body. The document object is the numbering scope: section,
// appendix, and caption counters all start fresh here.
func renderDocument(ctx *Context, o *model.Object) {
	ctx.ResetNumbering()
	ctx.Write(`<div class="document" id="` + html.EscapeString(o.ID) + `">` + "\n")

	// Cover page.
	ctx.Write(`<div class="cover">` + "\n")
	ctx.Write(`<h1 class="document-title">`)
	ctx.WriteText(o.Name())
	ctx.Write("</h1>\n")
	ctx.Write(`<table class="cover-data">` + "\n")
	ctx.WriteRow(o, Row{Property: "version"})
	ctx.WriteRow(o, Row{Property: "date"})
	ctx.WriteRow(o, Row{Property: "created-by"})
	ctx.Write("</table>\n")
	// Authors read as a sentence on the cover, so the trace renders in
	// its inline mode rather than as a list.
	if p, ok := o.Property("authors"); ok && !p.IsEmpty() {
		ctx.Write(`<p class="prepared-by">`)
		ctx.WriteText(ctx.Locale().Get("cover.prepared-by"))
		ctx.Write(": ")
		ctx.WriteTraceParagraph(p.Traces)
		ctx.Write("</p>\n")
	}
	ctx.Write("</div>\n")

	writeTableOfContents(ctx, o)
	ctx.RenderChildren(o)
	ctx.Write("</div>\n")
}

// writeTableOfContents pre-walks the body with its own counters, mirrors
// the numbering the body rendering will produce, and links each entry to
// the object's anchor.
func writeTableOfContents(ctx *Context, doc *model.Object) {
	var tc tocCollector
	tc.walk(doc)
	entries := tc.entries
	if len(entries) == 0 {
		return
	}

	ctx.Write(`<nav class="toc">` + "\n")
	ctx.Write(`<h2>`)
	ctx.WriteText(ctx.Locale().Get("toc.title"))
	ctx.Write("</h2>\n<ul>\n")
	for _, e := range entries {
		ctx.Write(`<li class="toc-level-` + strconv.Itoa(e.depth) + `"><a href="#` + html.EscapeString(e.id) + `">`)
		ctx.WriteText(e.number + " " + e.title)
		ctx.Write("</a></li>\n")
	}
	ctx.Write("</ul>\n</nav>\n")
}

type tocEntry struct {
	id     string
	number string
	title  string
	depth  int
}

// tocCollector numbers sections and appendices with the same counter
// algorithm the body pass uses, so the table of contents always agrees
// with the rendered headings.
type tocCollector struct {
	entries    []tocEntry
	counters   []int
	depth      int
	appendixes int
}

func (t *tocCollector) walk(o *model.Object) {
	for _, c := range o.Children {
		switch structuralClass(c) {
		case "appendix":
			t.appendixes++
			t.entries = append(t.entries, tocEntry{
				id:     c.ID,
				number: alphaLabel(t.appendixes),
				title:  c.Name(),
				depth:  1,
			})
			t.walk(c)
		case "section":
			if len(t.counters) <= t.depth {
				t.counters = append(t.counters, 0)
			}
			t.counters = t.counters[:t.depth+1]
			t.counters[t.depth]++
			t.depth++
			t.entries = append(t.entries, tocEntry{
				id:     c.ID,
				number: dottedNumber(t.counters[:t.depth]),
				title:  c.Name(),
				depth:  t.depth,
			})
			t.walk(c)
			t.depth--
		default:
			t.walk(c)
		}
	}
}

// structuralClass resolves whether an object is a section, an appendix,
// or neither, using the same most-specific-tag-wins order as dispatch.
// Appendix objects also carry the section tag; the later tag decides.
func structuralClass(o *model.Object) string {
	for i := len(o.Classes) - 1; i >= 0; i-- {
		switch o.Classes[i] {
		case "appendix", "section":
			return o.Classes[i]
		}
	}
	return ""
}

func dottedNumber(counters []int) string {
	parts := make([]string, len(counters))
	for i, n := range counters {
		parts[i] = strconv.Itoa(n)
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out
}

// renderSection emits a numbered heading at the current nesting depth,
// the markdown description if present, and the children.
func renderSection(ctx *Context, o *model.Object) {
	number := ctx.EnterSection()
	level := ctx.HeadingLevel()

	ctx.Writef(`<h%d class="section" id="%s"><span class="sec-number">%s</span> `,
		level, html.EscapeString(o.ID), number)
	ctx.WriteText(o.Name())
	ctx.Writef("</h%d>\n", level)

	if p, ok := o.Property("description"); ok && !p.IsEmpty() {
		ctx.Write(ctx.Markdown(p.Value))
	}
	ctx.RenderChildren(o)
	ctx.LeaveSection()
}

// renderAppendix emits an alphabetically labeled heading. The appendix
// counter is independent of section numbering.
func renderAppendix(ctx *Context, o *model.Object) {
	letter := ctx.NextAppendix()

	ctx.Writef(`<h2 class="appendix" id="%s"><span class="appendix-label">%s %s.</span> `,
		html.EscapeString(o.ID), html.EscapeString(ctx.Locale().Get("appendix.label")), letter)
	ctx.WriteText(o.Name())
	ctx.Write("</h2>\n")

	if p, ok := o.Property("description"); ok && !p.IsEmpty() {
		ctx.Write(ctx.Markdown(p.Value))
	}
	ctx.RenderChildren(o)
}

// renderParagraph converts the markdown text body. An empty paragraph
// emits nothing at all.
func renderParagraph(ctx *Context, o *model.Object) {
	p, ok := o.Property("text")
	if !ok || p.IsEmpty() {
		return
	}
	ctx.Write(`<div class="paragraph" id="` + html.EscapeString(o.ID) + `">`)
	ctx.Write(ctx.Markdown(p.Value))
	ctx.Write("</div>\n")
}

// renderFigure emits an image with a numbered caption. The caption
// sequence is shared with traceability matrices.
func renderFigure(ctx *Context, o *model.Object) {
	n := ctx.NextCaption()

	ctx.Write(`<figure class="figure" id="` + html.EscapeString(o.ID) + `">` + "\n")
	if file := o.PropertyValue("file"); file != "" {
		src := ctx.ResolveAsset(AssetFile, file)
		ctx.Write(`<img src="` + html.EscapeString(src) + `" alt="`)
		ctx.WriteText(o.Name())
		ctx.Write(`">` + "\n")
	} else if url := o.PropertyValue("url"); url != "" {
		ctx.Write(`<img src="` + html.EscapeString(url) + `" alt="`)
		ctx.WriteText(o.Name())
		ctx.Write(`">` + "\n")
	}
	ctx.Write(`<figcaption>`)
	ctx.WriteText(ctx.Locale().Get("figure.caption") + " " + strconv.Itoa(n) + ": " + o.Name())
	ctx.Write("</figcaption>\n</figure>\n")
}

// renderGlossaryItem emits a term/definition pair.
func renderGlossaryItem(ctx *Context, o *model.Object) {
	ctx.Write(`<dl class="glossary-item" id="` + html.EscapeString(o.ID) + `"><dt>`)
	ctx.WriteText(o.Name())
	ctx.Write(`</dt><dd>`)
	if p, ok := o.Property("description"); ok && !p.IsEmpty() {
		ctx.Write(ctx.Markdown(p.Value))
	} else {
		ctx.Write(`<span class="tbd">` + html.EscapeString(ctx.Locale().Get("tbd")) + `</span>`)
	}
	ctx.Write("</dd></dl>\n")
}
