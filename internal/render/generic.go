package render

import (
	"html"

	"github.com/archetype-tools/proteusview/internal/model"
)

// renderGeneric is the fallback for class tags with no registered rule:
// an unstyled two-column table listing raw property names and values,
// followed by the children. Every object renders something.
func renderGeneric(ctx *Context, o *model.Object) {
	ctx.Write(`<div class="object object-generic" id="` + html.EscapeString(o.ID) + `">` + "\n")
	ctx.Write(`<table class="properties">` + "\n")
	ctx.Write(`<caption>`)
	ctx.WriteText(o.Name())
	ctx.Write(`</caption>` + "\n")
	for _, p := range o.Properties {
		ctx.Write(`<tr><th class="property-name">`)
		ctx.WriteText(p.Name)
		ctx.Write(`</th><td class="property-value">`)
		ctx.WriteValue(p)
		ctx.Write("</td></tr>\n")
	}
	ctx.Write("</table>\n")
	ctx.RenderChildren(o)
	ctx.Write("</div>\n")
}
