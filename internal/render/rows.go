package render

import (
	"html"
	"strconv"

	"github.com/archetype-tools/proteusview/internal/model"
)

// Row describes one labeled property row inside an archetype table.
type Row struct {
	Property    string // property name on the object
	Mandatory   bool   // render a placeholder instead of suppressing
	Span        int    // value cell colspan, 0 means 1
	Alternative string // pre-rendered HTML overriding both value and placeholder
}

// WriteRow applies the property-row policy for one row:
//
//   - suppressed unless the property has content or the row is mandatory;
//   - the literal placeholder token counts as absent, but a mandatory row
//     shows the translated "to be determined" span instead of the token;
//   - an alternative, when supplied, replaces both and is itself styled.
//
// Missing data never fails; it suppresses or degrades.
func (ctx *Context) WriteRow(o *model.Object, row Row) {
	prop, ok := o.Property(row.Property)

	if row.Alternative == "" && (!ok || prop.IsEmpty()) && !row.Mandatory {
		return
	}

	label := ctx.Locale().Get(row.Property)
	span := row.Span
	if span <= 0 {
		span = 1
	}

	ctx.Write(`<tr><th class="property-name">`)
	ctx.WriteText(label)
	ctx.Write(`</th><td class="property-value" colspan="` + strconv.Itoa(span) + `">`)

	switch {
	case row.Alternative != "":
		ctx.Write(`<span class="alternative">` + row.Alternative + `</span>`)
	case !ok || prop.IsEmpty():
		ctx.Write(`<span class="tbd">` + html.EscapeString(ctx.Locale().Get("tbd")) + `</span>`)
	default:
		ctx.WriteValue(prop)
	}

	ctx.Write("</td></tr>\n")
}

// WriteValue renders a property value according to its category.
func (ctx *Context) WriteValue(p model.Property) {
	switch p.Category {
	case model.CategoryMarkdown:
		ctx.Write(ctx.Markdown(p.Value))
	case model.CategoryEnum:
		ctx.WriteText(ctx.Locale().Get(p.Value))
	case model.CategoryTrace:
		ctx.WriteTraceList(p.Traces)
	case model.CategoryFile:
		url := ctx.ResolveAsset(AssetFile, p.Value)
		ctx.Write(`<a class="file" href="` + html.EscapeString(url) + `">`)
		ctx.WriteText(p.Value)
		ctx.Write(`</a>`)
	case model.CategoryURL:
		ctx.Write(`<a href="` + html.EscapeString(p.Value) + `">`)
		ctx.WriteText(p.Value)
		ctx.Write(`</a>`)
	case model.CategoryBoolean:
		ctx.WriteText(p.Value)
	default:
		// string, date, float and anything unrecognized render as text.
		ctx.WriteText(p.Value)
	}
}
