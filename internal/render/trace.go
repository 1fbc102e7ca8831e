package render

import (
	"html"

	"github.com/archetype-tools/proteusview/internal/model"
)

// WriteTraceList renders a set of directed references as a bulleted list
// of links. References whose target ID is not in the document index are
// dropped silently; if nothing resolves, no list is emitted at all.
func (ctx *Context) WriteTraceList(traces []model.Trace) {
	resolved := ctx.resolveTraces(traces)
	if len(resolved) == 0 {
		return
	}
	ctx.Write(`<ul class="trace-list">`)
	for _, rt := range resolved {
		ctx.Write(`<li>`)
		ctx.writeTraceLink(rt)
		ctx.Write(`</li>`)
	}
	ctx.Write(`</ul>`)
}

// WriteTraceParagraph renders references inline, comma-separated, for
// properties that participate in a running sentence.
func (ctx *Context) WriteTraceParagraph(traces []model.Trace) {
	resolved := ctx.resolveTraces(traces)
	for i, rt := range resolved {
		if i > 0 {
			ctx.Write(", ")
		}
		ctx.writeTraceLink(rt)
	}
}

type resolvedTrace struct {
	target *model.Object
	typ    string
}

func (ctx *Context) resolveTraces(traces []model.Trace) []resolvedTrace {
	var out []resolvedTrace
	for _, t := range traces {
		target, ok := ctx.doc.Lookup(t.Target)
		if !ok {
			continue
		}
		out = append(out, resolvedTrace{target: target, typ: t.Type})
	}
	return out
}

// writeTraceLink emits one link keyed by the target's ID; the host
// application uses the fragment and data attribute to navigate.
func (ctx *Context) writeTraceLink(rt resolvedTrace) {
	id := html.EscapeString(rt.target.ID)
	ctx.Write(`<a class="object-link" href="#` + id + `" data-object-id="` + id + `">`)
	ctx.WriteText(rt.target.Name())
	ctx.Write(`</a>`)
	if rt.typ != "" {
		ctx.Write(` <span class="trace-type">(`)
		ctx.WriteText(ctx.Locale().Get("trace." + rt.typ))
		ctx.Write(`)</span>`)
	}
}
