package render

import (
	"html"
	"strconv"
	"strings"

	"github.com/archetype-tools/proteusview/internal/model"
)

// renderMatrix cross-tabulates two configured class sets and marks each
// cell where the row object depends on the column object, per the
// configured oracle. A matrix with missing configuration or no matching
// objects renders a warning banner, never an empty table.
func renderMatrix(ctx *Context, o *model.Object) {
	rowClasses := strings.Fields(o.PropertyValue("row-classes"))
	colClasses := strings.Fields(o.PropertyValue("column-classes"))

	if len(rowClasses) == 0 || len(colClasses) == 0 {
		writeMatrixWarning(ctx, o, "matrix.warning.no-classes")
		return
	}

	rows := ctx.doc.ObjectsByClass(rowClasses...)
	cols := ctx.doc.ObjectsByClass(colClasses...)
	if len(rows) == 0 || len(cols) == 0 {
		writeMatrixWarning(ctx, o, "matrix.warning.no-objects")
		return
	}

	n := ctx.NextCaption()

	ctx.Write(`<table class="traceability-matrix" id="` + html.EscapeString(o.ID) + `">` + "\n")
	ctx.Write(`<caption>`)
	ctx.WriteText(ctx.Locale().Get("matrix.caption") + " " + strconv.Itoa(n) + ": " + o.Name())
	ctx.Write("</caption>\n")

	ctx.Write(`<tr><th></th>`)
	for _, c := range cols {
		ctx.Write(`<th scope="col">`)
		ctx.WriteText(c.Name())
		ctx.Write(`</th>`)
	}
	ctx.Write("</tr>\n")

	for _, r := range rows {
		ctx.Write(`<tr><th scope="row">`)
		ctx.WriteText(r.Name())
		ctx.Write(`</th>`)
		for _, c := range cols {
			if ctx.opts.Oracle.DependsOn(r, c) {
				ctx.Write(`<td class="dep">&#9679;</td>`)
			} else {
				ctx.Write(`<td></td>`)
			}
		}
		ctx.Write("</tr>\n")
	}
	ctx.Write("</table>\n")
}

func writeMatrixWarning(ctx *Context, o *model.Object, key string) {
	ctx.Write(`<p class="matrix-warning" id="` + html.EscapeString(o.ID) + `">`)
	ctx.WriteText(ctx.Locale().Get(key))
	ctx.Write("</p>\n")
}
