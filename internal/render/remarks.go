package render

import (
	"html"

	"github.com/archetype-tools/proteusview/internal/model"
)

// writeRemarksTable is the shared layout for business-analysis
// archetypes: a header with the archetype label and object name, the
// common bookkeeping rows, archetype-specific rows, and a trailing
// comments row. Children render after the table.
func writeRemarksTable(ctx *Context, o *model.Object, class string, specific []Row) {
	ctx.Write(`<div class="object ` + html.EscapeString(class) + `" id="` + html.EscapeString(o.ID) + `">` + "\n")
	ctx.Write(`<table class="remarks">` + "\n")

	ctx.Write(`<tr class="header"><th colspan="2"><span class="object-id">`)
	ctx.WriteText(o.ID)
	ctx.Write(`</span> `)
	ctx.WriteText(o.Name())
	ctx.Write("</th></tr>\n")

	ctx.WriteRow(o, Row{Property: "version"})
	ctx.WriteRow(o, Row{Property: "date"})
	ctx.WriteRow(o, Row{Property: "authors"})
	ctx.WriteRow(o, Row{Property: "sources"})
	ctx.WriteRow(o, Row{Property: "description", Mandatory: true})
	for _, row := range specific {
		ctx.WriteRow(o, row)
	}
	ctx.WriteRow(o, Row{Property: "comments"})

	ctx.Write("</table>\n")
	ctx.RenderChildren(o)
	ctx.Write("</div>\n")
}

// renderObjective covers goals and sub-goals; sub-objectives are
// ordinary children and render below the table.
func renderObjective(ctx *Context, o *model.Object) {
	writeRemarksTable(ctx, o, "objective", []Row{
		{Property: "importance", Mandatory: true},
		{Property: "urgency"},
		{Property: "status", Mandatory: true},
		{Property: "stability"},
	})
}

func renderStakeholder(ctx *Context, o *model.Object) {
	writeRemarksTable(ctx, o, "stakeholder", []Row{
		{Property: "role", Mandatory: true},
		{Property: "category"},
		{Property: "organization"},
		{Property: "address"},
		{Property: "telephone"},
		{Property: "attends-to"},
	})
}

func renderOrganization(ctx *Context, o *model.Object) {
	writeRemarksTable(ctx, o, "organization", []Row{
		{Property: "address", Mandatory: true},
		{Property: "telephone"},
	})
}

// renderInformationRequirement adds the dependency traces that make the
// requirement traceable to its origin objects.
func renderInformationRequirement(ctx *Context, o *model.Object) {
	writeRemarksTable(ctx, o, "information-requirement", []Row{
		{Property: "importance", Mandatory: true},
		{Property: "urgency"},
		{Property: "status", Mandatory: true},
		{Property: "stability"},
		{Property: "dependencies"},
	})
}
