package render

import (
	"html"
	"strings"

	"github.com/archetype-tools/proteusview/internal/model"
)

// Code views render conceptual-modeling objects as pseudo-code. This is
// cosmetic text formatting only: nothing is type-checked, and absent
// optional fields show the dictionary's placeholder glyph so the block
// stays visually parseable.

// renderObjectType renders a class declaration with its attributes and
// invariants as the body.
func renderObjectType(ctx *Context, o *model.Object) {
	var b codeBlock
	decl := "class " + o.Name()
	if super := o.PropertyValue("supertype"); super != "" {
		decl += " : " + super
	}
	b.open(decl)
	for _, c := range o.Children {
		switch structuralMemberClass(c) {
		case "attribute":
			b.line(attributeLine(ctx, c))
		case "invariant":
			b.line("invariant " + c.Name() + ": " + expressionOf(ctx, c))
		}
	}
	b.close()
	b.emit(ctx, o, "object-type")
}

// renderAssociation renders the association with its participant roles.
func renderAssociation(ctx *Context, o *model.Object) {
	var b codeBlock
	b.open("association " + o.Name())
	for _, c := range o.Children {
		switch structuralMemberClass(c) {
		case "role":
			b.line(attributeLine(ctx, c))
		case "attribute":
			b.line(attributeLine(ctx, c))
		case "invariant":
			b.line("invariant " + c.Name() + ": " + expressionOf(ctx, c))
		}
	}
	b.close()
	b.emit(ctx, o, "association")
}

// renderEnumeration lists the enumeration values one per line.
func renderEnumeration(ctx *Context, o *model.Object) {
	var b codeBlock
	b.open("enum " + o.Name())
	for _, c := range o.Children {
		if structuralMemberClass(c) == "enum-value" {
			b.line(withComment(c.Name(), c.PropertyValue("description")))
		}
	}
	b.close()
	b.emit(ctx, o, "enumeration")
}

// renderConstraint renders a standalone constraint expression.
func renderConstraint(ctx *Context, o *model.Object) {
	var b codeBlock
	b.open("constraint " + o.Name())
	b.line(withComment(expressionOf(ctx, o), o.PropertyValue("description")))
	b.close()
	b.emit(ctx, o, "constraint")
}

// renderSystemOperation renders the operation signature plus pre- and
// postconditions.
func renderSystemOperation(ctx *Context, o *model.Object) {
	var params []string
	for _, c := range o.Children {
		if structuralMemberClass(c) == "parameter" {
			params = append(params, c.Name()+" : "+orGlyph(ctx, c.PropertyValue("type")))
		}
	}

	var b codeBlock
	decl := "operation " + o.Name() + "(" + strings.Join(params, ", ") + ")"
	if result := o.PropertyValue("result-type"); result != "" {
		decl += " : " + result
	}
	b.open(decl)
	b.line("pre:  " + orGlyph(ctx, o.PropertyValue("precondition")))
	b.line("post: " + orGlyph(ctx, o.PropertyValue("postcondition")))
	b.close()
	b.emit(ctx, o, "system-operation")
}

// attributeLine formats one member: name, type annotation, multiplicity
// bounds, init expression, and a trailing comment from the description.
func attributeLine(ctx *Context, o *model.Object) string {
	line := o.Name() + " : " + orGlyph(ctx, o.PropertyValue("type"))

	lower, hasLower := boundOf(ctx, o, "lower-bound")
	upper, hasUpper := boundOf(ctx, o, "upper-bound")
	if hasLower || hasUpper {
		line += " [" + lower + ".." + upper + "]"
	}

	if init, ok := o.Property("init-value"); ok {
		line += " = " + orGlyph(ctx, init.Value)
	}
	return withComment(line, o.PropertyValue("description"))
}

func boundOf(ctx *Context, o *model.Object, name string) (string, bool) {
	p, ok := o.Property(name)
	if !ok {
		return ctx.glyph(), false
	}
	return orGlyph(ctx, p.Value), true
}

func expressionOf(ctx *Context, o *model.Object) string {
	return orGlyph(ctx, o.PropertyValue("expression"))
}

func orGlyph(ctx *Context, v string) string {
	if v == "" || v == model.Placeholder {
		return ctx.glyph()
	}
	return v
}

// glyph is the placeholder for absent optional code-view fields, taken
// from the label dictionary so it localizes with everything else.
func (ctx *Context) glyph() string {
	return ctx.Locale().Get("unresolved")
}

func withComment(line, description string) string {
	if description == "" {
		return line
	}
	// Multi-line descriptions collapse into one comment line.
	return line + " // " + strings.Join(strings.Fields(description), " ")
}

// structuralMemberClass mirrors dispatch order for code-view members:
// the most specific recognized tag wins.
func structuralMemberClass(o *model.Object) string {
	for i := len(o.Classes) - 1; i >= 0; i-- {
		switch o.Classes[i] {
		case "attribute", "role", "invariant", "enum-value", "parameter":
			return o.Classes[i]
		}
	}
	return ""
}

// codeBlock accumulates pseudo-code lines and emits them as a single
// escaped <pre> element.
type codeBlock struct {
	lines []string
}

func (b *codeBlock) open(decl string) {
	b.lines = append(b.lines, decl, "{")
}

func (b *codeBlock) line(s string) {
	b.lines = append(b.lines, "    "+s)
}

func (b *codeBlock) close() {
	b.lines = append(b.lines, "}")
}

func (b *codeBlock) emit(ctx *Context, o *model.Object, class string) {
	ctx.Write(`<pre class="code-view ` + html.EscapeString(class) + `" id="` + html.EscapeString(o.ID) + `">`)
	ctx.WriteText(strings.Join(b.lines, "\n"))
	ctx.Write("</pre>\n")
}
