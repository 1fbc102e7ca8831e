package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/archetype-tools/proteusview/internal/i18n"
	"github.com/archetype-tools/proteusview/internal/model"
)

// Context is the state threaded through one render pass: the output
// buffer, the document-wide object index, the locale, and the numbering
// counters. Nothing else mutates during rendering.
type Context struct {
	doc      *model.Document
	renderer *Renderer
	opts     Options
	buf      strings.Builder

	secCounters   []int // hierarchical section numbers, index = depth
	secDepth      int
	appendixCount int
	captionCount  int // shared by figures and traceability matrices
}

// Doc returns the document being rendered.
func (ctx *Context) Doc() *model.Document { return ctx.doc }

// Locale returns the label dictionary view for this pass.
func (ctx *Context) Locale() i18n.Locale { return ctx.opts.Locale }

// Render dispatches one object to its rule.
func (ctx *Context) Render(o *model.Object) {
	ctx.renderer.dispatch(ctx, o)
}

// RenderChildren dispatches every child in document order.
func (ctx *Context) RenderChildren(o *model.Object) {
	for _, c := range o.Children {
		ctx.Render(c)
	}
}

// Write appends raw HTML to the output. Callers are responsible for
// escaping; prefer WriteText for plain content.
func (ctx *Context) Write(s string) {
	ctx.buf.WriteString(s)
}

// Writef appends formatted raw HTML to the output.
func (ctx *Context) Writef(format string, args ...any) {
	fmt.Fprintf(&ctx.buf, format, args...)
}

// WriteText appends HTML-escaped text to the output.
func (ctx *Context) WriteText(s string) {
	ctx.buf.WriteString(html.EscapeString(s))
}

// ResetNumbering restarts every counter: hierarchical section numbers,
// appendix letters, and the shared figure/matrix caption sequence.
// Document rules call this so numbering is scoped to the document root,
// not to the render pass — a tree holding several documents numbers
// each one from scratch.
func (ctx *Context) ResetNumbering() {
	ctx.secCounters = ctx.secCounters[:0]
	ctx.secDepth = 0
	ctx.appendixCount = 0
	ctx.captionCount = 0
}

// EnterSection assigns the next hierarchical section number at the
// current depth and descends one level. Numbering restarts for child
// sections whenever a new parent section begins. Returns the dotted
// number, e.g. "2.3.1".
func (ctx *Context) EnterSection() string {
	if len(ctx.secCounters) <= ctx.secDepth {
		ctx.secCounters = append(ctx.secCounters, 0)
	}
	// Drop deeper counters so the next child level restarts at 1.
	ctx.secCounters = ctx.secCounters[:ctx.secDepth+1]
	ctx.secCounters[ctx.secDepth]++
	ctx.secDepth++

	parts := make([]string, ctx.secDepth)
	for i := 0; i < ctx.secDepth; i++ {
		parts[i] = strconv.Itoa(ctx.secCounters[i])
	}
	return strings.Join(parts, ".")
}

// LeaveSection ascends one section level.
func (ctx *Context) LeaveSection() {
	if ctx.secDepth > 0 {
		ctx.secDepth--
	}
}

// HeadingLevel maps the current section depth to an HTML heading level,
// capped at the configured maximum.
func (ctx *Context) HeadingLevel() int {
	level := ctx.secDepth + 1
	if level > ctx.opts.MaxHeadingDepth {
		level = ctx.opts.MaxHeadingDepth
	}
	return level
}

// NextAppendix returns the next alphabetic appendix label: A..Z, then
// AA, AB, … Appendix numbering is independent of section numbering.
func (ctx *Context) NextAppendix() string {
	ctx.appendixCount++
	return alphaLabel(ctx.appendixCount)
}

// NextCaption returns the next caption number. Figures and traceability
// matrices share this sequence; it resets with each render pass.
func (ctx *Context) NextCaption() int {
	ctx.captionCount++
	return ctx.captionCount
}

// alphaLabel converts 1-based n to spreadsheet-style letters.
func alphaLabel(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// Markdown converts markdown source to HTML and applies the glossary
// highlighter when configured. Conversion failures degrade to escaped
// plain text rather than failing the pass.
func (ctx *Context) Markdown(src string) string {
	var out strings.Builder
	if err := ctx.opts.Markdown.Convert([]byte(src), &out); err != nil {
		return "<p>" + html.EscapeString(src) + "</p>"
	}
	fragment := out.String()
	if ctx.opts.Highlighter != nil {
		if highlighted, err := ctx.opts.Highlighter.Highlight(fragment); err == nil {
			fragment = highlighted
		}
	}
	return fragment
}

// ResolveAsset maps a logical asset reference through the configured
// resolver; without one the reference passes through unchanged.
func (ctx *Context) ResolveAsset(kind AssetKind, ref string) string {
	if ctx.opts.Assets == nil {
		return ref
	}
	return ctx.opts.Assets.Resolve(kind, ref)
}
