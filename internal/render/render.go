// Package render turns a Proteus document tree into an HTML fragment.
//
// Rendering is a single synchronous walk over the tree: for each object
// the most specific registered rule emits its fragment and recurses into
// children. All output goes through one buffer so fragments appear in
// document order exactly once. A render pass mutates nothing in the
// document, so one Document can be rendered concurrently with different
// options.
package render

import (
	"io"

	"github.com/archetype-tools/proteusview/internal/i18n"
	"github.com/archetype-tools/proteusview/internal/model"
)

// Converter turns markdown source into HTML written to out. The
// goldmark-backed default lives in this package; callers may substitute
// their own.
type Converter interface {
	Convert(src []byte, out io.Writer) error
}

// Highlighter post-processes a rendered HTML fragment, e.g. wrapping
// glossary terms in links. It must leave markup structure intact.
type Highlighter interface {
	Highlight(fragment string) (string, error)
}

// AssetResolver maps a logical asset reference (icon name, attached
// file) to a concrete URL or data URI usable in the output HTML.
type AssetResolver interface {
	Resolve(kind AssetKind, ref string) string
}

// AssetKind selects the logical URL scheme an asset reference belongs to.
type AssetKind string

const (
	AssetIcon     AssetKind = "icon"
	AssetFile     AssetKind = "file"
	AssetTemplate AssetKind = "template"
)

// DependencyOracle answers "does a depend on b" for traceability
// matrices. model.Document implements it over trace properties.
type DependencyOracle interface {
	DependsOn(a, b *model.Object) bool
}

// Options configures one render pass.
type Options struct {
	Locale          i18n.Locale
	Markdown        Converter        // nil: goldmark default
	Highlighter     Highlighter      // nil: no glossary highlighting
	Assets          AssetResolver    // nil: references pass through verbatim
	Oracle          DependencyOracle // nil: the document's trace-based oracle
	MaxHeadingDepth int              // cap for section heading levels, default 6
}

// Rule renders one object. Rules recurse into children through
// Context.RenderChildren; they never return errors — missing data
// degrades to placeholders or suppressed output.
type Rule func(ctx *Context, o *model.Object)

// Renderer holds the rule registry. The zero registry renders every
// object through the generic fallback.
type Renderer struct {
	rules map[string]Rule
}

// New returns a Renderer with the standard archetype rules registered.
func New() *Renderer {
	r := &Renderer{rules: make(map[string]Rule)}
	registerArchetypes(r)
	return r
}

// Register binds a rule to a class tag, replacing any previous rule for
// that tag.
func (r *Renderer) Register(class string, rule Rule) {
	r.rules[class] = rule
}

// Render walks the document and returns the HTML fragment. Numbering
// counters start fresh on every call, so rendering the same document
// twice yields byte-identical output.
func (r *Renderer) Render(doc *model.Document, opts Options) string {
	if opts.Markdown == nil {
		opts.Markdown = defaultMarkdown
	}
	if opts.Oracle == nil {
		opts.Oracle = doc
	}
	if opts.MaxHeadingDepth <= 0 {
		opts.MaxHeadingDepth = 6
	}

	ctx := &Context{
		doc:      doc,
		renderer: r,
		opts:     opts,
	}
	ctx.Render(doc.Root)
	return ctx.buf.String()
}

// dispatch selects the rule for an object: class tags are tried from
// most specific (last) to most general, exact match only. Objects whose
// tags match no rule fall through to the generic name/value table. This
// is deliberately not substring matching — an appendix tagged
// [..., "section", "appendix"] renders as an appendix.
func (r *Renderer) dispatch(ctx *Context, o *model.Object) {
	for i := len(o.Classes) - 1; i >= 0; i-- {
		if rule, ok := r.rules[o.Classes[i]]; ok {
			rule(ctx, o)
			return
		}
	}
	renderGeneric(ctx, o)
}
