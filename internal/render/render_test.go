package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/archetype-tools/proteusview/internal/i18n"
	"github.com/archetype-tools/proteusview/internal/model"
)

func testLocale(t *testing.T) i18n.Locale {
	t.Helper()
	b, err := i18n.NewBundle("en")
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	return b.Locale("en")
}

func buildDoc(t *testing.T, root *model.Object) *model.Document {
	t.Helper()
	doc, err := model.NewDocument(root)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

func renderHTML(t *testing.T, root *model.Object) string {
	t.Helper()
	doc := buildDoc(t, root)
	return New().Render(doc, Options{Locale: testLocale(t)})
}

func named(name string) model.Property {
	return model.Property{Name: model.NameProperty, Category: model.CategoryString, Value: name}
}

func strProp(name, value string) model.Property {
	return model.Property{Name: name, Category: model.CategoryString, Value: value}
}

func TestMandatoryPlaceholderRow(t *testing.T) {
	root := &model.Object{
		ID:      "obj-1",
		Classes: []string{"archetype", "objective"},
		Properties: []model.Property{
			named("Sell tickets"),
			strProp("description", "tbd"),
		},
	}
	out := renderHTML(t, root)

	if !strings.Contains(out, `<span class="tbd">To be determined</span>`) {
		t.Error("mandatory tbd row should render the placeholder span")
	}
	if strings.Contains(out, ">tbd<") {
		t.Error("the literal placeholder token must never appear in output")
	}
}

func TestEmptyOptionalRowSuppressed(t *testing.T) {
	root := &model.Object{
		ID:      "obj-1",
		Classes: []string{"objective"},
		Properties: []model.Property{
			named("Sell tickets"),
			strProp("description", "Sell more tickets."),
			// urgency intentionally absent; comments present but empty.
			strProp("comments", ""),
		},
	}
	out := renderHTML(t, root)

	if strings.Contains(out, "Urgency") {
		t.Error("absent optional property must not produce a row")
	}
	if strings.Contains(out, "Comments") {
		t.Error("empty optional property must not produce a row")
	}
	if !strings.Contains(out, "Sell more tickets.") {
		t.Error("present property should render")
	}
}

func TestAlternativeOverridesValueAndPlaceholder(t *testing.T) {
	r := New()
	r.Register("special", func(ctx *Context, o *model.Object) {
		ctx.Write("<table>")
		ctx.WriteRow(o, Row{Property: "description", Mandatory: true, Span: 3, Alternative: "<em>from caller</em>"})
		ctx.Write("</table>")
	})

	root := &model.Object{
		ID:         "sp-1",
		Classes:    []string{"special"},
		Properties: []model.Property{strProp("description", "ignored")},
	}
	doc := buildDoc(t, root)
	out := r.Render(doc, Options{Locale: testLocale(t)})

	if !strings.Contains(out, `<span class="alternative"><em>from caller</em></span>`) {
		t.Error("alternative content should render inside the alternative span")
	}
	if strings.Contains(out, "ignored") {
		t.Error("alternative must replace the property value")
	}
	if !strings.Contains(out, `colspan="3"`) {
		t.Error("caller-supplied span should reach the value cell")
	}
}

func TestDanglingTraceDropped(t *testing.T) {
	root := &model.Object{
		ID:      "doc-1",
		Classes: []string{"document"},
		Children: []*model.Object{
			{ID: "stk-1", Classes: []string{"stakeholder"}, Properties: []model.Property{
				named("Ana"),
				strProp("description", "Clerk."),
				strProp("role", "clerk"),
			}},
			{ID: "obj-1", Classes: []string{"objective"}, Properties: []model.Property{
				named("Goal"),
				strProp("description", "A goal."),
				{Name: "authors", Category: model.CategoryTrace, Traces: []model.Trace{
					{Target: "stk-1", Type: "authors"},
					{Target: "ghost-99"},
				}},
			}},
		},
	}
	out := renderHTML(t, root)

	if !strings.Contains(out, `data-object-id="stk-1"`) {
		t.Error("resolved trace should render a link to its target")
	}
	if !strings.Contains(out, ">Ana</a>") {
		t.Error("trace link text should be the target display name")
	}
	if strings.Contains(out, "ghost-99") {
		t.Error("unresolved trace must be dropped silently")
	}
}

func TestTraceListFullyUnresolvedEmitsNothing(t *testing.T) {
	root := &model.Object{
		ID:      "obj-1",
		Classes: []string{"objective"},
		Properties: []model.Property{
			named("Goal"),
			strProp("description", "A goal."),
			{Name: "sources", Category: model.CategoryTrace, Traces: []model.Trace{{Target: "nope"}}},
		},
	}
	out := renderHTML(t, root)
	// The sources property has targets, so the row renders, but the list
	// itself is empty once everything is dropped.
	if strings.Contains(out, "trace-list") {
		t.Error("a fully unresolved trace set must not emit a list")
	}
}

func TestCoverAuthorsRenderInline(t *testing.T) {
	root := &model.Object{
		ID: "doc-1", Classes: []string{"document"},
		Properties: []model.Property{
			named("Doc"),
			{Name: "authors", Category: model.CategoryTrace, Traces: []model.Trace{
				{Target: "stk-1"},
				{Target: "stk-2"},
				{Target: "ghost"},
			}},
		},
		Children: []*model.Object{
			{ID: "stk-1", Classes: []string{"stakeholder"}, Properties: []model.Property{
				named("Ana"), strProp("description", "d"), strProp("role", "analyst"),
			}},
			{ID: "stk-2", Classes: []string{"stakeholder"}, Properties: []model.Property{
				named("Luis"), strProp("description", "d"), strProp("role", "client"),
			}},
		},
	}
	out := renderHTML(t, root)

	at := strings.Index(out, `class="prepared-by"`)
	if at < 0 {
		t.Fatal("cover should carry the prepared-by line")
	}
	line := out[at:strings.Index(out[at:], "</p>")+at]
	if !strings.Contains(line, ">Ana</a>, ") || !strings.Contains(line, ">Luis</a>") {
		t.Errorf("authors should render inline, comma separated: %q", line)
	}
	if strings.Contains(line, "<ul") {
		t.Error("cover authors must not render as a list")
	}
	if strings.Contains(line, "ghost") {
		t.Error("unresolved author must be dropped from the inline sequence")
	}
}

func TestSectionAndAppendixNumbering(t *testing.T) {
	sec := func(id, name string, children ...*model.Object) *model.Object {
		return &model.Object{ID: id, Classes: []string{"archetype", "section"},
			Properties: []model.Property{named(name)}, Children: children}
	}
	app := func(id, name string) *model.Object {
		// Appendices carry the section tag too; the more specific tag wins.
		return &model.Object{ID: id, Classes: []string{"archetype", "section", "appendix"},
			Properties: []model.Property{named(name)}}
	}

	root := &model.Object{
		ID: "doc-1", Classes: []string{"document"},
		Properties: []model.Property{named("Doc")},
		Children: []*model.Object{
			sec("s1", "One", sec("s11", "One-one"), sec("s12", "One-two")),
			sec("s2", "Two", sec("s21", "Two-one")),
			app("a1", "First appendix"),
			app("a2", "Second appendix"),
		},
	}
	out := renderHTML(t, root)

	for _, want := range []string{
		`<h2 class="section" id="s1"><span class="sec-number">1</span> One</h2>`,
		`<h3 class="section" id="s11"><span class="sec-number">1.1</span> One-one</h3>`,
		`<h3 class="section" id="s12"><span class="sec-number">1.2</span> One-two</h3>`,
		`<h2 class="section" id="s2"><span class="sec-number">2</span> Two</h2>`,
		`<h3 class="section" id="s21"><span class="sec-number">2.1</span> Two-one</h3>`,
		`<span class="appendix-label">Appendix A.</span> First appendix`,
		`<span class="appendix-label">Appendix B.</span> Second appendix`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output", want)
		}
	}

	// Headings must appear in document order.
	order := []string{"s1", "s11", "s12", "s2", "s21", "a1", "a2"}
	last := -1
	for _, id := range order {
		at := strings.Index(out, `id="`+id+`"`)
		if at < 0 {
			t.Fatalf("missing heading for %s", id)
		}
		if at < last {
			t.Errorf("heading %s out of document order", id)
		}
		last = at
	}

	// The table of contents mirrors the body numbering.
	for _, want := range []string{">1 One<", ">1.1 One-one<", ">2 Two<", ">A First appendix<"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing toc entry %q", want)
		}
	}
}

func TestHeadingDepthCapped(t *testing.T) {
	// Nest sections deeper than the cap; the heading tag saturates at h6.
	deepest := &model.Object{ID: "s7", Classes: []string{"section"}, Properties: []model.Property{named("Deep")}}
	node := deepest
	for i := 6; i >= 1; i-- {
		node = &model.Object{ID: strings.Repeat("s", i), Classes: []string{"section"},
			Properties: []model.Property{named("N")}, Children: []*model.Object{node}}
	}
	root := &model.Object{ID: "doc", Classes: []string{"document"},
		Properties: []model.Property{named("Doc")}, Children: []*model.Object{node}}

	out := renderHTML(t, root)
	if !strings.Contains(out, `<h6 class="section" id="s7">`) {
		t.Error("headings beyond the cap should stay at h6")
	}
	if strings.Contains(out, "<h7") {
		t.Error("no h7 elements may be emitted")
	}
}

func TestSharedCaptionCounter(t *testing.T) {
	fig := func(id, name string) *model.Object {
		return &model.Object{ID: id, Classes: []string{"external-resource"},
			Properties: []model.Property{named(name), strProp("file", name + ".png")}}
	}
	root := &model.Object{
		ID: "doc-1", Classes: []string{"document"},
		Properties: []model.Property{named("Doc")},
		Children: []*model.Object{
			{ID: "ob1", Classes: []string{"objective"}, Properties: []model.Property{named("Goal"), strProp("description", "d")}},
			fig("f1", "flow"),
			{ID: "m1", Classes: []string{"traceability-matrix"}, Properties: []model.Property{
				named("Coverage"),
				strProp("row-classes", "objective"),
				strProp("column-classes", "objective"),
			}},
			fig("f2", "states"),
		},
	}
	out := renderHTML(t, root)

	for _, want := range []string{
		"Figure 1: flow",
		"Traceability matrix 2: Coverage",
		"Figure 3: states",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing caption %q", want)
		}
	}
}

func TestCaptionCounterResetsPerRender(t *testing.T) {
	root := &model.Object{
		ID: "doc-1", Classes: []string{"document"},
		Properties: []model.Property{named("Doc")},
		Children: []*model.Object{
			{ID: "f1", Classes: []string{"figure"}, Properties: []model.Property{named("only"), strProp("file", "x.png")}},
		},
	}
	doc := buildDoc(t, root)
	r := New()
	opts := Options{Locale: testLocale(t)}

	first := r.Render(doc, opts)
	second := r.Render(doc, opts)
	if !strings.Contains(second, "Figure 1: only") {
		t.Error("caption counter must restart for each render pass")
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeat render differs (-first +second):\n%s", diff)
	}
}

func TestNumberingRestartsPerDocument(t *testing.T) {
	makeDoc := func(id, figName, secName string) *model.Object {
		return &model.Object{
			ID: id, Classes: []string{"archetype", "document"},
			Properties: []model.Property{named(id)},
			Children: []*model.Object{
				{ID: id + "-s1", Classes: []string{"section"},
					Properties: []model.Property{named(secName)}},
				{ID: id + "-f1", Classes: []string{"figure"},
					Properties: []model.Property{named(figName), strProp("file", figName + ".png")}},
				{ID: id + "-a1", Classes: []string{"archetype", "section", "appendix"},
					Properties: []model.Property{named("Extras")}},
			},
		}
	}
	// Two sibling documents under one root: every counter restarts at
	// the second document boundary.
	root := &model.Object{
		ID: "proj", Classes: []string{"project"},
		Children: []*model.Object{
			makeDoc("doc-a", "alpha", "First"),
			makeDoc("doc-b", "beta", "Second"),
		},
	}
	out := renderHTML(t, root)

	for _, want := range []string{
		"Figure 1: alpha",
		"Figure 1: beta",
		`id="doc-a-s1"><span class="sec-number">1</span> First`,
		`id="doc-b-s1"><span class="sec-number">1</span> Second`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output", want)
		}
	}
	if strings.Contains(out, "Figure 2:") {
		t.Error("caption counter leaked across a document boundary")
	}
	if got := strings.Count(out, `class="appendix-label">Appendix A.`); got != 2 {
		t.Errorf("expected both appendices labeled A, got %d", got)
	}
	if strings.Contains(out, "Appendix B.") {
		t.Error("appendix counter leaked across a document boundary")
	}
}

func TestMatrixWarnings(t *testing.T) {
	locale := testLocale(t)

	noClasses := &model.Object{
		ID: "doc-1", Classes: []string{"document"},
		Properties: []model.Property{named("Doc")},
		Children: []*model.Object{
			{ID: "m1", Classes: []string{"traceability-matrix"}, Properties: []model.Property{
				named("Broken"),
				strProp("column-classes", "objective"),
				// row-classes missing entirely
			}},
		},
	}
	out := New().Render(buildDoc(t, noClasses), Options{Locale: locale})
	if !strings.Contains(out, "no row or column classes are configured") {
		t.Error("expected the missing-class warning")
	}
	if strings.Contains(out, `<table class="traceability-matrix"`) {
		t.Error("a misconfigured matrix must not emit a table")
	}

	noObjects := &model.Object{
		ID: "doc-2", Classes: []string{"document"},
		Properties: []model.Property{named("Doc")},
		Children: []*model.Object{
			{ID: "m1", Classes: []string{"traceability-matrix"}, Properties: []model.Property{
				named("Empty"),
				strProp("row-classes", "objective"),
				strProp("column-classes", "objective"),
			}},
		},
	}
	out = New().Render(buildDoc(t, noObjects), Options{Locale: locale})
	if !strings.Contains(out, "match no objects") {
		t.Error("expected the no-matching-objects warning")
	}
}

func TestMatrixCells(t *testing.T) {
	root := &model.Object{
		ID: "doc-1", Classes: []string{"document"},
		Properties: []model.Property{named("Doc")},
		Children: []*model.Object{
			{ID: "ob1", Classes: []string{"objective"}, Properties: []model.Property{named("Goal"), strProp("description", "d")}},
			{ID: "rq1", Classes: []string{"information-requirement"}, Properties: []model.Property{
				named("Req"),
				strProp("description", "d"),
				{Name: "dependencies", Category: model.CategoryTrace, Traces: []model.Trace{{Target: "ob1"}}},
			}},
			{ID: "m1", Classes: []string{"traceability-matrix"}, Properties: []model.Property{
				named("Coverage"),
				strProp("row-classes", "information-requirement"),
				strProp("column-classes", "objective"),
			}},
		},
	}
	out := renderHTML(t, root)

	if !strings.Contains(out, `<td class="dep">&#9679;</td>`) {
		t.Error("expected a marked dependency cell")
	}
	if !strings.Contains(out, `<th scope="col">Goal</th>`) {
		t.Error("expected column header with object name")
	}
	if !strings.Contains(out, `<th scope="row">Req</th>`) {
		t.Error("expected row header with object name")
	}
}

func TestDispatchMostSpecificWins(t *testing.T) {
	// Appendix objects carry both the section and appendix tags. The
	// later, more specific tag must select the rule.
	root := &model.Object{
		ID: "doc", Classes: []string{"document"},
		Properties: []model.Property{named("Doc")},
		Children: []*model.Object{
			{ID: "a1", Classes: []string{"archetype", "section", "appendix"},
				Properties: []model.Property{named("Letters")}},
		},
	}
	out := renderHTML(t, root)

	if !strings.Contains(out, `class="appendix"`) {
		t.Error("object should render through the appendix rule")
	}
	if strings.Contains(out, `id="a1"><span class="sec-number">`) {
		t.Error("object must not render through the section rule")
	}
}

func TestGenericFallbackRendersEveryProperty(t *testing.T) {
	root := &model.Object{
		ID: "doc", Classes: []string{"document"},
		Properties: []model.Property{named("Doc")},
		Children: []*model.Object{
			{ID: "u1", Classes: []string{"something-new"}, Properties: []model.Property{
				named("Mystery"),
				strProp("flavor", "unknown"),
			}, Children: []*model.Object{
				{ID: "u2", Classes: []string{"also-new"}, Properties: []model.Property{named("Nested")}},
			}},
		},
	}
	out := renderHTML(t, root)

	if !strings.Contains(out, "object-generic") {
		t.Error("unknown archetypes fall through to the generic table")
	}
	if !strings.Contains(out, "flavor") || !strings.Contains(out, "unknown") {
		t.Error("generic fallback lists raw property names and values")
	}
	// Fallback still recurses: the nested unknown object renders too.
	if !strings.Contains(out, `id="u2"`) {
		t.Error("generic fallback must recurse into children")
	}
}

func TestRenderDeterministic(t *testing.T) {
	root := &model.Object{
		ID: "doc-1", Classes: []string{"document"},
		Properties: []model.Property{named("Doc"), strProp("version", "2.1")},
		Children: []*model.Object{
			{ID: "s1", Classes: []string{"section"}, Properties: []model.Property{
				named("Intro"),
				{Name: "description", Category: model.CategoryMarkdown, Value: "Some *emphasis* here."},
			}},
			{ID: "g1", Classes: []string{"glossary-item"}, Properties: []model.Property{
				named("emphasis"),
				{Name: "description", Category: model.CategoryMarkdown, Value: "A glossary entry."},
			}},
		},
	}
	doc := buildDoc(t, root)
	r := New()
	opts := Options{Locale: testLocale(t)}

	first := r.Render(doc, opts)
	second := r.Render(doc, opts)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("rendering is not idempotent (-first +second):\n%s", diff)
	}
	if !strings.Contains(first, "<em>emphasis</em>") {
		t.Error("markdown properties should convert to HTML")
	}
}

func TestEnumValuesTranslate(t *testing.T) {
	b, err := i18n.NewBundle("en")
	if err != nil {
		t.Fatal(err)
	}
	root := &model.Object{
		ID: "ob1", Classes: []string{"objective"},
		Properties: []model.Property{
			named("Goal"),
			strProp("description", "d"),
			{Name: "importance", Category: model.CategoryEnum, Value: "vital"},
		},
	}
	doc := buildDoc(t, root)

	es := New().Render(doc, Options{Locale: b.Locale("es")})
	if !strings.Contains(es, "Importancia") {
		t.Error("row label should translate")
	}
	en := New().Render(doc, Options{Locale: b.Locale("en")})
	if !strings.Contains(en, "Importance") {
		t.Error("row label should use english labels")
	}
}
