package glossary

import (
	"strings"
	"testing"

	"github.com/archetype-tools/proteusview/internal/model"
)

func TestHighlight_WrapsWholeWords(t *testing.T) {
	h := New(map[string]string{"ticket": "gls-ticket"})

	out, err := h.Highlight("<p>Each ticket has a price. Tickets vary.</p>")
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}

	if !strings.Contains(out, `<a class="glossary-term" href="#gls-ticket">ticket</a>`) {
		t.Errorf("expected wrapped term, got %q", out)
	}
	// "Tickets" is a different word; whole-word matching leaves it alone.
	if strings.Contains(out, ">Tickets</a>") {
		t.Error("partial word must not be wrapped")
	}
}

func TestHighlight_CaseInsensitiveKeepsOriginalText(t *testing.T) {
	h := New(map[string]string{"Ticket": "gls-ticket"})

	out, err := h.Highlight("<p>TICKET machines.</p>")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, ">TICKET</a>") {
		t.Errorf("matched text should keep its original casing, got %q", out)
	}
}

func TestHighlight_SkipsLinksAndCode(t *testing.T) {
	h := New(map[string]string{"ticket": "gls-ticket"})

	for _, fragment := range []string{
		`<p><a href="#x">a ticket link</a></p>`,
		`<pre>ticket in code</pre>`,
		`<p><code>ticket</code></p>`,
	} {
		out, err := h.Highlight(fragment)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(out, "glossary-term") {
			t.Errorf("term inside %q must not be wrapped: %q", fragment, out)
		}
	}
}

func TestHighlight_LongestTermWins(t *testing.T) {
	h := New(map[string]string{
		"ticket":         "gls-ticket",
		"ticket machine": "gls-machine",
	})

	out, err := h.Highlight("<p>The ticket machine broke.</p>")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `href="#gls-machine">ticket machine</a>`) {
		t.Errorf("longest term should win, got %q", out)
	}
	if strings.Contains(out, `href="#gls-ticket"`) {
		t.Errorf("shorter overlapping term must not also match, got %q", out)
	}
}

func TestHighlight_NoTermsPassthrough(t *testing.T) {
	h := New(nil)
	const fragment = "<p>untouched</p>"
	out, err := h.Highlight(fragment)
	if err != nil {
		t.Fatal(err)
	}
	if out != fragment {
		t.Errorf("expected passthrough, got %q", out)
	}
}

func TestFromDocument_CollectsGlossaryItems(t *testing.T) {
	root := &model.Object{
		ID: "doc", Classes: []string{"document"},
		Children: []*model.Object{
			{ID: "gls-1", Classes: []string{"glossary-item"}, Properties: []model.Property{
				{Name: model.NameProperty, Category: model.CategoryString, Value: "invoice"},
			}},
		},
	}
	doc, err := model.NewDocument(root)
	if err != nil {
		t.Fatal(err)
	}

	h := FromDocument(doc)
	out, err := h.Highlight("<p>Send the invoice.</p>")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `href="#gls-1">invoice</a>`) {
		t.Errorf("expected glossary link from document terms, got %q", out)
	}
}
