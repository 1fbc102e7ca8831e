// Package glossary wraps occurrences of glossary terms in rendered HTML
// fragments with links to their definitions. It operates on the parsed
// HTML tree so markup is never corrupted by substring replacement.
package glossary

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/archetype-tools/proteusview/internal/model"
)

type term struct {
	text string // lowercase term
	id   string // target object ID
}

// Highlighter links glossary terms found in text nodes. Safe for
// concurrent use after construction.
type Highlighter struct {
	terms []term
}

// New builds a highlighter from a term → object-ID map. Longer terms
// take precedence over their substrings; ties break alphabetically so
// output is deterministic.
func New(terms map[string]string) *Highlighter {
	h := &Highlighter{}
	for text, id := range terms {
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			continue
		}
		h.terms = append(h.terms, term{text: text, id: id})
	}
	sort.Slice(h.terms, func(i, j int) bool {
		if len(h.terms[i].text) != len(h.terms[j].text) {
			return len(h.terms[i].text) > len(h.terms[j].text)
		}
		return h.terms[i].text < h.terms[j].text
	})
	return h
}

// FromDocument collects every glossary-item object in the document and
// uses its display name as the term.
func FromDocument(doc *model.Document) *Highlighter {
	terms := make(map[string]string)
	for _, o := range doc.ObjectsByClass("glossary-item") {
		terms[o.Name()] = o.ID
	}
	return New(terms)
}

// Highlight returns the fragment with term occurrences wrapped in
// glossary links. Text already inside links, code, or pre blocks is
// left alone.
func (h *Highlighter) Highlight(fragment string) (string, error) {
	if len(h.terms) == 0 {
		return fragment, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return fragment, err
	}
	// Reparent under the wrapper so bare top-level text nodes can be
	// split like any other.
	for _, n := range nodes {
		body.AppendChild(n)
	}
	h.walk(body)

	var out strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return fragment, err
		}
	}
	return out.String(), nil
}

func (h *Highlighter) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "a", "code", "pre", "script", "style":
			return
		}
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			h.splitTextNode(n, c)
		} else {
			h.walk(c)
		}
		c = next
	}
}

// splitTextNode replaces one text node with an alternating sequence of
// text and glossary-link nodes covering every term match.
func (h *Highlighter) splitTextNode(parent, textNode *html.Node) {
	text := textNode.Data
	lower := strings.ToLower(text)

	var pieces []*html.Node
	pos := 0
	for pos < len(text) {
		t, at := h.nextMatch(lower, pos)
		if at < 0 {
			break
		}
		if at > pos {
			pieces = append(pieces, &html.Node{Type: html.TextNode, Data: text[pos:at]})
		}
		end := at + len(t.text)
		link := &html.Node{
			Type:     html.ElementNode,
			Data:     "a",
			DataAtom: atom.A,
			Attr: []html.Attribute{
				{Key: "class", Val: "glossary-term"},
				{Key: "href", Val: "#" + t.id},
			},
		}
		link.AppendChild(&html.Node{Type: html.TextNode, Data: text[at:end]})
		pieces = append(pieces, link)
		pos = end
	}
	if pieces == nil {
		return
	}
	if pos < len(text) {
		pieces = append(pieces, &html.Node{Type: html.TextNode, Data: text[pos:]})
	}

	for _, p := range pieces {
		parent.InsertBefore(p, textNode)
	}
	parent.RemoveChild(textNode)
}

// nextMatch finds the earliest whole-word match at or after pos. Among
// matches starting at the same offset the longest term wins because the
// term list is sorted longest-first.
func (h *Highlighter) nextMatch(lower string, pos int) (term, int) {
	best := term{}
	bestAt := -1
	for _, t := range h.terms {
		at := indexWord(lower, t.text, pos)
		if at < 0 {
			continue
		}
		if bestAt < 0 || at < bestAt {
			best, bestAt = t, at
		}
	}
	return best, bestAt
}

// indexWord is strings.Index restricted to whole-word occurrences.
func indexWord(haystack, needle string, from int) int {
	for from <= len(haystack)-len(needle) {
		at := strings.Index(haystack[from:], needle)
		if at < 0 {
			return -1
		}
		at += from
		if isWordBoundary(haystack, at, at+len(needle)) {
			return at
		}
		from = at + 1
	}
	return -1
}

func isWordBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
