package render

import (
	"io"

	"github.com/yuin/goldmark"
)

// goldmarkConverter adapts goldmark to the Converter interface.
type goldmarkConverter struct {
	md goldmark.Markdown
}

func (c *goldmarkConverter) Convert(src []byte, out io.Writer) error {
	return c.md.Convert(src, out)
}

// defaultMarkdown is the converter used when Options.Markdown is nil.
// goldmark is deterministic for a fixed input, which the renderer relies
// on for byte-identical repeat renders.
var defaultMarkdown Converter = &goldmarkConverter{md: goldmark.New()}

// NewMarkdown returns the standard goldmark-backed converter for callers
// wiring Options explicitly.
func NewMarkdown() Converter {
	return &goldmarkConverter{md: goldmark.New()}
}
