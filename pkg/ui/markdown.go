package ui

import (
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown blocks shown inside the panel.
// The glamour renderer is rebuilt only when width or style change.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// NewMarkdownRenderer creates a renderer wrapping at width using a glamour
// standard style, or glamour's auto detection for "auto".
func NewMarkdownRenderer(width int, style string) *MarkdownRenderer {
	mr := &MarkdownRenderer{width: width, style: style}
	mr.build()
	return mr
}

func (mr *MarkdownRenderer) build() {
	styleOpt := glamour.WithStandardStyle(mr.style)
	if mr.style == "auto" || mr.style == "" {
		styleOpt = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(mr.width))
	if err != nil {
		log.Printf("warning: markdown renderer unavailable (style %q): %v", mr.style, err)
		mr.renderer = nil
		return
	}
	mr.renderer = r
}

// Render renders markdown. Without a renderer the raw markdown is returned.
func (mr *MarkdownRenderer) Render(md string) (string, error) {
	if mr.renderer == nil {
		return md, nil
	}
	out, err := mr.renderer.Render(md)
	if err != nil {
		return md, err
	}
	return strings.Trim(out, "\n"), nil
}

// SetWidth rebuilds the renderer for a new wrap width. Non-positive widths
// and unchanged widths are ignored.
func (mr *MarkdownRenderer) SetWidth(width int) {
	if width <= 0 || width == mr.width {
		return
	}
	mr.width = width
	mr.build()
}

// SetStyle rebuilds the renderer for a new style.
func (mr *MarkdownRenderer) SetStyle(style string) {
	if style == mr.style {
		return
	}
	mr.style = style
	mr.build()
}
