package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Context identifies which part of the panel has the keyboard.
type Context string

const (
	ContextTree   Context = "tree"
	ContextFilter Context = "filter"
	ContextRename Context = "rename"
	ContextImport Context = "import"
)

// ContextHelpContent contains compact help content for each context.
// Content should fit in the side panel without scrolling.
var ContextHelpContent = map[Context]string{
	ContextTree:   contextHelpTree,
	ContextFilter: contextHelpFilter,
	ContextRename: contextHelpRename,
	ContextImport: contextHelpImport,
}

// GetContextHelp returns the help content for a given context.
// Falls back to the tree help if the context has no specific content.
func GetContextHelp(ctx Context) string {
	if content, ok := ContextHelpContent[ctx]; ok {
		return content
	}
	return contextHelpTree
}

// RenderContextHelp renders the quick reference for ctx, sized to the panel.
func RenderContextHelp(ctx Context, theme Theme, width int) string {
	content := GetContextHelp(ctx)

	r := theme.Renderer

	modalWidth := width - 2
	if modalWidth < 20 {
		modalWidth = 20
	}

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	contentStyle := r.NewStyle().
		Foreground(theme.Subtext)

	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Quick Reference"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", modalWidth-4)))
	b.WriteString("\n\n")
	b.WriteString(contentStyle.Render(content))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("? or Esc to close"))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(0, 1).
		Width(modalWidth)

	return modalStyle.Render(b.String())
}

const contextHelpTree = `Scene Tree

Navigation
  j/k       Move up/down
  g/G       Jump to top/bottom
  h/l       Collapse or parent /
            expand or first child

Nodes
  space     Toggle visibility
  enter     Expand/collapse
  R         Reset layout
  r         Rename node
  y         Copy node path and id

Toolbar
  a L i     Add, link, library
  /         Edit filter
  1 2 tab   Switch tabs`

const contextHelpFilter = `Filter Field

  type      Edit the filter text
  enter     Keep text, back to tree
  esc       Keep text, back to tree

The filter text is kept but does
not hide any nodes yet.`

const contextHelpRename = `Rename Node

  type      Edit the label
  enter     Apply the new label
  esc       Cancel

A renamed node gets a new identity,
so its collapse state starts over.`

const contextHelpImport = `Import Tab

Importing is not available yet.

  1 or tab  Back to the scene tab`
