package ui

import (
	"log"

	"github.com/vanderheijden86/sceneview/pkg/collapse"
	"github.com/vanderheijden86/sceneview/pkg/config"
	"github.com/vanderheijden86/sceneview/pkg/scene"
)

// Tab selects what the panel shows below the tab bar.
type Tab int

const (
	TabScene Tab = iota
	TabImport
)

// String returns the tab title.
func (t Tab) String() string {
	if t == TabImport {
		return "Import"
	}
	return "Scene"
}

// FilterHint is shown in the filter field while it is empty.
const FilterHint = "Filter Nodes"

// Toolbar button labels.
const (
	ButtonAddNode       = "+"
	ButtonLink          = "Link"
	ButtonImportLibrary = "Library"
)

const importPlaceholder = `## Import

Importing scenes is not available yet.`

// PanelState is the session-scoped state of the panel. It is created once,
// mutated by every frame and never persisted.
type PanelState struct {
	Tab        Tab
	FilterText string // Stored and shown, not applied to the tree
	Root       scene.Node
	Collapse   *collapse.Store
}

// NewPanelState returns the start-up state with the demo hierarchy.
func NewPanelState() *PanelState {
	return &PanelState{
		Tab:      TabScene,
		Root:     scene.DemoTree(),
		Collapse: collapse.New(),
	}
}

// RenameNode relabels the node at path, where path starts with the root
// label. Returns false if the path does not resolve.
func (s *PanelState) RenameNode(path []string, label string) bool {
	if len(path) == 0 || path[0] != s.Root.Label {
		return false
	}
	return s.Root.Rename(path[1:], label)
}

// RenameNodeAt relabels the node at the given child positions from the
// root, as recorded in Row.Index. Returns false if the index does not resolve.
func (s *PanelState) RenameNodeAt(index []int, label string) bool {
	return s.Root.RenameAt(index, label)
}

// Panel draws the tab bar, the scene toolbar and the hierarchy.
type Panel struct {
	Traversal Traversal
	Indent    int
	Markdown  *MarkdownRenderer
}

// NewPanel builds a panel from configuration.
func NewPanel(cfg config.Config) *Panel {
	return &Panel{
		Traversal: ParseTraversal(cfg.Tree.Traversal),
		Indent:    cfg.Tree.Indent,
		Markdown:  NewMarkdownRenderer(cfg.UI.PanelWidth, cfg.UI.MarkdownStyle),
	}
}

// Configure applies a reloaded configuration.
func (p *Panel) Configure(cfg config.Config) {
	p.Traversal = ParseTraversal(cfg.Tree.Traversal)
	p.Indent = cfg.Tree.Indent
	if p.Markdown == nil {
		p.Markdown = NewMarkdownRenderer(cfg.UI.PanelWidth, cfg.UI.MarkdownStyle)
		return
	}
	p.Markdown.SetStyle(cfg.UI.MarkdownStyle)
}

// RenderOnce draws a single frame of state with no user input, exactly as
// the first frame of the TUI would look at the given width.
func RenderOnce(state *PanelState, cfg config.Config, theme Theme, width int) *Frame {
	f := NewFrame(theme, width, Input{})
	NewPanel(cfg).Render(state, f)
	return f
}

// Render is the per-frame entry point. It draws into f and applies f's
// input to state.
func (p *Panel) Render(state *PanelState, f *Frame) {
	f.Horizontal(func() {
		if f.SelectableLabel(TabScene.String(), state.Tab == TabScene, ActionSelectScene) {
			state.Tab = TabScene
		}
		if f.SelectableLabel(TabImport.String(), state.Tab == TabImport, ActionSelectImport) {
			state.Tab = TabImport
		}
	})
	f.Separator()

	switch state.Tab {
	case TabScene:
		p.renderSceneTab(state, f)
	case TabImport:
		p.renderImportTab(f)
	}
}

func (p *Panel) renderSceneTab(state *PanelState, f *Frame) {
	f.Horizontal(func() {
		if f.Button(ButtonAddNode, ActionAddNode) {
			f.Notify("Add node is not implemented yet")
		}
		if f.Button(ButtonLink, ActionLink) {
			f.Notify("Link is not implemented yet")
		}

		// The filter takes whatever width the buttons leave
		used := f.ButtonWidth(ButtonAddNode) + f.ButtonWidth(ButtonLink) + f.ButtonWidth(ButtonImportLibrary) + 3
		f.TextEdit(&state.FilterText, FilterHint, f.Width()-used)

		if f.Button(ButtonImportLibrary, ActionImportLibrary) {
			f.Notify("Import from library is not implemented yet")
		}
	})
	f.Separator()

	if state.Collapse == nil {
		state.Collapse = collapse.New()
	}
	tree := TreeRenderer{Store: state.Collapse, Traversal: p.Traversal, Indent: p.Indent}
	tree.Render(f, &state.Root, nil)
}

func (p *Panel) renderImportTab(f *Frame) {
	if p.Markdown == nil {
		f.Text(importPlaceholder)
		return
	}
	p.Markdown.SetWidth(f.Width())
	out, err := p.Markdown.Render(importPlaceholder)
	if err != nil {
		log.Printf("warning: rendering import placeholder: %v", err)
	}
	f.Text(out)
}
