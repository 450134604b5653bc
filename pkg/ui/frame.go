package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/sceneview/pkg/identity"
)

// Action is the user interaction delivered to a single frame.
type Action int

const (
	ActionNone Action = iota
	ActionToggleVisible
	ActionToggleOpen
	ActionExpand
	ActionCollapse
	ActionSelectScene
	ActionSelectImport
	ActionAddNode
	ActionLink
	ActionImportLibrary
	ActionEditFilter
)

// Input is everything the host collected for one frame.
// Row actions apply to the tree row at Cursor.
type Input struct {
	Cursor        int
	Action        Action
	Text          string // Replacement text for ActionEditFilter
	FilterFocused bool
}

// Row describes one tree row drawn by a frame.
type Row struct {
	ID      identity.ID `json:"id"`
	Path    []string    `json:"path"`
	Index   []int       `json:"index"` // Child positions from the root
	Label   string      `json:"label"`
	Depth   int         `json:"depth"`
	Branch  bool        `json:"branch"`
	Open    bool        `json:"open"`
	Visible bool        `json:"visible"`
}

// RowSpec is what the tree renderer knows about a row before drawing it.
type RowSpec struct {
	ID     identity.ID
	Path   []string
	Index  []int // Child positions from the root; empty for the root
	Depth  int
	Prefix string // Tree guide characters, already laid out
	Label  string
}

// Frame is the drawing surface for one pass of the panel.
//
// Widgets are drawn in call order. Each widget applies the frame's Input to
// the state it is bound to as it is drawn, so a frame both renders and
// mutates. Nothing on a Frame survives to the next one; state that must
// persist lives on PanelState.
type Frame struct {
	theme Theme
	width int
	input Input

	lines   []string // Shell widgets
	pending []string // Widgets inside Horizontal
	inLine  bool

	rows   []Row
	tree   []string
	notice string
}

// NewFrame creates an empty frame of the given width.
func NewFrame(theme Theme, width int, input Input) *Frame {
	if width < 10 {
		width = 10
	}
	return &Frame{theme: theme, width: width, input: input}
}

// Width returns the frame width in cells.
func (f *Frame) Width() int {
	return f.width
}

// Input returns the input this frame was created with.
func (f *Frame) Input() Input {
	return f.input
}

// Horizontal lays out every widget drawn by fn on one line.
func (f *Frame) Horizontal(fn func()) {
	f.inLine = true
	fn()
	f.inLine = false
	if len(f.pending) > 0 {
		f.lines = append(f.lines, strings.Join(f.pending, " "))
		f.pending = nil
	}
}

func (f *Frame) emit(s string) {
	if f.inLine {
		f.pending = append(f.pending, s)
		return
	}
	f.lines = append(f.lines, s)
}

// SelectableLabel draws a label that can be selected, reporting whether it
// was clicked this frame.
func (f *Frame) SelectableLabel(label string, selected bool, action Action) bool {
	r := f.theme.Renderer
	style := r.NewStyle().Padding(0, 1)
	if selected {
		style = style.Foreground(f.theme.Primary).Bold(true).Underline(true)
	} else {
		style = style.Foreground(f.theme.Muted)
	}
	f.emit(style.Render(label))
	return f.input.Action == action
}

// Button draws a button, reporting whether it was pressed this frame.
func (f *Frame) Button(label string, action Action) bool {
	f.emit(f.buttonStyle().Render(label))
	return f.input.Action == action
}

// ButtonWidth returns the cells a Button with label occupies.
func (f *Frame) ButtonWidth(label string) int {
	return lipgloss.Width(f.buttonStyle().Render(label))
}

func (f *Frame) buttonStyle() lipgloss.Style {
	return f.theme.Renderer.NewStyle().
		Foreground(f.theme.Secondary).
		Border(lipgloss.NormalBorder(), false, true).
		BorderForeground(f.theme.Border)
}

// TextEdit draws a single-line text field bound to value, showing hint while
// empty. Returns true if the frame's input changed value.
func (f *Frame) TextEdit(value *string, hint string, width int) bool {
	changed := false
	if f.input.Action == ActionEditFilter && *value != f.input.Text {
		*value = f.input.Text
		changed = true
	}

	r := f.theme.Renderer
	inner := width - 2
	if inner < 4 {
		inner = 4
	}

	text := *value
	style := f.theme.Base
	if text == "" {
		text = hint
		style = r.NewStyle().Foreground(f.theme.Muted).Italic(true)
	}
	if f.input.FilterFocused {
		text = *value + "▏"
		style = r.NewStyle().Foreground(f.theme.Highlight)
	}
	if runewidth.StringWidth(text) > inner {
		text = runewidth.TruncateLeft(text, runewidth.StringWidth(text)-inner+1, "…")
	}
	text = runewidth.FillRight(text, inner)

	bracket := r.NewStyle().Foreground(f.theme.Border)
	f.emit(bracket.Render("[") + style.Render(text) + bracket.Render("]"))
	return changed
}

// Separator draws a horizontal rule across the frame.
func (f *Frame) Separator() {
	rule := f.theme.Renderer.NewStyle().Foreground(f.theme.Border)
	f.emit(rule.Render(strings.Repeat("─", f.width)))
}

// Text draws a pre-rendered block, one line per row.
func (f *Frame) Text(block string) {
	for _, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
		f.emit(line)
	}
}

// Notify posts a one-line message for the host's status bar.
func (f *Frame) Notify(msg string) {
	f.notice = msg
}

// Leaf draws a tree row without an expand affordance. A visibility toggle
// targeted at this row flips *visible.
func (f *Frame) Leaf(spec RowSpec, visible *bool) {
	index := len(f.rows)
	targeted := index == f.input.Cursor
	if targeted && f.input.Action == ActionToggleVisible {
		*visible = !*visible
	}

	f.rows = append(f.rows, Row{
		ID:      spec.ID,
		Path:    slices.Clone(spec.Path),
		Index:   slices.Clone(spec.Index),
		Label:   spec.Label,
		Depth:   spec.Depth,
		Visible: *visible,
	})
	f.tree = append(f.tree, f.drawRow(spec, "•", *visible, targeted))
}

// Header draws a collapsible tree row whose current state is open and
// returns the state after applying this frame's input.
func (f *Frame) Header(spec RowSpec, visible *bool, open bool) bool {
	index := len(f.rows)
	targeted := index == f.input.Cursor
	if targeted {
		switch f.input.Action {
		case ActionToggleVisible:
			*visible = !*visible
		case ActionToggleOpen:
			open = !open
		case ActionExpand:
			open = true
		case ActionCollapse:
			open = false
		}
	}

	indicator := "▸"
	if open {
		indicator = "▾"
	}

	f.rows = append(f.rows, Row{
		ID:      spec.ID,
		Path:    slices.Clone(spec.Path),
		Index:   slices.Clone(spec.Index),
		Label:   spec.Label,
		Depth:   spec.Depth,
		Branch:  true,
		Open:    open,
		Visible: *visible,
	})
	f.tree = append(f.tree, f.drawRow(spec, indicator, *visible, targeted))
	return open
}

// drawRow renders prefix, indicator, label and a right-aligned visibility
// checkbox within the frame width.
func (f *Frame) drawRow(spec RowSpec, indicator string, visible, selected bool) string {
	r := f.theme.Renderer

	check := "[ ]"
	if visible {
		check = "[x]"
	}

	// Deep guides are cut so the label and checkbox keep their cells
	prefix := spec.Prefix
	rest := runewidth.StringWidth(indicator) + 1 + 1 + 1 + len(check)
	if runewidth.StringWidth(prefix) > f.width-rest {
		prefix = runewidth.Truncate(prefix, max(0, f.width-rest), "")
	}

	prefixWidth := runewidth.StringWidth(prefix)
	fixed := prefixWidth + runewidth.StringWidth(indicator) + 1 + 1 + len(check)
	maxLabel := f.width - fixed
	if maxLabel < 1 {
		maxLabel = 1
	}
	label := runewidth.Truncate(spec.Label, maxLabel, "…")

	gap := f.width - fixed + 1 - runewidth.StringWidth(label)
	if gap < 1 {
		gap = 1
	}

	labelStyle := f.theme.Base
	checkStyle := r.NewStyle().Foreground(f.theme.Highlight)
	if !visible {
		labelStyle = r.NewStyle().Foreground(f.theme.Muted)
		checkStyle = r.NewStyle().Foreground(f.theme.Muted)
	}

	var sb strings.Builder
	sb.WriteString(r.NewStyle().Foreground(f.theme.Muted).Render(prefix))
	sb.WriteString(r.NewStyle().Foreground(f.theme.Secondary).Render(indicator))
	sb.WriteString(" ")
	sb.WriteString(labelStyle.Render(label))
	sb.WriteString(strings.Repeat(" ", gap))
	sb.WriteString(checkStyle.Render(check))

	line := sb.String()
	if selected {
		line = f.theme.Selected.Render(line)
	}
	return line
}

// Lines returns the shell lines drawn above the tree.
func (f *Frame) Lines() []string {
	return f.lines
}

// TreeLines returns one rendered line per tree row.
func (f *Frame) TreeLines() []string {
	return f.tree
}

// Rows returns the tree rows in draw order.
func (f *Frame) Rows() []Row {
	return f.rows
}

// Notice returns the message posted during this frame, if any.
func (f *Frame) Notice() string {
	return f.notice
}

// String joins everything the frame drew.
func (f *Frame) String() string {
	all := make([]string, 0, len(f.lines)+len(f.tree))
	all = append(all, f.lines...)
	all = append(all, f.tree...)
	return strings.Join(all, "\n")
}
