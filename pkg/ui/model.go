package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/sceneview/pkg/collapse"
	"github.com/vanderheijden86/sceneview/pkg/config"
)

type focus int

const (
	focusTree focus = iota
	focusFilter
	focusRename
)

// ConfigReloadedMsg carries a configuration reloaded from disk.
type ConfigReloadedMsg struct {
	Config config.Config
}

// ConfigErrorMsg reports a failed reload. The previous config stays active.
type ConfigErrorMsg struct {
	Err error
}

// WatchConfigCmd waits for the next change seen by w.
func WatchConfigCmd(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, err := w.Next(context.Background())
		if err != nil {
			return ConfigErrorMsg{Err: err}
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

// Model is the bubbletea host for the panel. Each Update is one frame: the
// message is turned into an Input and the panel is rendered against it.
type Model struct {
	state *PanelState
	panel *Panel
	cfg   config.Config
	theme Theme
	keys  keyMap

	help     help.Model
	filter   textinput.Model
	rename   textinput.Model
	viewport viewport.Model

	watcher   *config.Watcher
	copyToClp func(string) error

	frame      *Frame // Last frame drawn
	cursor     int    // Focused tree row
	focus      focus
	renameAt   []int // Row.Index of the node being renamed
	showHelp   bool
	notice     string
	width      int
	height     int
	quitting   bool
}

// NewModel creates the host for state and draws the first frame.
func NewModel(state *PanelState, cfg config.Config, theme Theme) Model {
	if state == nil {
		state = NewPanelState()
	}
	if state.Collapse == nil {
		state.Collapse = collapse.New()
	}

	filter := textinput.New()
	filter.Prompt = ""
	filter.Placeholder = FilterHint
	filter.CharLimit = 64
	filter.SetValue(state.FilterText)

	rename := textinput.New()
	rename.Prompt = "Rename: "
	rename.CharLimit = 64

	h := help.New()
	h.ShowAll = cfg.UI.ShowHelp

	m := Model{
		state:     state,
		panel:     NewPanel(cfg),
		cfg:       cfg,
		theme:     theme,
		keys:      defaultKeyMap(),
		help:      h,
		filter:    filter,
		rename:    rename,
		viewport:  viewport.New(cfg.UI.PanelWidth, 0),
		copyToClp: clipboard.WriteAll,
	}
	m.runFrame(Input{})
	return m
}

// WithWatcher reloads configuration whenever w sees a change.
func (m Model) WithWatcher(w *config.Watcher) Model {
	m.watcher = w
	return m
}

// WithClipboard replaces the clipboard writer used by the copy key.
func (m Model) WithClipboard(write func(string) error) Model {
	m.copyToClp = write
	return m
}

// Init starts the config watcher, if any.
func (m Model) Init() tea.Cmd {
	return WatchConfigCmd(m.watcher)
}

// Update runs one frame.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	input := Input{Cursor: m.cursor}
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		m.notice = "Config reloaded"
		cmds = append(cmds, WatchConfigCmd(m.watcher))

	case ConfigErrorMsg:
		if errors.Is(msg.Err, config.ErrWatcherClosed) || errors.Is(msg.Err, context.Canceled) {
			break
		}
		log.Printf("warning: config reload failed: %v", msg.Err)
		m.notice = "Config error: " + msg.Err.Error()
		cmds = append(cmds, WatchConfigCmd(m.watcher))

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.focus {
		case focusFilter:
			input, cmd = m.updateFilter(msg, input)
		case focusRename:
			cmd = m.updateRename(msg)
		default:
			input, cmd = m.updateTree(msg, input)
		}
		if m.quitting {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	}

	input.Cursor = m.cursor
	m.runFrame(input)
	return m, tea.Batch(cmds...)
}

// updateTree maps keys to cursor moves and frame actions while the tree
// has focus.
func (m *Model) updateTree(msg tea.KeyMsg, input Input) (Input, tea.Cmd) {
	rows := m.frame.Rows()
	row, hasRow := m.currentRow()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Cancel):
		m.showHelp = false
		m.notice = ""

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(0, len(rows)-1)

	case key.Matches(msg, m.keys.Visible):
		input.Action = ActionToggleVisible
	case key.Matches(msg, m.keys.Toggle):
		input.Action = ActionToggleOpen
	case key.Matches(msg, m.keys.Collapse):
		// Collapse an open branch, otherwise jump to the parent row
		if hasRow && row.Branch && row.Open {
			input.Action = ActionCollapse
		} else if hasRow {
			m.cursor = parentRow(rows, m.cursor)
		}
	case key.Matches(msg, m.keys.Expand):
		// Expand a closed branch, otherwise step into its first child
		if hasRow && row.Branch {
			if row.Open {
				if m.cursor < len(rows)-1 {
					m.cursor++
				}
			} else {
				input.Action = ActionExpand
			}
		}

	case key.Matches(msg, m.keys.NextTab):
		if m.state.Tab == TabScene {
			input.Action = ActionSelectImport
		} else {
			input.Action = ActionSelectScene
		}
	case key.Matches(msg, m.keys.SceneTab):
		input.Action = ActionSelectScene
	case key.Matches(msg, m.keys.ImportTab):
		input.Action = ActionSelectImport

	case key.Matches(msg, m.keys.Filter):
		if m.state.Tab == TabScene {
			m.focus = focusFilter
			m.filter.CursorEnd()
			return input, m.filter.Focus()
		}
	case key.Matches(msg, m.keys.AddNode):
		input.Action = ActionAddNode
	case key.Matches(msg, m.keys.Link):
		input.Action = ActionLink
	case key.Matches(msg, m.keys.Library):
		input.Action = ActionImportLibrary

	case key.Matches(msg, m.keys.Rename):
		if hasRow {
			m.renameAt = row.Index
			m.rename.SetValue(row.Label)
			m.rename.CursorEnd()
			m.focus = focusRename
			return input, m.rename.Focus()
		}
	case key.Matches(msg, m.keys.CopyID):
		if hasRow {
			m.copyRow(row)
		}
	case key.Matches(msg, m.keys.Reset):
		// Every branch reads as DefaultOpen again
		m.state.Collapse.Reset()
		m.notice = "Layout reset"
	}

	return input, nil
}

// updateFilter edits the filter field. The edited text reaches the panel
// state through the frame, like any other widget input.
func (m *Model) updateFilter(msg tea.KeyMsg, input Input) (Input, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return input, nil
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Cancel):
		m.focus = focusTree
		m.filter.Blur()
		return input, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	input.Action = ActionEditFilter
	input.Text = m.filter.Value()
	return input, cmd
}

// updateRename edits the rename prompt and applies it on confirm.
func (m *Model) updateRename(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return nil
	case key.Matches(msg, m.keys.Confirm):
		m.commitRename()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.endRename()
		return nil
	}

	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return cmd
}

func (m *Model) commitRename() {
	defer m.endRename()

	label := strings.TrimSpace(m.rename.Value())
	if label == "" {
		m.notice = "Label cannot be empty"
		return
	}
	if !m.state.RenameNodeAt(m.renameAt, label) {
		log.Printf("warning: rename target %v no longer exists", m.renameAt)
		m.notice = "Node no longer exists"
		return
	}
	m.notice = fmt.Sprintf("Renamed to %q", label)
}

func (m *Model) endRename() {
	m.focus = focusTree
	m.rename.Blur()
	m.rename.SetValue("")
	m.renameAt = nil
}

func (m *Model) copyRow(row Row) {
	text := strings.Join(row.Path, "/") + " " + row.ID.String()
	if err := m.copyToClp(text); err != nil {
		log.Printf("warning: clipboard write failed: %v", err)
		m.notice = "Clipboard unavailable"
		return
	}
	m.notice = "Copied " + row.ID.String()
}

func (m *Model) applyConfig(cfg config.Config) {
	m.cfg = cfg
	m.panel.Configure(cfg)
	m.help.ShowAll = cfg.UI.ShowHelp
}

// runFrame draws one frame and keeps the cursor and viewport in range.
func (m *Model) runFrame(input Input) {
	input.FilterFocused = m.focus == focusFilter

	f := NewFrame(m.theme, m.contentWidth(), input)
	m.panel.Render(m.state, f)
	m.frame = f

	if n := f.Notice(); n != "" {
		m.notice = n
	}
	if rows := len(f.Rows()); m.cursor >= rows {
		m.cursor = max(0, rows-1)
	}
	if m.focus != focusFilter && m.filter.Value() != m.state.FilterText {
		m.filter.SetValue(m.state.FilterText)
	}
	m.syncViewport()
}

// syncViewport scrolls the tree so the cursor row stays visible.
func (m *Model) syncViewport() {
	h := m.treeHeight()
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = h
	m.viewport.SetContent(strings.Join(m.frame.TreeLines(), "\n"))

	if h <= 0 {
		return
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+h {
		m.viewport.SetYOffset(m.cursor - h + 1)
	}
}

func (m *Model) currentRow() (Row, bool) {
	rows := m.frame.Rows()
	if m.cursor >= 0 && m.cursor < len(rows) {
		return rows[m.cursor], true
	}
	return Row{}, false
}

// parentRow returns the index of the closest row above index with a
// smaller depth, or index itself for the root.
func parentRow(rows []Row, index int) int {
	depth := rows[index].Depth
	for i := index - 1; i >= 0; i-- {
		if rows[i].Depth < depth {
			return i
		}
	}
	return index
}

// contentWidth is the panel width inside its right border.
func (m Model) contentWidth() int {
	w := m.cfg.UI.PanelWidth
	if w <= 0 {
		w = config.Default().UI.PanelWidth
	}
	if m.width > 0 && m.width < w+1 {
		w = m.width - 1
	}
	return max(w, 10)
}

// treeHeight is the number of lines available to tree rows, or 0 when the
// terminal size is not known yet.
func (m Model) treeHeight() int {
	if m.height <= 0 || m.frame == nil {
		return 0
	}
	h := m.height - len(m.frame.Lines()) - 1 - lipgloss.Height(m.helpView())
	return max(h, 1)
}

func (m Model) helpView() string {
	h := m.help
	h.Width = m.contentWidth()
	return h.View(m.keys)
}

func (m Model) helpContext() Context {
	switch {
	case m.focus == focusFilter:
		return ContextFilter
	case m.focus == focusRename:
		return ContextRename
	case m.state.Tab == TabImport:
		return ContextImport
	default:
		return ContextTree
	}
}

func (m Model) statusLine() string {
	r := m.theme.Renderer
	switch {
	case m.focus == focusRename:
		return m.rename.View()
	case m.notice != "":
		return r.NewStyle().Foreground(m.theme.Secondary).Render(m.notice)
	default:
		status := fmt.Sprintf("%d rows · %d stored states", len(m.frame.Rows()), m.state.Collapse.Len())
		return r.NewStyle().Foreground(m.theme.Muted).Render(status)
	}
}

// View renders the last frame.
func (m Model) View() string {
	if m.quitting || m.frame == nil {
		return ""
	}

	sections := append([]string(nil), m.frame.Lines()...)
	switch {
	case m.showHelp:
		sections = append(sections, RenderContextHelp(m.helpContext(), m.theme, m.contentWidth()))
	case len(m.frame.TreeLines()) == 0:
	case m.treeHeight() > 0:
		sections = append(sections, m.viewport.View())
	default:
		sections = append(sections, m.frame.TreeLines()...)
	}
	sections = append(sections, m.statusLine(), m.helpView())

	panel := m.theme.Renderer.NewStyle().
		Width(m.contentWidth()).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(m.theme.Border)
	return panel.Render(strings.Join(sections, "\n"))
}

// State returns the panel state driven by this model.
func (m Model) State() *PanelState {
	return m.state
}

// Frame returns the last frame drawn.
func (m Model) Frame() *Frame {
	return m.frame
}

// Cursor returns the focused tree row.
func (m Model) Cursor() int {
	return m.cursor
}

// Notice returns the current status message.
func (m Model) Notice() string {
	return m.notice
}

// ShowingHelp reports whether the quick reference is open.
func (m Model) ShowingHelp() bool {
	return m.showHelp
}

// FocusState returns which area has the keyboard: "tree", "filter" or
// "rename".
func (m Model) FocusState() string {
	switch m.focus {
	case focusFilter:
		return "filter"
	case focusRename:
		return "rename"
	default:
		return "tree"
	}
}
