package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the panel key bindings. It implements help.KeyMap.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Visible   key.Binding
	Toggle    key.Binding
	Collapse  key.Binding
	Expand    key.Binding
	NextTab   key.Binding
	SceneTab  key.Binding
	ImportTab key.Binding
	Filter    key.Binding
	AddNode   key.Binding
	Link      key.Binding
	Library   key.Binding
	Rename    key.Binding
	CopyID    key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Visible:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "visible")),
		Toggle:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand/collapse")),
		Collapse:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse/parent")),
		Expand:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand/child")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
		SceneTab:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "scene tab")),
		ImportTab: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "import tab")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		AddNode:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add node")),
		Link:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "link")),
		Library:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import from library")),
		Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		CopyID:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		Reset:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset layout")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Visible, k.Toggle, k.Filter, k.Help, k.Quit}
}

// FullHelp returns every tree binding, grouped in columns.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Visible, k.Toggle, k.Collapse, k.Expand, k.Reset},
		{k.NextTab, k.SceneTab, k.ImportTab, k.Filter},
		{k.AddNode, k.Link, k.Library, k.Rename, k.CopyID},
		{k.Help, k.Quit},
	}
}
