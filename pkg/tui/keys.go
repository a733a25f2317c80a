package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Search    key.Binding
	Sort      key.Binding
	Reverse   key.Binding
	Toggle    key.Binding
	Important key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Batch     key.Binding
	SelectAll key.Binding
	Clear     key.Binding
	DeleteSel key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort field")),
		Reverse:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle")),
		Important: key.NewBinding(key.WithKeys("*"), key.WithHelp("*", "important")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Batch:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "batch mode")),
		SelectAll: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "select all")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		DeleteSel: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete selected")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Sort, k.Reverse, k.Toggle, k.Add, k.Batch, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search, k.Sort, k.Reverse},
		{k.Toggle, k.Important, k.Add, k.Edit, k.Delete},
		{k.Batch, k.SelectAll, k.Clear, k.DeleteSel},
		{k.Help, k.Quit},
	}
}
