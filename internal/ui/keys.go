package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Books     key.Binding
	Jump      key.Binding
	Search    key.Binding
	Version   key.Binding
	English   key.Binding
	Chinese   key.Binding
	FontSize  key.Binding
	Theme     key.Binding
	Bookmark  key.Binding
	Bookmarks key.Binding
	History   key.Binding
	Modal     key.Binding
	Delete    key.Binding
	Select    key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next chapter")),
		Prev:      key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "prev chapter")),
		Books:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "books")),
		Jump:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump to verse")),
		Search:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		Version:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "version")),
		English:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "english")),
		Chinese:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "chinese")),
		FontSize:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "font size")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Bookmark:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "bookmark verse")),
		Bookmarks: key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "bookmarks")),
		History:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "history")),
		Modal:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "display pane")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Books, k.Next, k.Prev, k.Modal, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Books, k.Jump, k.Search},
		{k.Version, k.English, k.Chinese, k.FontSize, k.Theme},
		{k.Bookmark, k.Bookmarks, k.History, k.Modal},
		{k.Help, k.Quit},
	}
}

type popupKeys struct {
	Theme key.Binding
	Quit  key.Binding
}

func defaultPopupKeys() popupKeys {
	return popupKeys{
		Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "close")),
	}
}

func (k popupKeys) ShortHelp() []key.Binding { return []key.Binding{k.Theme, k.Quit} }

func (k popupKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
