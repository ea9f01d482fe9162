package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Focus     key.Binding
	Prev      key.Binding
	Next      key.Binding
	Indicator key.Binding
	Pause     key.Binding
	Market    key.Binding
	History   key.Binding
	Chat      key.Binding
	Search    key.Binding
	Sort      key.Binding
	Category  key.Binding
	Like      key.Binding
	Up        key.Binding
	Down      key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch carousel"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous slide"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next slide"),
		),
		Indicator: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to slide"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		Market: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "marketplace"),
		),
		History: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "history pager"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "ask advisor"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort"),
		),
		Category: key.NewBinding(
			key.WithKeys("[", "]"),
			key.WithHelp("[/]", "category"),
		),
		Like: key.NewBinding(
			key.WithKeys("enter", "L"),
			key.WithHelp("enter", "like"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Prev, k.Next, k.Pause, k.Market, k.Chat, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Prev, k.Next, k.Indicator, k.Pause},
		{k.Market, k.History, k.Chat, k.Back},
		{k.Search, k.Sort, k.Category, k.Like, k.Up, k.Down},
		{k.Help, k.Quit},
	}
}
