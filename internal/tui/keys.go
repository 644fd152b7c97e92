package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	Cancel       key.Binding
	Confirm      key.Binding
	ToggleNotify key.Binding
	PrevDay      key.Binding
	NextDay      key.Binding
	Today        key.Binding
	Refresh      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "выход"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "отмена"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter", "подтвердить"),
		),
		ToggleNotify: key.NewBinding(
			key.WithKeys("tab", " "),
			key.WithHelp("tab", "уведомить клиента"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "пред. день"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "след. день"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "сегодня"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "обновить"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.Today, k.Refresh, k.Cancel, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.Today, k.Refresh},
		{k.Confirm, k.ToggleNotify, k.Cancel, k.Quit},
	}
}
