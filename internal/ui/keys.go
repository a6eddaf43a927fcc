package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap 对局界面的快捷键
type keyMap struct {
	Again key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Again: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "再来一局"),
		),
		Quit: key.NewBinding(
			key.WithKeys("n", "N", "q", "esc", "ctrl+c"),
			key.WithHelp("n/q", "退出"),
		),
	}
}

// ShortHelp 实现 help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Again, k.Quit}
}

// FullHelp 实现 help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
