// Package common provides shared utilities for the UI.
package common

import "github.com/charmbracelet/lipgloss"

// TruncateName 按终端显示宽度截断玩家名，中文按两格计算，超出时以 … 结尾
func TruncateName(name string, maxWidth int) string {
	if lipgloss.Width(name) <= maxWidth {
		return name
	}

	var (
		out   []rune
		width int
	)
	for _, r := range name {
		w := lipgloss.Width(string(r))
		if width+w > maxWidth-1 {
			break
		}
		out = append(out, r)
		width += w
	}
	return string(out) + "…"
}
