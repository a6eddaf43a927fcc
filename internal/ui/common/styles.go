// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/card-showdown/internal/game/card"
)

// Icon constants
const (
	WinnerIcon = "👑"
	TieIcon    = "🤝"
)

// Lipgloss Styles
var (
	DocStyle       = lipgloss.NewStyle().Margin(1, 2)
	RedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#D4A017")).Bold(true)
	TitleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	NameStyle      = lipgloss.NewStyle().Width(12).Bold(true)
	WinnerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	MutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	BoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	PromptStyle    = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// SuitStyle @ 和 ^ 用红色，# 和 * 用黑色
func SuitStyle(s card.Suit) lipgloss.Style {
	switch s {
	case card.SuitAt, card.SuitCaret:
		return RedStyle
	default:
		return BlackStyle
	}
}
