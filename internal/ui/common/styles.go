// Package common provides shared styles and helpers for the UI.
package common

import "github.com/charmbracelet/lipgloss"

// Status icons
const (
	ReadyIcon    = "✔"
	PlayingIcon  = "…"
	ResignedIcon = "✖"
	ObserverIcon = "👁"
)

// Lipgloss styles
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	WarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	OKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	SelfStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228"))
	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Italic(true)
)

// MaxNameLen bounds player names in the roster panel.
const MaxNameLen = 16
