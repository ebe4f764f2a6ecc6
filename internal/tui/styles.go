package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Header      lipgloss.Style
	UserLabel   lipgloss.Style
	UserBubble  lipgloss.Style
	BotLabel    lipgloss.Style
	BotBubble   lipgloss.Style
	Timestamp   lipgloss.Style
	Status      lipgloss.Style
	NoticeWarn  lipgloss.Style
	NoticeError lipgloss.Style
	Input       lipgloss.Style
	Help        lipgloss.Style
}

func defaultStyles() styles {
	pink := lipgloss.Color("#D53F8C")
	gray := lipgloss.Color("#718096")

	return styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 2),
		UserLabel: lipgloss.NewStyle().Bold(true).Foreground(pink),
		UserBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(pink).
			Padding(0, 1),
		BotLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7FAFC")),
		BotBubble: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(gray).
			Padding(0, 1),
		Timestamp:   lipgloss.NewStyle().Foreground(gray),
		Status:      lipgloss.NewStyle().Foreground(gray).Italic(true),
		NoticeWarn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ECC94B")),
		NoticeError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F56565")),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(pink).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(gray),
	}
}
