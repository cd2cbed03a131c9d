package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the storefront view.
type Styles struct {
	Title      lipgloss.Style
	TitleShort lipgloss.Style
	Muted      lipgloss.Style
	Badge      lipgloss.Style
	Tab        lipgloss.Style
	TabActive  lipgloss.Style
	Heading    lipgloss.Style
	Accent     lipgloss.Style
	Card       lipgloss.Style
	CardActive lipgloss.Style
	InCart     lipgloss.Style
	Price      lipgloss.Style
	OldPrice   lipgloss.Style
	Stars      lipgloss.Style
	Banner     lipgloss.Style
	Notice     lipgloss.Style
	Help       lipgloss.Style
}

var tones = map[string]lipgloss.Color{
	"yellow":  lipgloss.Color("220"),
	"purple":  lipgloss.Color("141"),
	"orange":  lipgloss.Color("208"),
	"blue":    lipgloss.Color("75"),
	"neutral": lipgloss.Color("250"),
}

func toneColor(tone string) lipgloss.Color {
	if c, ok := tones[tone]; ok {
		return c
	}
	return tones["neutral"]
}

// DefaultStyles is the dark storefront palette.
func DefaultStyles() Styles {
	purple := lipgloss.Color("135")
	muted := lipgloss.Color("244")
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		TitleShort: lipgloss.NewStyle().Bold(true).Foreground(purple),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		Badge:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(purple).Padding(0, 1),
		Tab:        lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		TabActive:  lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("236")),
		Heading:    lipgloss.NewStyle().Bold(true),
		Accent:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141")),
		Card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		CardActive: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(purple).Padding(0, 1),
		InCart:     lipgloss.NewStyle().Foreground(purple).Bold(true),
		Price:      lipgloss.NewStyle().Bold(true),
		OldPrice:   lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		Stars:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Banner:     lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(purple).PaddingLeft(1),
		Notice:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
