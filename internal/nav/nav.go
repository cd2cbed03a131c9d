package nav

import (
	"dirtyduck.club/storefront/internal/shell"
)

// Item represents a bottom navigation entry.
type Item struct {
	Tab      shell.Tab
	LabelKey string // i18n key, e.g. "nav.shop"
	Glyph    string
	// Tone is the accent colour of the glyph while the tab is active.
	Tone string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Tab    shell.Tab
	Name   string
	Label  string
	Glyph  string
	Tone   string
	Action string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Tab: shell.TabWelcome, LabelKey: "nav.welcome", Glyph: "crown", Tone: "yellow"},
	{Tab: shell.TabShop, LabelKey: "nav.shop", Glyph: "shopping-bag", Tone: "purple"},
	{Tab: shell.TabGuide, LabelKey: "nav.guide", Glyph: "book-open", Tone: "orange"},
	{Tab: shell.TabReviews, LabelKey: "nav.reviews", Glyph: "quote", Tone: "purple"},
}

// Translator resolves i18n keys.
type Translator interface {
	T(key string) string
}

// Build renders navigation items with active state given the current tab.
func Build(active shell.Tab, tr Translator) []RenderedItem {
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Tab:    it.Tab,
			Name:   it.Tab.String(),
			Label:  tr.T(it.LabelKey),
			Glyph:  it.Glyph,
			Tone:   it.Tone,
			Action: ActionPath(it.Tab),
			Active: it.Tab == active,
		})
	}
	return items
}

// ActionPath is the endpoint that selects t.
func ActionPath(t shell.Tab) string {
	return "/tabs/" + t.String()
}
