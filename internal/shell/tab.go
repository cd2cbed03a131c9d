package shell

import "strings"

// Tab is one of the mutually exclusive content views.
type Tab int

const (
	TabWelcome Tab = iota
	TabShop
	TabGuide
	TabReviews
)

var tabNames = [...]string{
	TabWelcome: "welcome",
	TabShop:    "shop",
	TabGuide:   "guide",
	TabReviews: "reviews",
}

// Tabs lists the tabs in navigation order.
func Tabs() []Tab {
	return []Tab{TabWelcome, TabShop, TabGuide, TabReviews}
}

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool { return t >= TabWelcome && t <= TabReviews }

func (t Tab) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return tabNames[t]
}

// ParseTab resolves a tab name case-insensitively.
func ParseTab(s string) (Tab, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range tabNames {
		if name == s {
			return Tab(i), true
		}
	}
	return TabWelcome, false
}
