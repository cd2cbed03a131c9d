// Package view maps a shell snapshot to the description of one full screen.
// Every surface renders from a Screen; no surface branches on the tab itself.
package view

import (
	"fmt"
	"html/template"

	"dirtyduck.club/storefront/internal/cards"
	"dirtyduck.club/storefront/internal/catalog"
	"dirtyduck.club/storefront/internal/markup"
	"dirtyduck.club/storefront/internal/shell"
)

// Localizer translates copy for one language.
type Localizer interface {
	T(key string) string
	Lang() string
}

// Intro is the heading block above the content region.
type Intro struct {
	Heading    string
	Accent     string
	Subheading string
	// ChannelCTA shows the channel subscribe button.
	ChannelCTA bool
}

// Welcome is the start tab letter.
type Welcome struct {
	Paragraphs     []template.HTML
	ParagraphsText []string
	Markdown       string
	Regards        string
	Signature      string
	Action         string
	ActionTab      shell.Tab
}

// Banner is a highlighted notice shown above a list.
type Banner struct {
	Title string
	Body  string
}

// Footer is a trailing link block below a list.
type Footer struct {
	Text     string
	LinkText string
	Link     string
}

// Screen is everything a surface needs to draw one state. Only the field
// matching Tab is populated.
type Screen struct {
	Tab       shell.Tab
	Intro     Intro
	Welcome   *Welcome
	Products  []cards.ProductCard
	Guides    []cards.GuideCard
	Reviews   []cards.ReviewCard
	Banner    *Banner
	Footer    *Footer
	Links     catalog.Links
	CartCount int
	TitleFull bool
	Lang      string
}

// Build composes the screen for snap. Unknown tabs fall back to the welcome screen.
func Build(snap shell.Snapshot, reg *catalog.Registry, loc Localizer) Screen {
	scr := Screen{
		Tab:       snap.Tab,
		Links:     reg.Links(),
		CartCount: snap.CartCount(),
		TitleFull: snap.TitleFull,
		Lang:      loc.Lang(),
	}
	switch snap.Tab {
	case shell.TabShop:
		scr.Intro = intro(loc, "shop", false)
		for _, p := range reg.Products() {
			scr.Products = append(scr.Products, cards.Product(p, snap.InCart(p.ID), loc))
		}
	case shell.TabGuide:
		scr.Intro = intro(loc, "guide", true)
		for _, g := range reg.Guides() {
			scr.Guides = append(scr.Guides, cards.Guide(g))
		}
		scr.Footer = &Footer{
			Text:     loc.T("guide.more"),
			LinkText: loc.T("guide.more_link"),
			Link:     reg.Links().Channel,
		}
	case shell.TabReviews:
		scr.Intro = intro(loc, "reviews", false)
		scr.Banner = &Banner{
			Title: loc.T("reviews.banner.title"),
			Body:  loc.T("reviews.banner.body"),
		}
		for _, r := range reg.Reviews() {
			scr.Reviews = append(scr.Reviews, cards.Review(r, loc))
		}
	default:
		scr.Tab = shell.TabWelcome
		scr.Intro = intro(loc, "welcome", false)
		scr.Welcome = welcome(reg.Welcome(), loc)
	}
	return scr
}

func intro(loc Localizer, key string, channel bool) Intro {
	return Intro{
		Heading:    loc.T("intro." + key + ".heading"),
		Accent:     loc.T("intro." + key + ".accent"),
		Subheading: loc.T("intro." + key + ".sub"),
		ChannelCTA: channel,
	}
}

func welcome(w catalog.Welcome, loc Localizer) *Welcome {
	out := &Welcome{
		Regards:   loc.T("welcome.regards"),
		Signature: w.Signature,
		Action:    loc.T("welcome.cta"),
		ActionTab: shell.TabShop,
	}
	for i, p := range w.Paragraphs {
		out.Paragraphs = append(out.Paragraphs, markup.Inline(p))
		out.ParagraphsText = append(out.ParagraphsText, markup.Plain(p))
		if i > 0 {
			out.Markdown += "\n\n"
		}
		out.Markdown += p
	}
	return out
}

// Notice is the placeholder message for a guide post that has no link yet.
func Notice(section catalog.GuideSection, index int, loc Localizer) (string, bool) {
	if index < 0 || index >= len(section.Items) {
		return "", false
	}
	return fmt.Sprintf(loc.T("guide.notice"), section.Items[index]), true
}
