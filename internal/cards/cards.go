// Package cards maps single content records to stateless view models.
package cards

import (
	"html/template"

	"dirtyduck.club/storefront/internal/catalog"
	"dirtyduck.club/storefront/internal/format"
	"dirtyduck.club/storefront/internal/markup"
)

// ReviewStars is the fixed rating decoration shown on every review. The data
// model carries no rating.
const ReviewStars = 5

// Localizer translates copy for one language.
type Localizer interface {
	T(key string) string
	Lang() string
}

// ProductCard is the shop tile for one product.
type ProductCard struct {
	ID              string
	Title           string
	Description     template.HTML
	DescriptionText string
	Badge           string
	Glyph           Glyph
	Price           string
	OldPrice        string
	Currency        string
	HasDiscount     bool
	InCart          bool
	ToggleLabel     string
	CTALink         string
	CTAText         string
	CTATitle        string
}

// Product builds the card for p. inCart is owned by the caller.
func Product(p catalog.Product, inCart bool, loc Localizer) ProductCard {
	card := ProductCard{
		ID:              p.ID,
		Title:           p.Title,
		Description:     markup.Inline(p.Description),
		DescriptionText: markup.Plain(p.Description),
		Badge:           p.Badge,
		Glyph:           CategoryGlyph(p.Category),
		Price:           format.Price(p.Price, loc.Lang()),
		Currency:        p.Currency,
		HasDiscount:     p.HasDiscount(),
		InCart:          inCart,
		CTALink:         p.CTALink,
		CTAText:         p.CTAText,
		CTATitle:        loc.T("card.open_link"),
	}
	if card.HasDiscount {
		card.OldPrice = format.OldPrice(p, loc.Lang())
	}
	if inCart {
		card.ToggleLabel = loc.T("card.in_cart")
	} else {
		card.ToggleLabel = loc.T("card.add")
	}
	return card
}

// ReviewCard is one testimonial.
type ReviewCard struct {
	ID        string
	Author    string
	Anonymous bool
	Context   string
	Text      string
	Rating    int
}

// Stars enumerates the rating slots for templates.
func (c ReviewCard) Stars() []int {
	out := make([]int, c.Rating)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Review builds the card for r.
func Review(r catalog.Review, loc Localizer) ReviewCard {
	card := ReviewCard{
		ID:      r.ID,
		Author:  r.Author,
		Context: r.Context,
		Text:    r.Text,
		Rating:  ReviewStars,
	}
	if card.Author == "" {
		card.Author = loc.T("review.anonymous")
		card.Anonymous = true
	}
	return card
}

// GuideItem is one post label inside a guide card.
type GuideItem struct {
	Index int
	Label string
}

// GuideCard is one knowledge-base section.
type GuideCard struct {
	ID              string
	Title           string
	Description     template.HTML
	DescriptionText string
	Glyph           Glyph
	Items           []GuideItem
}

// Guide builds the card for g.
func Guide(g catalog.GuideSection) GuideCard {
	card := GuideCard{
		ID:              g.ID,
		Title:           g.Title,
		Description:     markup.Inline(g.Description),
		DescriptionText: markup.Plain(g.Description),
		Glyph:           GlyphFor(g.Icon),
		Items:           make([]GuideItem, len(g.Items)),
	}
	for i, label := range g.Items {
		card.Items[i] = GuideItem{Index: i, Label: label}
	}
	return card
}
