package seo

import (
	"html/template"
	"strconv"

	"dirtyduck.club/storefront/internal/catalog"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []template.JS
}

// ISO 4217 codes for the currency symbols used in content.
var currencyCodes = map[string]string{
	"₽": "RUB",
	"$": "USD",
	"€": "EUR",
}

// Catalog builds the ItemList payload for the shop listing.
func Catalog(name string, products []catalog.Product) map[string]any {
	elements := make([]map[string]any, 0, len(products))
	for _, p := range products {
		offer := Offer{URL: p.CTALink, Currency: currencyCodes[p.Currency]}
		if n, ok := p.Price.Numeric(); ok {
			offer.Price = strconv.FormatInt(n, 10)
		}
		elements = append(elements, Product(p.ID, p.Title, p.Description, p.CTALink, offer))
	}
	return ItemList(name, elements)
}
