package seo

import (
	"encoding/json"
	"html/template"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Script renders v as a JSON-LD payload for a <script type="application/ld+json"> body.
func Script(v any) template.JS {
	return template.JS(JSON(v))
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string, sameAs ...string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// Offer describes the price of a product. Price is empty for free-text prices.
type Offer struct {
	Price    string
	Currency string
	URL      string
}

// Product returns a minimal product schema payload.
func Product(id, name, description, url string, offer Offer) map[string]any {
	m := map[string]any{
		"@type":       "Product",
		"name":        name,
		"description": description,
	}
	if id != "" {
		m["sku"] = id
	}
	if url != "" {
		m["url"] = url
	}
	if offer.Price != "" {
		o := map[string]any{
			"@type": "Offer",
			"price": offer.Price,
		}
		if offer.Currency != "" {
			o["priceCurrency"] = offer.Currency
		}
		if offer.URL != "" {
			o["url"] = offer.URL
		}
		m["offers"] = o
	}
	return m
}

// ItemList wraps elements into a schema.org ItemList.
func ItemList(name string, elements []map[string]any) map[string]any {
	el := make([]map[string]any, 0, len(elements))
	for i, e := range elements {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item":     e,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"name":            name,
		"itemListElement": el,
	}
}
