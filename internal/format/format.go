package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dirtyduck.club/storefront/internal/catalog"
)

// Amount groups thousands in a whole amount using the rules of lang.
// Example: Amount(12990, "en") => "12,990"
func Amount(n int64, lang string) string {
	return printer(lang).Sprintf("%d", n)
}

// Price renders numeric prices with grouping and returns free-text prices verbatim.
func Price(p catalog.Price, lang string) string {
	if n, ok := p.Numeric(); ok {
		return Amount(n, lang)
	}
	return p.Text()
}

// OldPrice renders the pre-discount amount, or "" when absent.
func OldPrice(p catalog.Product, lang string) string {
	if p.OldPrice == nil {
		return ""
	}
	return Amount(*p.OldPrice, lang)
}

func printer(lang string) *message.Printer {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		tag = language.Russian
	}
	return message.NewPrinter(tag)
}
