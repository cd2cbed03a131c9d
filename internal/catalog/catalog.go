// Package catalog holds the compiled-in storefront content: products, reviews,
// knowledge-base sections and the fixed outbound links.
package catalog

import "strings"

// Category groups products on the shop tab.
type Category string

const (
	CategoryBook     Category = "book"
	CategoryService  Category = "service"
	CategoryCourse   Category = "course"
	CategoryBusiness Category = "business"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryBook, CategoryService, CategoryCourse, CategoryBusiness}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBook, CategoryService, CategoryCourse, CategoryBusiness:
		return true
	default:
		return false
	}
}

// Icon names the glyph shown on a guide section. Unknown values are kept as-is
// and resolved to a default glyph when rendered.
type Icon string

const (
	IconFlame Icon = "flame"
	IconBrain Icon = "brain"
	IconMask  Icon = "mask"
)

// Known reports whether i maps to a dedicated glyph.
func (i Icon) Known() bool {
	switch Icon(strings.ToLower(string(i))) {
	case IconFlame, IconBrain, IconMask:
		return true
	default:
		return false
	}
}

// Product is a single shop entry.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       Price
	// OldPrice is the pre-discount amount; nil when the product is not discounted.
	OldPrice *int64
	Currency string
	CTALink  string
	CTAText  string
	Badge    string
	Category Category
}

// HasDiscount reports whether an old price is present.
func (p Product) HasDiscount() bool { return p.OldPrice != nil }

// Review is a customer testimonial. Author and Context are optional.
type Review struct {
	ID      string
	Author  string
	Text    string
	Context string
}

// GuideSection is a knowledge-base card with an ordered list of post labels.
type GuideSection struct {
	ID          string
	Title       string
	Icon        Icon
	Description string
	Items       []string
}

// Links are the fixed outbound destinations opened in a new browsing context.
type Links struct {
	Contact string
	Channel string
}

// Welcome is the letter shown on the start tab.
type Welcome struct {
	Paragraphs []string
	Signature  string
}

func cloneProduct(p Product) Product {
	out := p
	if p.OldPrice != nil {
		v := *p.OldPrice
		out.OldPrice = &v
	}
	return out
}

func cloneGuide(g GuideSection) GuideSection {
	out := g
	if g.Items != nil {
		out.Items = append([]string(nil), g.Items...)
	}
	return out
}
