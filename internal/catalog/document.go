package catalog

import "strings"

// document is the on-disk YAML shape of a registry.
type document struct {
	Links    linksDoc     `yaml:"links"`
	Welcome  welcomeDoc   `yaml:"welcome"`
	Products []productDoc `yaml:"products"`
	Reviews  []reviewDoc  `yaml:"reviews"`
	Guides   []guideDoc   `yaml:"guides"`
}

type linksDoc struct {
	Contact string `yaml:"contact"`
	Channel string `yaml:"channel"`
}

type welcomeDoc struct {
	Paragraphs []string `yaml:"paragraphs"`
	Signature  string   `yaml:"signature"`
}

type productDoc struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Price       Price  `yaml:"price"`
	OldPrice    *int64 `yaml:"old_price,omitempty"`
	Currency    string `yaml:"currency"`
	CTALink     string `yaml:"cta_link"`
	CTAText     string `yaml:"cta_text"`
	Badge       string `yaml:"badge,omitempty"`
	Category    string `yaml:"category"`
}

type reviewDoc struct {
	ID      string `yaml:"id"`
	Author  string `yaml:"author,omitempty"`
	Text    string `yaml:"text"`
	Context string `yaml:"context,omitempty"`
}

type guideDoc struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Icon        string   `yaml:"icon"`
	Description string   `yaml:"description"`
	Items       []string `yaml:"items"`
}

func (d document) registry() *Registry {
	r := &Registry{
		links: Links{
			Contact: strings.TrimSpace(d.Links.Contact),
			Channel: strings.TrimSpace(d.Links.Channel),
		},
		welcome: Welcome{
			Paragraphs: trimAll(d.Welcome.Paragraphs),
			Signature:  strings.TrimSpace(d.Welcome.Signature),
		},
		productIndex: map[string]int{},
		guideIndex:   map[string]int{},
	}
	for _, p := range d.Products {
		id := strings.TrimSpace(p.ID)
		if _, dup := r.productIndex[id]; !dup && id != "" {
			r.productIndex[id] = len(r.products)
		}
		r.products = append(r.products, Product{
			ID:          id,
			Title:       strings.TrimSpace(p.Title),
			Description: strings.TrimSpace(p.Description),
			Price:       p.Price,
			OldPrice:    p.OldPrice,
			Currency:    strings.TrimSpace(p.Currency),
			CTALink:     strings.TrimSpace(p.CTALink),
			CTAText:     strings.TrimSpace(p.CTAText),
			Badge:       strings.TrimSpace(p.Badge),
			Category:    Category(strings.ToLower(strings.TrimSpace(p.Category))),
		})
	}
	for _, rv := range d.Reviews {
		r.reviews = append(r.reviews, Review{
			ID:      strings.TrimSpace(rv.ID),
			Author:  strings.TrimSpace(rv.Author),
			Text:    strings.TrimSpace(rv.Text),
			Context: strings.TrimSpace(rv.Context),
		})
	}
	for _, g := range d.Guides {
		id := strings.TrimSpace(g.ID)
		if _, dup := r.guideIndex[id]; !dup && id != "" {
			r.guideIndex[id] = len(r.guides)
		}
		r.guides = append(r.guides, GuideSection{
			ID:          id,
			Title:       strings.TrimSpace(g.Title),
			Icon:        Icon(strings.ToLower(strings.TrimSpace(g.Icon))),
			Description: strings.TrimSpace(g.Description),
			Items:       trimAll(g.Items),
		})
	}
	return r
}

func newDocument(r *Registry) document {
	d := document{
		Links:   linksDoc{Contact: r.links.Contact, Channel: r.links.Channel},
		Welcome: welcomeDoc{Paragraphs: r.welcome.Paragraphs, Signature: r.welcome.Signature},
	}
	for _, p := range r.products {
		d.Products = append(d.Products, productDoc{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			OldPrice:    p.OldPrice,
			Currency:    p.Currency,
			CTALink:     p.CTALink,
			CTAText:     p.CTAText,
			Badge:       p.Badge,
			Category:    string(p.Category),
		})
	}
	for _, rv := range r.reviews {
		d.Reviews = append(d.Reviews, reviewDoc(rv))
	}
	for _, g := range r.guides {
		d.Guides = append(d.Guides, guideDoc{
			ID:          g.ID,
			Title:       g.Title,
			Icon:        string(g.Icon),
			Description: g.Description,
			Items:       g.Items,
		})
	}
	return d
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
