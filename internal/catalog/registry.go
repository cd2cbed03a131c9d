package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalidContent is wrapped by every content validation failure.
var ErrInvalidContent = errors.New("catalog: invalid content")

// Product and guide ids appear in routes and element ids.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

//go:embed content/catalog.yaml
var defaultContent []byte

// Registry is an immutable set of storefront content. Accessors return copies.
type Registry struct {
	links    Links
	welcome  Welcome
	products []Product
	reviews  []Review
	guides   []GuideSection

	productIndex map[string]int
	guideIndex   map[string]int
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry decoded from the embedded content document.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Parse(defaultContent)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded content: %v", err))
		}
		defaultReg = reg
	})
	return defaultReg
}

// LoadFile reads and validates a content document from disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML content document.
func Parse(data []byte) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidContent, err)
	}
	reg := doc.registry()
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Validate checks registry invariants and reports every violation at once.
func (r *Registry) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidContent}, args...)...))
	}

	if err := checkLink(r.links.Contact); err != nil {
		fail("links.contact: %v", err)
	}
	if err := checkLink(r.links.Channel); err != nil {
		fail("links.channel: %v", err)
	}

	seen := map[string]struct{}{}
	for i, p := range r.products {
		if strings.TrimSpace(p.ID) == "" {
			fail("products[%d]: empty id", i)
			continue
		}
		if !slugPattern.MatchString(p.ID) {
			fail("products[%d]: id %q must be a lowercase slug", i, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			fail("products[%d]: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
		if strings.TrimSpace(p.Title) == "" {
			fail("product %q: empty title", p.ID)
		}
		if !p.Category.Valid() {
			fail("product %q: unknown category %q", p.ID, p.Category)
		}
		if p.Price.IsZero() {
			fail("product %q: missing price", p.ID)
		}
		if p.OldPrice != nil {
			amount, numeric := p.Price.Numeric()
			switch {
			case !numeric:
				fail("product %q: old_price requires a numeric price", p.ID)
			case *p.OldPrice <= amount:
				fail("product %q: old_price %d must exceed price %d", p.ID, *p.OldPrice, amount)
			}
		}
		if err := checkLink(p.CTALink); err != nil {
			fail("product %q: cta_link: %v", p.ID, err)
		}
	}

	seen = map[string]struct{}{}
	for i, rv := range r.reviews {
		if strings.TrimSpace(rv.ID) == "" {
			fail("reviews[%d]: empty id", i)
			continue
		}
		if _, dup := seen[rv.ID]; dup {
			fail("reviews[%d]: duplicate id %q", i, rv.ID)
		}
		seen[rv.ID] = struct{}{}
		if strings.TrimSpace(rv.Text) == "" {
			fail("review %q: empty text", rv.ID)
		}
	}

	seen = map[string]struct{}{}
	for i, g := range r.guides {
		if strings.TrimSpace(g.ID) == "" {
			fail("guides[%d]: empty id", i)
			continue
		}
		if !slugPattern.MatchString(g.ID) {
			fail("guides[%d]: id %q must be a lowercase slug", i, g.ID)
		}
		if _, dup := seen[g.ID]; dup {
			fail("guides[%d]: duplicate id %q", i, g.ID)
		}
		seen[g.ID] = struct{}{}
		if strings.TrimSpace(g.Title) == "" {
			fail("guide %q: empty title", g.ID)
		}
	}

	return errors.Join(errs...)
}

func checkLink(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%q has no host", raw)
		}
		return nil
	case "tg":
		return nil
	default:
		return fmt.Errorf("%q is not an absolute http(s) or tg link", raw)
	}
}

// Links returns the fixed outbound destinations.
func (r *Registry) Links() Links { return r.links }

// Welcome returns the start tab letter.
func (r *Registry) Welcome() Welcome {
	return Welcome{
		Paragraphs: append([]string(nil), r.welcome.Paragraphs...),
		Signature:  r.welcome.Signature,
	}
}

// Products returns all products in declaration order.
func (r *Registry) Products() []Product {
	out := make([]Product, len(r.products))
	for i, p := range r.products {
		out[i] = cloneProduct(p)
	}
	return out
}

// ProductsByCategory returns the products of one category in declaration order.
func (r *Registry) ProductsByCategory(c Category) []Product {
	var out []Product
	for _, p := range r.products {
		if p.Category == c {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

// Product looks up a product by id.
func (r *Registry) Product(id string) (Product, bool) {
	i, ok := r.productIndex[id]
	if !ok {
		return Product{}, false
	}
	return cloneProduct(r.products[i]), true
}

// HasProduct reports whether id names a product in the registry.
func (r *Registry) HasProduct(id string) bool {
	_, ok := r.productIndex[id]
	return ok
}

// Reviews returns all reviews in declaration order.
func (r *Registry) Reviews() []Review {
	return append([]Review(nil), r.reviews...)
}

// Guides returns all guide sections in declaration order.
func (r *Registry) Guides() []GuideSection {
	out := make([]GuideSection, len(r.guides))
	for i, g := range r.guides {
		out[i] = cloneGuide(g)
	}
	return out
}

// Guide looks up a guide section by id.
func (r *Registry) Guide(id string) (GuideSection, bool) {
	i, ok := r.guideIndex[id]
	if !ok {
		return GuideSection{}, false
	}
	return cloneGuide(r.guides[i]), true
}

// MarshalYAML encodes the registry back into its document form.
func (r *Registry) MarshalYAML() (any, error) {
	return newDocument(r), nil
}
