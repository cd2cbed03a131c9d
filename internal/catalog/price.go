package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Price is either a whole amount in major currency units or a free-text label
// such as "по запросу".
type Price struct {
	amount  int64
	label   string
	numeric bool
}

// Amount builds a numeric price.
func Amount(n int64) Price { return Price{amount: n, numeric: true} }

// Label builds a free-text price.
func Label(s string) Price { return Price{label: strings.TrimSpace(s)} }

// Numeric returns the amount and true for numeric prices.
func (p Price) Numeric() (int64, bool) { return p.amount, p.numeric }

// Text returns the free-text label; empty for numeric prices.
func (p Price) Text() string { return p.label }

// IsZero reports whether the price was never set.
func (p Price) IsZero() bool { return !p.numeric && p.label == "" }

func (p Price) String() string {
	if p.numeric {
		return strconv.FormatInt(p.amount, 10)
	}
	return p.label
}

// UnmarshalYAML accepts an integer scalar or a string scalar.
func (p *Price) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("price: line %d: expected scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!int":
		n, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("price: line %d: %w", node.Line, err)
		}
		*p = Amount(n)
	case "!!str":
		*p = Label(node.Value)
	case "!!null":
		*p = Price{}
	default:
		return fmt.Errorf("price: line %d: unsupported value %q", node.Line, node.Value)
	}
	return nil
}

// MarshalYAML emits the numeric amount or the label.
func (p Price) MarshalYAML() (any, error) {
	if p.numeric {
		return p.amount, nil
	}
	return p.label, nil
}
