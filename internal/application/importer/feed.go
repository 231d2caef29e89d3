package importer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/marketplace/backend/internal/domain/shared"
)

// FlexID accepts either a scalar integer or a quoted string in the feed.
// Supplier exports are inconsistent about which one they emit.
type FlexID string

// UnmarshalYAML implements yaml.Unmarshaler for FlexID
func (f *FlexID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("id must be a scalar, got %s", value.Tag)
	}
	*f = FlexID(strings.TrimSpace(value.Value))
	return nil
}

// FeedDecimal wraps decimal.Decimal so YAML scalars parse without
// a float round trip
type FeedDecimal struct {
	decimal.Decimal
}

// UnmarshalYAML implements yaml.Unmarshaler for FeedDecimal
func (d *FeedDecimal) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected a number, got %s", value.Tag)
	}
	parsed, err := decimal.NewFromString(strings.TrimSpace(value.Value))
	if err != nil {
		return fmt.Errorf("invalid number %q", value.Value)
	}
	d.Decimal = parsed
	return nil
}

// FeedParameters holds a good's characteristic map with values coerced
// to strings. Suppliers mix numbers, booleans and text freely.
type FeedParameters map[string]string

// UnmarshalYAML implements yaml.Unmarshaler for FeedParameters
func (p *FeedParameters) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("parameters must be a mapping, got %s", value.Tag)
	}
	out := make(FeedParameters, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		val := value.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("parameter %q must be a scalar", key.Value)
		}
		out[key.Value] = val.Value
	}
	*p = out
	return nil
}

// FeedCategory is one category entry of a supplier feed
type FeedCategory struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

// FeedGood is one offer entry of a supplier feed
type FeedGood struct {
	ID         FlexID         `yaml:"id"`
	Category   int64          `yaml:"category"`
	Model      string         `yaml:"model"`
	Name       string         `yaml:"name"`
	Price      FeedDecimal    `yaml:"price"`
	PriceRRC   FeedDecimal    `yaml:"price_rrc"`
	Quantity   int            `yaml:"quantity"`
	Parameters FeedParameters `yaml:"parameters"`
}

// Feed is the parsed supplier price list
type Feed struct {
	Shop       string         `yaml:"shop"`
	Categories []FeedCategory `yaml:"categories"`
	Goods      []FeedGood     `yaml:"goods"`
}

// ParseFeed decodes raw YAML into a Feed. Unknown keys are rejected so a
// misspelled field surfaces instead of silently dropping data.
func ParseFeed(raw []byte) (*Feed, error) {
	dec := yaml.NewDecoder(strings.NewReader(string(raw)))
	dec.KnownFields(true)

	var feed Feed
	if err := dec.Decode(&feed); err != nil {
		return nil, shared.NewMalformedFeedError(err.Error())
	}
	return &feed, nil
}

// Validate checks the whole feed and reports every problem at once so a
// supplier can fix their export in one round. No write happens for a
// feed that fails here.
func (f *Feed) Validate() error {
	var problems []string

	if strings.TrimSpace(f.Shop) == "" {
		problems = append(problems, "shop: name is required")
	}

	categoryIDs := make(map[int64]struct{}, len(f.Categories))
	for i, c := range f.Categories {
		if c.ID <= 0 {
			problems = append(problems, fmt.Sprintf("categories[%d]: id must be positive", i))
		}
		if strings.TrimSpace(c.Name) == "" {
			problems = append(problems, fmt.Sprintf("categories[%d]: name is required", i))
		}
		if _, dup := categoryIDs[c.ID]; dup && c.ID > 0 {
			problems = append(problems, fmt.Sprintf("categories[%d]: duplicate id %d", i, c.ID))
		}
		categoryIDs[c.ID] = struct{}{}
	}

	goodIDs := make(map[FlexID]struct{}, len(f.Goods))
	for i, g := range f.Goods {
		if g.ID == "" {
			problems = append(problems, fmt.Sprintf("goods[%d]: id is required", i))
		} else if _, err := strconv.ParseInt(string(g.ID), 10, 64); err != nil {
			problems = append(problems, fmt.Sprintf("goods[%d]: id %q is not numeric", i, g.ID))
		} else if _, dup := goodIDs[g.ID]; dup {
			problems = append(problems, fmt.Sprintf("goods[%d]: duplicate id %s", i, g.ID))
		}
		goodIDs[g.ID] = struct{}{}

		if strings.TrimSpace(g.Name) == "" {
			problems = append(problems, fmt.Sprintf("goods[%d]: name is required", i))
		}
		if _, ok := categoryIDs[g.Category]; !ok {
			problems = append(problems, fmt.Sprintf("goods[%d]: category %d is not declared in categories", i, g.Category))
		}
		if g.Price.IsNegative() {
			problems = append(problems, fmt.Sprintf("goods[%d]: price must not be negative", i))
		}
		if g.PriceRRC.IsNegative() {
			problems = append(problems, fmt.Sprintf("goods[%d]: price_rrc must not be negative", i))
		}
		if g.Quantity < 0 {
			problems = append(problems, fmt.Sprintf("goods[%d]: quantity must not be negative", i))
		}
	}

	if len(problems) > 0 {
		return shared.NewMalformedFeedError(strings.Join(problems, "; "))
	}
	return nil
}

// ExternalID returns the numeric form of the good's id. Validate must
// have passed beforehand.
func (g *FeedGood) ExternalID() int64 {
	n, _ := strconv.ParseInt(string(g.ID), 10, 64)
	return n
}

// SortedParameterNames returns parameter names in stable order so
// reconciliation writes are deterministic
func (g *FeedGood) SortedParameterNames() []string {
	names := make([]string, 0, len(g.Parameters))
	for name := range g.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
