package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const ProductTypeNote = "note"

// ProductID is a catalog product id. The catalog emits ids both as JSON
// numbers and strings; they are always held as strings.
type ProductID string

func (id ProductID) String() string {
	return string(id)
}

func (id *ProductID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("product id: %w", err)
		}
		*id = ProductID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// Product is a catalog item placed into a room.
//
// Pricing fields come from the server (get_product_data_for_storage) and are
// already scaled to the room area in the *_total fields.
type Product struct {
	ID                 ProductID   `json:"id"`
	Name               string      `json:"name"`
	Type               string      `json:"type,omitempty"`
	Image              string      `json:"image,omitempty"`
	MinPrice           float64     `json:"min_price,omitempty"`
	MaxPrice           float64     `json:"max_price,omitempty"`
	MinPriceTotal      float64     `json:"min_price_total,omitempty"`
	MaxPriceTotal      float64     `json:"max_price_total,omitempty"`
	PricingMethod      string      `json:"pricing_method,omitempty"`
	PricingSource      string      `json:"pricing_source,omitempty"`
	IsPrimaryCategory  bool        `json:"is_primary_category,omitempty"`
	SimilarProducts    *ProductMap `json:"similar_products,omitempty"`
	AdditionalProducts *ProductMap `json:"additional_products,omitempty"`
	AdditionalNotes    Notes       `json:"additional_notes,omitempty"`
	ReplacementChain   []ProductID `json:"replacement_chain,omitempty"`
	SelectedOption     *int        `json:"selected_option,omitempty"`
	Variations         Variations  `json:"variations,omitempty"`
}

func (p Product) IsNote() bool {
	return p.Type == ProductTypeNote
}

// Totals returns the product's own totals plus those of its additional products.
func (p Product) Totals() Totals {
	if p.IsNote() {
		return Totals{}
	}
	minTotal := decimal.NewFromFloat(p.MinPriceTotal)
	maxTotal := decimal.NewFromFloat(p.MaxPriceTotal)
	if p.AdditionalProducts != nil {
		for _, addon := range p.AdditionalProducts.Values() {
			t := addon.Totals()
			minTotal = minTotal.Add(decimal.NewFromFloat(t.MinTotal))
			maxTotal = maxTotal.Add(decimal.NewFromFloat(t.MaxTotal))
		}
	}
	return *newTotals(minTotal, maxTotal)
}

// ChainContains reports whether id was replaced on the way to this product.
func (p Product) ChainContains(id ProductID) bool {
	for _, prior := range p.ReplacementChain {
		if prior == id {
			return true
		}
	}
	return false
}

// Note is a free-text entry attached to a product.
type Note struct {
	ID   ProductID `json:"id,omitempty"`
	Type string    `json:"type,omitempty"`
	Text string    `json:"note_text,omitempty"`
}

// Notes decodes from a list or an id-keyed object, and encodes as a list.
type Notes []Note

func (n *Notes) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*n = nil
		return nil
	}
	if trimmed[0] == '[' {
		var list []Note
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*n = list
		return nil
	}

	var byKey map[string]Note
	if err := json.Unmarshal(trimmed, &byKey); err != nil {
		return err
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Notes, 0, len(keys))
	for _, k := range keys {
		note := byKey[k]
		if note.ID == "" {
			note.ID = ProductID(k)
		}
		out = append(out, note)
	}
	*n = out
	return nil
}

// Variation is one purchasable option of a variation-bearing product.
type Variation struct {
	ID         ProductID         `json:"variation_id"`
	Name       string            `json:"name,omitempty"`
	Image      string            `json:"image,omitempty"`
	MinPrice   float64           `json:"min_price,omitempty"`
	MaxPrice   float64           `json:"max_price,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Variations is keyed by variation id. An empty PHP array ("[]") and lists are accepted.
type Variations map[string]Variation

func (v *Variations) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = nil
		return nil
	}
	if trimmed[0] == '[' {
		var list []Variation
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		out := make(Variations, len(list))
		for _, item := range list {
			out[string(item.ID)] = item
		}
		*v = out
		return nil
	}
	var byKey map[string]Variation
	if err := json.Unmarshal(trimmed, &byKey); err != nil {
		return err
	}
	*v = byKey
	return nil
}
