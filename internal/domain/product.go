package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Variant is a purchasable unit-size/price combination of a Product.
type Variant struct {
	ID     string  `json:"id"`
	Weight string  `json:"weight"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	NameTe        string    `json:"nameTe,omitempty"`
	Description   string    `json:"description"`
	DescriptionTe string    `json:"descriptionTe,omitempty"`
	Image         string    `json:"image"`
	Variants      []Variant `json:"variants"`
	Active        bool      `json:"active"`
}

// Variant returns the variant with the given id.
func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// ProductDraft collects form input for a new or edited product. It is
// validated into a complete Product only at submit time.
type ProductDraft struct {
	ID            string
	Name          string
	NameTe        string
	Description   string
	DescriptionTe string
	Image         string
	Variants      []Variant
	Active        *bool
}

// Build validates the draft into a Product. Missing ids (product and
// variant) are generated; a draft without a name or without at least one
// variant is rejected.
func (d ProductDraft) Build() (Product, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return Product{}, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if len(d.Variants) == 0 {
		return Product{}, fmt.Errorf("%w: product needs at least one variant", ErrInvalidInput)
	}

	variants := make([]Variant, 0, len(d.Variants))
	seen := make(map[string]struct{}, len(d.Variants))
	for _, v := range d.Variants {
		if v.Price < 0 || v.Stock < 0 {
			return Product{}, fmt.Errorf("%w: variant price and stock must be non-negative", ErrInvalidInput)
		}
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		if _, dup := seen[v.ID]; dup {
			return Product{}, fmt.Errorf("%w: duplicate variant id %q", ErrInvalidInput, v.ID)
		}
		seen[v.ID] = struct{}{}
		v.Weight = strings.TrimSpace(v.Weight)
		variants = append(variants, v)
	}

	active := true
	if d.Active != nil {
		active = *d.Active
	}

	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}

	return Product{
		ID:            id,
		Name:          name,
		NameTe:        strings.TrimSpace(d.NameTe),
		Description:   d.Description,
		DescriptionTe: d.DescriptionTe,
		Image:         d.Image,
		Variants:      variants,
		Active:        active,
	}, nil
}
