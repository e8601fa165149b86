package domain

import "strings"

// Product is the canonical catalog record. Records arriving from the external
// catalog API or a CSV import are normalized into this shape at the boundary;
// internal code never reads alternate field spellings.
type Product struct {
	ID          string  `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Category    string  `db:"category" json:"category"`
	Price       float64 `db:"price" json:"price"`
	SalePrice   float64 `db:"sale_price" json:"salePrice"`
	Stock       int     `db:"stock" json:"stock"`
	Status      string  `db:"status" json:"status"` // Active | Inactive
	Published   bool    `db:"published" json:"published"`
	Image       string  `db:"image" json:"image"`
	SKU         string  `db:"sku" json:"sku"`
	Description string  `db:"description" json:"description"`
	Slug        string  `db:"slug" json:"slug"`
	Tags        string  `db:"tags" json:"tags"` // pipe-joined
	Latest      bool    `db:"latest" json:"latest"`
	DateAdded   string  `db:"date_added" json:"dateAdded"`
}

// SetTags stores a tag list into the pipe-joined column.
func (p *Product) SetTags(tags []string) {
	p.Tags = strings.Join(tags, "|")
}

// TagList splits the stored pipe-joined tags column.
func (p Product) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	return strings.Split(p.Tags, "|")
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
	Parent      string `db:"parent" json:"parent"`
	Image       string `db:"image" json:"image"`
	Status      string `db:"status" json:"status"`
	// Subcategories serialized as JSON in one column; nothing joins against
	// subcategories so they don't get their own table.
	SubcategoriesJSON string `db:"subcategories_json" json:"-"`
}

type Subcategory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

type Coupon struct {
	ID                 string  `db:"id" json:"id"`
	Code               string  `db:"code" json:"code"`
	Type               string  `db:"type" json:"type"` // percentage | fixed
	Value              float64 `db:"value" json:"value"`
	MinOrder           float64 `db:"min_order" json:"minOrder"`
	StartDate          string  `db:"start_date" json:"startDate"` // YYYY-MM-DD
	EndDate            string  `db:"end_date" json:"endDate"`
	UsageLimit         int     `db:"usage_limit" json:"usageLimit"`
	UsedCount          int     `db:"used_count" json:"usedCount"`
	Status             string  `db:"status" json:"status"`
	ApplyScope         string  `db:"apply_scope" json:"applyScope"` // store | categories | products
	SelectedCategories string  `db:"selected_categories" json:"selectedCategories"` // pipe-joined
	Description        string  `db:"description" json:"description"`
}

func (c Coupon) CategoryList() []string {
	if c.SelectedCategories == "" {
		return nil
	}
	return strings.Split(c.SelectedCategories, "|")
}
