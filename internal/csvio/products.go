package csvio

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"eshop/internal/domain"
)

var productHeader = []string{
	"id", "title", "category", "price", "salePrice", "stock", "status",
	"published", "sku", "image", "description", "dateAdded", "slug", "tags", "latest",
}

func ExportProducts(products []domain.Product) []byte {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.ID, p.Title, p.Category, formatFloat(p.Price), formatFloat(p.SalePrice),
			strconv.Itoa(p.Stock), p.Status, strconv.FormatBool(p.Published),
			p.SKU, p.Image, p.Description, p.DateAdded, p.Slug, p.Tags,
			strconv.FormatBool(p.Latest),
		})
	}
	return export(productHeader, rows)
}

// ImportProducts decodes rows into canonical products, filling the defaults a
// fresh record gets: generated id, salePrice=price, status Active, published.
func ImportProducts(data []byte) ([]domain.Product, error) {
	header, rows, err := parse(data)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p := domain.Product{
			ID:          field(header, row, "id"),
			Title:       field(header, row, "title"),
			Category:    field(header, row, "category"),
			Price:       parseFloat(field(header, row, "price")),
			SalePrice:   parseFloat(field(header, row, "salePrice")),
			Stock:       parseInt(field(header, row, "stock")),
			Status:      field(header, row, "status"),
			Published:   parseBoolDefault(field(header, row, "published"), true),
			SKU:         field(header, row, "sku"),
			Image:       field(header, row, "image"),
			Description: field(header, row, "description"),
			DateAdded:   field(header, row, "dateAdded"),
			Slug:        field(header, row, "slug"),
			Tags:        field(header, row, "tags"),
			Latest:      parseBool(field(header, row, "latest")),
		}
		if p.ID == "" {
			p.ID = fmt.Sprintf("P%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
		}
		if p.SalePrice == 0 {
			p.SalePrice = p.Price
		}
		if p.Status == "" {
			p.Status = "Active"
		}
		if p.Category == "" {
			p.Category = "Uncategorized"
		}
		if p.DateAdded == "" {
			p.DateAdded = time.Now().Format(time.RFC3339)
		}
		out = append(out, p)
	}
	return out, nil
}
