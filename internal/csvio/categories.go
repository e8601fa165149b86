package csvio

import (
	"eshop/internal/domain"

	"github.com/google/uuid"
)

var categoryHeader = []string{"id", "name", "slug", "description", "parent", "image", "status"}

// Category CSV carries the scalar fields only; subcategories stay in the
// database and are not part of the interchange format.
func ExportCategories(categories []domain.Category) []byte {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c.ID, c.Name, c.Slug, c.Description, c.Parent, c.Image, c.Status})
	}
	return export(categoryHeader, rows)
}

func ImportCategories(data []byte) ([]domain.Category, error) {
	header, rows, err := parse(data)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		c := domain.Category{
			ID:                field(header, row, "id"),
			Name:              field(header, row, "name"),
			Slug:              field(header, row, "slug"),
			Description:       field(header, row, "description"),
			Parent:            field(header, row, "parent"),
			Image:             field(header, row, "image"),
			Status:            field(header, row, "status"),
			SubcategoriesJSON: "[]",
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Status == "" {
			c.Status = "Active"
		}
		out = append(out, c)
	}
	return out, nil
}
