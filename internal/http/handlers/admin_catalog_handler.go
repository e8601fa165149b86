package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eshop/internal/csvio"
	"eshop/internal/domain"
	applog "eshop/internal/log"
	"eshop/internal/services"
	"eshop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// AdminCatalogHandler is the product back-office: CRUD, the three toggles,
// bulk delete and CSV import/export.
type AdminCatalogHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/admin/products — includes unpublished and inactive rows.
func (h *AdminCatalogHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List(services.Filter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(products)
}

type productForm struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required"`
	Category    string   `json:"category"`
	Price       float64  `json:"price" validate:"gte=0"`
	SalePrice   float64  `json:"salePrice"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Status      string   `json:"status"`
	Published   bool     `json:"published"`
	Image       string   `json:"image"`
	SKU         string   `json:"sku"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Tags        []string `json:"tags"`
	Latest      bool     `json:"latest"`
}

func (f productForm) toProduct() domain.Product {
	p := domain.Product{
		ID:          f.ID,
		Title:       f.Title,
		Category:    f.Category,
		Price:       f.Price,
		SalePrice:   f.SalePrice,
		Stock:       f.Stock,
		Status:      f.Status,
		Published:   f.Published,
		Image:       f.Image,
		SKU:         f.SKU,
		Description: f.Description,
		Slug:        f.Slug,
		Latest:      f.Latest,
	}
	p.SetTags(f.Tags)
	return p
}

// POST /api/v1/admin/products
func (h *AdminCatalogHandler) Create(c *fiber.Ctx) error {
	var f productForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "title is required and price must not be negative")
	}
	p := f.toProduct()
	if p.ID == "" {
		p.ID = fmt.Sprintf("P%d%03d", time.Now().UnixMilli(), time.Now().Nanosecond()%1000)
	}
	if p.Slug == "" {
		p.Slug = validate.Slugify(p.Title)
	}
	if p.SalePrice == 0 {
		p.SalePrice = p.Price
	}
	if p.Category == "" {
		p.Category = "Uncategorized"
	}
	if p.DateAdded == "" {
		p.DateAdded = time.Now().Format("2006-01-02")
	}
	if p.Status == "" {
		p.Status = "Active"
	}
	if err := h.Catalog.Save(p); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Audit(c, "admin.product.create", map[string]any{"id": p.ID, "title": p.Title})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/v1/admin/products/:id
func (h *AdminCatalogHandler) Update(c *fiber.Ctx) error {
	existing, err := h.Catalog.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "product not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not load product")
	}
	var f productForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "title is required and price must not be negative")
	}
	p := f.toProduct()
	p.ID = existing.ID
	p.DateAdded = existing.DateAdded
	if p.Slug == "" {
		p.Slug = existing.Slug
	}
	if p.Status == "" {
		p.Status = "Active"
	}
	if err := h.Catalog.Save(p); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Audit(c, "admin.product.update", map[string]any{"id": p.ID})
	return c.JSON(p)
}

// DELETE /api/v1/admin/products/:id
func (h *AdminCatalogHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Catalog.Delete(id); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not delete product")
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}

type bulkDeleteForm struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// POST /api/v1/admin/products/bulk-delete
func (h *AdminCatalogHandler) BulkDelete(c *fiber.Ctx) error {
	var f bulkDeleteForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "ids must be a non-empty list")
	}
	n, err := h.Catalog.BulkDelete(f.IDs)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not delete products")
	}
	applog.Audit(c, "admin.product.bulkDelete", map[string]any{"count": n})
	return c.JSON(fiber.Map{"deleted": n})
}

// PUT /api/v1/admin/products/:id/status — Active <-> Inactive.
func (h *AdminCatalogHandler) ToggleStatus(c *fiber.Ctx) error {
	next, err := h.Catalog.ToggleStatus(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "product not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not update product")
	}
	return c.JSON(fiber.Map{"status": next})
}

// PUT /api/v1/admin/products/:id/published
func (h *AdminCatalogHandler) TogglePublished(c *fiber.Ctx) error {
	next, err := h.Catalog.TogglePublished(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "product not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not update product")
	}
	return c.JSON(fiber.Map{"published": next})
}

// PUT /api/v1/admin/products/:id/latest
func (h *AdminCatalogHandler) ToggleLatest(c *fiber.Ctx) error {
	next, err := h.Catalog.ToggleLatest(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "product not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not update product")
	}
	return c.JSON(fiber.Map{"latest": next})
}

// GET /api/v1/admin/products/export — CSV download.
func (h *AdminCatalogHandler) Export(c *fiber.Ctx) error {
	products, err := h.Catalog.List(services.Filter{})
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load products")
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Send(csvio.ExportProducts(products))
}

// POST /api/v1/admin/products/import — CSV body, upserts every parsed row.
func (h *AdminCatalogHandler) Import(c *fiber.Ctx) error {
	rows, err := csvio.ImportProducts(c.Body())
	if err != nil {
		if errors.Is(err, csvio.ErrEmpty) {
			return jsonErr(c, fiber.StatusBadRequest, "csv file is empty")
		}
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	// Validate every row before touching the table: a bad row rejects the whole
	// file rather than leaving a partial import behind.
	for i, p := range rows {
		if p.Title == "" {
			return jsonErr(c, fiber.StatusBadRequest, fmt.Sprintf("row %d: title is required", i+1))
		}
		if p.Price < 0 {
			return jsonErr(c, fiber.StatusBadRequest, fmt.Sprintf("row %d: price must not be negative", i+1))
		}
	}
	for _, p := range rows {
		if err := h.Catalog.Save(p); err != nil {
			return jsonErr(c, fiber.StatusBadRequest, fmt.Sprintf("row %q: %s", p.ID, err))
		}
	}
	applog.Audit(c, "admin.product.import", map[string]any{"count": len(rows)})
	return c.JSON(fiber.Map{"imported": len(rows)})
}
