package handlers

import (
	"database/sql"
	"errors"
	"strconv"

	"eshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/products — published, active products with optional
// search / category / price-range filters.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	f := services.Filter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if v := c.Query("minPrice"); v != "" {
		f.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("maxPrice"); v != "" {
		f.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}
	products, err := h.Catalog.ListPublished(f)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(products)
}

// GET /api/v1/products/latest
func (h *CatalogHandler) Latest(c *fiber.Ctx) error {
	products, err := h.Catalog.ListLatest()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(products)
}

// GET /api/v1/products/:id
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	p, err := h.Catalog.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "product not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not load product")
	}
	return c.JSON(p)
}

// GET /api/v1/products/:id/availability — IN_STOCK, LOW_STOCK or OUT_OF_STOCK.
// An unknown id reads as out of stock rather than an error.
func (h *CatalogHandler) Availability(c *fiber.Ctx) error {
	a, err := h.Catalog.Availability(c.Params("id"))
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not check availability")
	}
	return c.JSON(fiber.Map{"productId": c.Params("id"), "availability": a})
}

// GET /api/v1/categories — distinct category names from the published catalog.
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.CategoryNames()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load categories")
	}
	return c.JSON(cats)
}
