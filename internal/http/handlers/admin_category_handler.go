package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"eshop/internal/csvio"
	"eshop/internal/domain"
	applog "eshop/internal/log"
	"eshop/internal/repos"
	"eshop/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminCategoryHandler struct {
	Cats *repos.CategoryRepo
}

type categoryView struct {
	domain.Category
	Subcategories []domain.Subcategory `json:"subcategories"`
}

func toCategoryView(c domain.Category) categoryView {
	v := categoryView{Category: c, Subcategories: []domain.Subcategory{}}
	if c.SubcategoriesJSON != "" {
		_ = json.Unmarshal([]byte(c.SubcategoriesJSON), &v.Subcategories)
	}
	return v
}

// GET /api/v1/admin/categories
func (h *AdminCategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Cats.List()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load categories")
	}
	out := make([]categoryView, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoryView(cat))
	}
	return c.JSON(out)
}

type categoryForm struct {
	Name          string               `json:"name" validate:"required"`
	Slug          string               `json:"slug"`
	Description   string               `json:"description"`
	Parent        string               `json:"parent"`
	Image         string               `json:"image"`
	Status        string               `json:"status"`
	Subcategories []domain.Subcategory `json:"subcategories"`
}

func (h *AdminCategoryHandler) save(c *fiber.Ctx, id string) error {
	var f categoryForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "category name is required")
	}
	slug := f.Slug
	if slug == "" {
		slug = validate.Slugify(f.Name)
	}
	dup, err := h.Cats.SlugExists(slug, id)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not save category")
	}
	if dup {
		return jsonErr(c, fiber.StatusConflict, "a category with this slug already exists")
	}
	status := f.Status
	if status == "" {
		status = "Active"
	}
	for i := range f.Subcategories {
		if f.Subcategories[i].ID == "" {
			f.Subcategories[i].ID = uuid.NewString()
		}
		if f.Subcategories[i].Slug == "" {
			f.Subcategories[i].Slug = validate.Slugify(f.Subcategories[i].Name)
		}
		if f.Subcategories[i].Status == "" {
			f.Subcategories[i].Status = "Active"
		}
	}
	subJSON, _ := json.Marshal(f.Subcategories)
	cat := domain.Category{
		ID:                id,
		Name:              f.Name,
		Slug:              slug,
		Description:       f.Description,
		Parent:            f.Parent,
		Image:             f.Image,
		Status:            status,
		SubcategoriesJSON: string(subJSON),
	}
	if err := h.Cats.Upsert(cat); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not save category")
	}
	applog.Audit(c, "admin.category.save", map[string]any{"id": id, "name": f.Name})
	return c.JSON(toCategoryView(cat))
}

// POST /api/v1/admin/categories
func (h *AdminCategoryHandler) Create(c *fiber.Ctx) error {
	c.Status(fiber.StatusCreated)
	return h.save(c, uuid.NewString())
}

// PUT /api/v1/admin/categories/:id
func (h *AdminCategoryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.Cats.Get(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "category not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not load category")
	}
	return h.save(c, id)
}

// PUT /api/v1/admin/categories/:id/status — Active <-> Inactive.
func (h *AdminCategoryHandler) ToggleStatus(c *fiber.Ctx) error {
	cat, err := h.Cats.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "category not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not load category")
	}
	next := "Active"
	if cat.Status == "Active" {
		next = "Inactive"
	}
	if err := h.Cats.SetStatus(cat.ID, next); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not update category")
	}
	return c.JSON(fiber.Map{"status": next})
}

// DELETE /api/v1/admin/categories/:id
func (h *AdminCategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Cats.Delete(id); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not delete category")
	}
	applog.Audit(c, "admin.category.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/admin/categories/export — scalar fields only; subcategories are
// not part of the CSV shape.
func (h *AdminCategoryHandler) Export(c *fiber.Ctx) error {
	cats, err := h.Cats.List()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load categories")
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="categories.csv"`)
	return c.Send(csvio.ExportCategories(cats))
}

// POST /api/v1/admin/categories/import
func (h *AdminCategoryHandler) Import(c *fiber.Ctx) error {
	rows, err := csvio.ImportCategories(c.Body())
	if err != nil {
		if errors.Is(err, csvio.ErrEmpty) {
			return jsonErr(c, fiber.StatusBadRequest, "csv file is empty")
		}
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	// Any invalid row rejects the whole file; no partial import.
	for i, cat := range rows {
		if cat.Name == "" {
			return jsonErr(c, fiber.StatusBadRequest, fmt.Sprintf("row %d: category name is required", i+1))
		}
	}
	for _, cat := range rows {
		if err := h.Cats.Upsert(cat); err != nil {
			return jsonErr(c, fiber.StatusBadRequest, err.Error())
		}
	}
	applog.Audit(c, "admin.category.import", map[string]any{"count": len(rows)})
	return c.JSON(fiber.Map{"imported": len(rows)})
}
