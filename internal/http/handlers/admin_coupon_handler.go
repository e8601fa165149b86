package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eshop/internal/csvio"
	"eshop/internal/domain"
	applog "eshop/internal/log"
	"eshop/internal/services"
	"eshop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminCouponHandler struct {
	Coupons *services.CouponService
}

// GET /api/v1/admin/coupons
func (h *AdminCouponHandler) List(c *fiber.Ctx) error {
	coupons, err := h.Coupons.List()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load coupons")
	}
	return c.JSON(coupons)
}

// GET /api/v1/admin/coupons/generate-code
func (h *AdminCouponHandler) GenerateCode(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"code": services.GenerateCode(8)})
}

type couponForm struct {
	ID                 string   `json:"id"`
	Code               string   `json:"code" validate:"required"`
	Type               string   `json:"type" validate:"required,oneof=percentage fixed"`
	Value              float64  `json:"value" validate:"required,gt=0"`
	MinOrder           float64  `json:"minOrder"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	UsageLimit         int      `json:"usageLimit"`
	Status             string   `json:"status"`
	ApplyScope         string   `json:"applyScope"`
	SelectedCategories []string `json:"selectedCategories"`
	Description        string   `json:"description"`
}

func (f couponForm) toCoupon() domain.Coupon {
	return domain.Coupon{
		ID:                 f.ID,
		Code:               f.Code,
		Type:               f.Type,
		Value:              f.Value,
		MinOrder:           f.MinOrder,
		StartDate:          f.StartDate,
		EndDate:            f.EndDate,
		UsageLimit:         f.UsageLimit,
		Status:             f.Status,
		ApplyScope:         f.ApplyScope,
		SelectedCategories: strings.Join(f.SelectedCategories, "|"),
		Description:        f.Description,
	}
}

// POST /api/v1/admin/coupons
func (h *AdminCouponHandler) Create(c *fiber.Ctx) error {
	var f couponForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "code, type and a positive value are required")
	}
	f.ID = ""
	cp := f.toCoupon()
	if err := h.Coupons.Save(cp); err != nil {
		if errors.Is(err, services.ErrDuplicateCode) {
			return jsonErr(c, fiber.StatusConflict, err.Error())
		}
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Audit(c, "admin.coupon.create", map[string]any{"code": cp.Code})
	return c.SendStatus(fiber.StatusCreated)
}

// PUT /api/v1/admin/coupons/:id
func (h *AdminCouponHandler) Update(c *fiber.Ctx) error {
	var f couponForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "code, type and a positive value are required")
	}
	f.ID = c.Params("id")
	if err := h.Coupons.Save(f.toCoupon()); err != nil {
		if errors.Is(err, services.ErrDuplicateCode) {
			return jsonErr(c, fiber.StatusConflict, err.Error())
		}
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Audit(c, "admin.coupon.update", map[string]any{"id": f.ID})
	return c.JSON(fiber.Map{"ok": true})
}

// PUT /api/v1/admin/coupons/:id/status
func (h *AdminCouponHandler) ToggleStatus(c *fiber.Ctx) error {
	next, err := h.Coupons.ToggleStatus(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "coupon not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not update coupon")
	}
	return c.JSON(fiber.Map{"status": next})
}

// DELETE /api/v1/admin/coupons/:id
func (h *AdminCouponHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Coupons.Delete(id); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not delete coupon")
	}
	applog.Audit(c, "admin.coupon.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/admin/coupons/export
func (h *AdminCouponHandler) Export(c *fiber.Ctx) error {
	coupons, err := h.Coupons.List()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load coupons")
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="coupons.csv"`)
	return c.Send(csvio.ExportCoupons(coupons))
}

// POST /api/v1/admin/coupons/import
func (h *AdminCouponHandler) Import(c *fiber.Ctx) error {
	rows, err := csvio.ImportCoupons(c.Body())
	if err != nil {
		if errors.Is(err, csvio.ErrEmpty) {
			return jsonErr(c, fiber.StatusBadRequest, "csv file is empty")
		}
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	// Reject the whole file up front on any invalid row so a failed import
	// never leaves a partial set of coupons behind.
	for i, cp := range rows {
		if _, ok := validate.CouponCode(cp.Code); !ok {
			return jsonErr(c, fiber.StatusBadRequest, fmt.Sprintf("row %d: coupon code must be 4-12 characters A-Z 0-9", i+1))
		}
		if cp.Value <= 0 {
			return jsonErr(c, fiber.StatusBadRequest, fmt.Sprintf("row %d: discount value must be greater than zero", i+1))
		}
		if cp.Type != "percentage" && cp.Type != "fixed" {
			return jsonErr(c, fiber.StatusBadRequest, fmt.Sprintf("row %d: coupon type must be percentage or fixed", i+1))
		}
	}
	imported := 0
	for _, cp := range rows {
		if err := h.Coupons.Save(cp); err != nil {
			// Duplicate codes in the file are skipped, not fatal.
			if errors.Is(err, services.ErrDuplicateCode) {
				continue
			}
			return jsonErr(c, fiber.StatusBadRequest, err.Error())
		}
		imported++
	}
	applog.Audit(c, "admin.coupon.import", map[string]any{"count": imported})
	return c.JSON(fiber.Map{"imported": imported})
}
