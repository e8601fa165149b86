package handlers

import (
	"errors"

	applog "eshop/internal/log"
	"eshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartAddForm struct {
	ProductID string `json:"productId" validate:"required"`
}

// POST /api/v1/cart/items — adding a product already in the cart bumps its
// quantity by one instead of creating a second line.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var f cartAddForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "productId is required")
	}
	if err := h.Cart.Add(sid, f.ProductID); err != nil {
		if errors.Is(err, services.ErrUnavailable) {
			return jsonErr(c, fiber.StatusNotFound, "product is not available")
		}
		applog.Error(c, "cart.add", err, map[string]any{"product": f.ProductID})
		return jsonErr(c, fiber.StatusInternalServerError, "could not add to cart")
	}
	view, err := h.Cart.View(sid)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load cart")
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

type cartQtyForm struct {
	Qty int `json:"qty" validate:"required"`
}

// PUT /api/v1/cart/items/:id
func (h *CartHandler) UpdateQty(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid := c.Params("id")
	var f cartQtyForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "qty is required")
	}
	if err := h.Cart.UpdateQty(sid, pid, f.Qty); err != nil {
		switch {
		case errors.Is(err, services.ErrBadQty):
			return jsonErr(c, fiber.StatusBadRequest, "quantity must be at least 1")
		case errors.Is(err, services.ErrNotInCart):
			return jsonErr(c, fiber.StatusNotFound, "item is not in the cart")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not update cart")
	}
	view, err := h.Cart.View(sid)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load cart")
	}
	return c.JSON(view)
}

// DELETE /api/v1/cart/items/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Remove(sid, c.Params("id")); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not update cart")
	}
	view, err := h.Cart.View(sid)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load cart")
	}
	return c.JSON(view)
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not clear cart")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/cart — line subtotals and the cart total are computed from the
// current catalog price, not the price at the time the item was added.
func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	view, err := h.Cart.View(sid)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load cart")
	}
	return c.JSON(view)
}
