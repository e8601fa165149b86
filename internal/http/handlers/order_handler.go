package handlers

import (
	"database/sql"
	"errors"
	"strconv"

	"eshop/internal/domain"
	applog "eshop/internal/log"
	"eshop/internal/repos"
	"eshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders  *repos.OrderRepo
	Users   *repos.UserRepo
	Placing *services.OrderService
}

// POST /api/v1/orders — checkout. The order snapshot (items, unit prices,
// totals) is frozen here; later catalog edits never touch it.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var f services.CheckoutForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "all shipping fields and a payment method are required")
	}
	o, err := h.Placing.Place(sid, f)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			return jsonErr(c, fiber.StatusBadRequest, "cart is empty")
		case errors.Is(err, services.ErrUnavailable):
			return jsonErr(c, fiber.StatusNotFound, "product is not available")
		case errors.Is(err, services.ErrCouponNotFound),
			errors.Is(err, services.ErrCouponInactive),
			errors.Is(err, services.ErrCouponExpired),
			errors.Is(err, services.ErrCouponMinOrder),
			errors.Is(err, services.ErrCouponScope),
			errors.Is(err, services.ErrCouponExhausted):
			return jsonErr(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Audit(c, "order.place", map[string]any{
		"orderId": o.OrderID, "total": o.TotalPrice, "method": o.PaymentMethod,
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /api/v1/orders — history for the current shopper. A logged-in user sees
// orders from every session bound to the account; a guest sees this session's.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var (
		orders []domain.Order
		err    error
	)
	if u, uerr := h.Users.SessionUser(sid); uerr == nil && u != nil {
		orders, err = h.Orders.ListByUser(u.ID)
	} else {
		orders, err = h.Orders.ListBySession(sid)
	}
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load orders")
	}
	return c.JSON(orders)
}

// GET /api/v1/orders/:id — id is the storage row, not the 6-digit order number.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	o, ok := h.ownOrder(c)
	if !ok {
		return nil
	}
	return c.JSON(o)
}

// GET /api/v1/orders/:id/receipt — the order plus its invoice breakdown.
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	o, ok := h.ownOrder(c)
	if !ok {
		return nil
	}
	return c.JSON(fiber.Map{"order": o, "invoice": services.ComputeInvoice(o)})
}

// ownOrder loads the order and checks it belongs to this shopper. On failure
// the response has already been written and ok is false.
func (h *OrderHandler) ownOrder(c *fiber.Ctx) (domain.Order, bool) {
	sid := ensureSID(c)
	rowID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		_ = jsonErr(c, fiber.StatusBadRequest, "invalid order id")
		return domain.Order{}, false
	}
	o, err := h.Orders.Get(rowID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = jsonErr(c, fiber.StatusNotFound, "order not found")
		} else {
			_ = jsonErr(c, fiber.StatusInternalServerError, "could not load order")
		}
		return domain.Order{}, false
	}
	if o.SessionID != sid && !h.sameUser(sid, o.SessionID) {
		applog.Security(c, "order.access.denied", map[string]any{"order": rowID})
		_ = jsonErr(c, fiber.StatusNotFound, "order not found")
		return domain.Order{}, false
	}
	return o, true
}

func (h *OrderHandler) sameUser(sid, orderSID string) bool {
	a, err := h.Users.SessionUser(sid)
	if err != nil || a == nil {
		return false
	}
	b, err := h.Users.SessionUser(orderSID)
	if err != nil || b == nil {
		return false
	}
	return a.ID == b.ID
}
