package handlers

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"eshop/internal/domain"
	applog "eshop/internal/log"
	"eshop/internal/repos"
	"eshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the dashboard and the order back-office.
type AdminHandler struct {
	Orders *repos.OrderRepo
}

// GET /api/v1/admin/dashboard — counters, the weekly sales series and the
// best-seller board in a single poll-friendly payload.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	orders, err := h.Orders.ListAll()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load orders")
	}
	now := time.Now()
	recent := orders
	if len(recent) > 10 {
		recent = recent[:10]
	}
	return c.JSON(fiber.Map{
		"stats":        services.ComputeStats(orders, now),
		"weeklySales":  services.WeeklySeries(orders, now),
		"bestSellers":  services.BestSellers(orders, 0),
		"recentOrders": recent,
	})
}

// GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.ListAll()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load orders")
	}
	return c.JSON(orders)
}

// GET /api/v1/admin/orders/:id
func (h *AdminHandler) Order(c *fiber.Ctx) error {
	o, ok := h.load(c)
	if !ok {
		return nil
	}
	return c.JSON(fiber.Map{"order": o, "invoice": services.ComputeInvoice(o)})
}

type statusForm struct {
	Status string `json:"status" validate:"required"`
}

// PUT /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	o, ok := h.load(c)
	if !ok {
		return nil
	}
	var f statusForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "status is required")
	}
	if !domain.ValidOrderStatus(f.Status) {
		return jsonErr(c, fiber.StatusBadRequest, "unknown order status")
	}
	if err := h.Orders.UpdateStatus(o.RowID, f.Status); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not update order")
	}
	applog.Audit(c, "admin.order.status", map[string]any{
		"order": o.RowID, "from": o.OrderStatus, "to": f.Status,
	})
	o.OrderStatus = f.Status
	return c.JSON(o)
}

// GET /api/v1/admin/orders/:id/invoice — printable HTML invoice.
func (h *AdminHandler) InvoiceView(c *fiber.Ctx) error {
	o, ok := h.load(c)
	if !ok {
		return nil
	}
	inv := services.ComputeInvoice(o)
	return c.Render("invoice", fiber.Map{
		"Order":   o,
		"Invoice": inv,
		"Printed": time.Now().Format("02 Jan 2006 15:04"),
	})
}

func (h *AdminHandler) load(c *fiber.Ctx) (domain.Order, bool) {
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
	return o, true
}
