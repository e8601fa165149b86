package handlers

import (
	"database/sql"
	"errors"

	applog "eshop/internal/log"
	"eshop/internal/repos"
	"eshop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// AdminCustomerHandler exposes the registered shopper directory to the
// back-office. Passwords never leave the service.
type AdminCustomerHandler struct {
	Users  *repos.UserRepo
	Orders *repos.OrderRepo
}

// GET /api/v1/admin/customers
func (h *AdminCustomerHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load customers")
	}
	return c.JSON(users)
}

// GET /api/v1/admin/customers/:id — profile plus order history.
func (h *AdminCustomerHandler) Get(c *fiber.Ctx) error {
	u, err := h.Users.ByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "customer not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not load customer")
	}
	orders, err := h.Orders.ListByUser(u.ID)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load customer orders")
	}
	return c.JSON(fiber.Map{"customer": u, "orders": orders})
}

type customerForm struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Mobile    string `json:"mobile" validate:"required"`
}

// PUT /api/v1/admin/customers/:id
func (h *AdminCustomerHandler) Update(c *fiber.Ctx) error {
	u, err := h.Users.ByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "customer not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not load customer")
	}
	var f customerForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "all customer fields are required")
	}
	email, ok := validate.Email(f.Email)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "email is invalid")
	}
	mobile, ok := validate.Mobile(f.Mobile)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "mobile must be 10 digits")
	}
	if err := h.Users.UpdateContact(u.ID, f.FirstName, f.LastName, email, mobile); err != nil {
		return jsonErr(c, fiber.StatusConflict, "another account already uses that email or mobile")
	}
	applog.Audit(c, "admin.customer.update", map[string]any{"id": u.ID})
	return c.JSON(fiber.Map{"ok": true})
}

// DELETE /api/v1/admin/customers/:id — removes the account, its sessions and
// cart; placed orders stay on record.
func (h *AdminCustomerHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Users.Delete(id); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not delete customer")
	}
	applog.Audit(c, "admin.customer.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}
