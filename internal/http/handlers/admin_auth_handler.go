package handlers

import (
	"errors"
	"time"

	applog "eshop/internal/log"
	"eshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminAuthHandler struct {
	Auth *services.AdminAuthService
}

// POST /api/v1/admin/register
func (h *AdminAuthHandler) Register(c *fiber.Ctx) error {
	var f services.AdminRegisterForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "name, email, password and role are required")
	}
	u, err := h.Auth.Register(f)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateAdmin) {
			return jsonErr(c, fiber.StatusConflict, err.Error())
		}
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Audit(c, "admin.register", map[string]any{"email": u.Email, "role": u.Role})
	return c.Status(fiber.StatusCreated).JSON(u)
}

type adminLoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/v1/admin/login
func (h *AdminAuthHandler) Login(c *fiber.Ctx) error {
	asid := ensureASID(c)
	var f adminLoginForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "email and password are required")
	}
	u, err := h.Auth.Login(asid, f.Email, f.Password)
	if err != nil {
		applog.Security(c, "admin.login.fail", map[string]any{"email": f.Email})
		if errors.Is(err, services.ErrAdminInactive) {
			return jsonErr(c, fiber.StatusForbidden, err.Error())
		}
		return jsonErr(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	applog.Audit(c, "admin.login", map[string]any{"email": u.Email, "role": u.Role})
	return c.JSON(u)
}

// POST /api/v1/admin/logout
func (h *AdminAuthHandler) Logout(c *fiber.Ctx) error {
	asid := c.Cookies("asid")
	if asid != "" {
		_ = h.Auth.Logout(asid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "asid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
	applog.Audit(c, "admin.logout", map[string]any{"asid": asid})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/admin/me
func (h *AdminAuthHandler) Me(c *fiber.Ctx) error {
	asid := c.Cookies("asid")
	if asid == "" {
		return jsonErr(c, fiber.StatusUnauthorized, "not logged in")
	}
	u, err := h.Auth.CurrentAdmin(asid)
	if err != nil || u == nil {
		return jsonErr(c, fiber.StatusUnauthorized, "not logged in")
	}
	return c.JSON(u)
}
