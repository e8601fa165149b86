package handlers

import (
	"errors"
	"time"

	applog "eshop/internal/log"
	"eshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// POST /api/v1/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var f services.SignupForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "all signup fields are required")
	}
	u, err := h.Auth.Signup(f)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			applog.Security(c, "auth.signup.duplicate", map[string]any{"email": f.Email})
			return jsonErr(c, fiber.StatusConflict, err.Error())
		}
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Audit(c, "auth.signup", map[string]any{"email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(u)
}

type loginForm struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// POST /api/v1/login — identifier is an email address or a mobile number.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var f loginForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "identifier and password are required")
	}
	u, err := h.Auth.Login(sid, f.Identifier, f.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"identifier": f.Identifier})
		return jsonErr(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	applog.Audit(c, "auth.login", map[string]any{"email": u.Email})
	return c.JSON(u)
}

// POST /api/v1/logout — clears the shopper session only.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		_ = h.Auth.Logout(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return jsonErr(c, fiber.StatusUnauthorized, "not logged in")
	}
	u, err := h.Auth.CurrentUser(sid)
	if err != nil || u == nil {
		return jsonErr(c, fiber.StatusUnauthorized, "not logged in")
	}
	return c.JSON(u)
}
