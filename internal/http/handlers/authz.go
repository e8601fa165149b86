package handlers

import (
	applog "eshop/internal/log"
	"eshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return jsonErr(c, fiber.StatusUnauthorized, "login required")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return jsonErr(c, fiber.StatusUnauthorized, "login required")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin validates the admin session server-side on every privileged
// request; there is no client-writable role flag to trust.
func RequireAdmin(auth *services.AdminAuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		asid := c.Cookies("asid")
		if asid == "" {
			return jsonErr(c, fiber.StatusForbidden, "admin access denied")
		}
		a, err := auth.CurrentAdmin(asid)
		if err != nil || a == nil {
			applog.Security(c, "access.denied.admin", map[string]any{"asid": asid})
			return jsonErr(c, fiber.StatusForbidden, "admin access denied")
		}
		if !a.Published {
			applog.Security(c, "access.denied.admin.inactive", map[string]any{"email": a.Email})
			return jsonErr(c, fiber.StatusForbidden, "admin access denied")
		}
		c.Locals("admin", a)
		return c.Next()
	}
}
