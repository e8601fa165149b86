package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var valid = validator.New()

// jsonErr is the single error shape every failure path returns: a recoverable,
// user-facing message. Nothing here terminates the process.
func jsonErr(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// parseBody decodes the request body into out and runs struct validation.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return err
	}
	return valid.Struct(out)
}

func ensureCookie(c *fiber.Ctx, name string) string {
	v := c.Cookies(name)
	if v == "" {
		v = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    v,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind TLS
		})
	}
	return v
}

// ensureSID returns the shopper session id cookie, creating it if absent.
func ensureSID(c *fiber.Ctx) string { return ensureCookie(c, "sid") }

// ensureASID is the admin counterpart; the two cookies are independent so a
// shopper login and an admin login can coexist in one browser.
func ensureASID(c *fiber.Ctx) string { return ensureCookie(c, "asid") }
