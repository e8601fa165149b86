package handlers

import (
	"encoding/json"

	applog "eshop/internal/log"
	"eshop/internal/repos"

	"github.com/gofiber/fiber/v2"
)

// AdminSettingsHandler stores free-form named settings documents (store
// profile, notification toggles and the like) as JSON blobs.
type AdminSettingsHandler struct {
	Settings *repos.SettingsRepo
}

// GET /api/v1/admin/settings/:name
func (h *AdminSettingsHandler) Get(c *fiber.Ctx) error {
	var doc json.RawMessage
	found, err := h.Settings.Get(c.Params("name"), &doc)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load setting")
	}
	if !found {
		return jsonErr(c, fiber.StatusNotFound, "setting not found")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(doc)
}

// PUT /api/v1/admin/settings/:name — the body must be a JSON document; it is
// stored as-is and returned verbatim on Get.
func (h *AdminSettingsHandler) Put(c *fiber.Ctx) error {
	var doc json.RawMessage
	if err := json.Unmarshal(c.Body(), &doc); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "body must be valid JSON")
	}
	name := c.Params("name")
	if err := h.Settings.Put(name, doc); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not save setting")
	}
	applog.Audit(c, "admin.settings.put", map[string]any{"name": name})
	return c.JSON(fiber.Map{"ok": true})
}

// DELETE /api/v1/admin/settings/:name
func (h *AdminSettingsHandler) Delete(c *fiber.Ctx) error {
	name := c.Params("name")
	if err := h.Settings.Remove(name); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not delete setting")
	}
	applog.Audit(c, "admin.settings.delete", map[string]any{"name": name})
	return c.JSON(fiber.Map{"ok": true})
}
