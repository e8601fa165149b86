package handlers

import (
	"database/sql"
	"errors"
	"strings"

	"eshop/internal/domain"
	applog "eshop/internal/log"
	"eshop/internal/repos"
	"eshop/internal/validate"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// AdminStaffHandler manages admin accounts and the derived staff directory.
type AdminStaffHandler struct {
	Admins *repos.AdminRepo
}

// GET /api/v1/admin/accounts
func (h *AdminStaffHandler) ListAccounts(c *fiber.Ctx) error {
	admins, err := h.Admins.List()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load accounts")
	}
	return c.JSON(admins)
}

type adminUpdateForm struct {
	Name     string `json:"name" validate:"required"`
	Contact  string `json:"contact"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password"`
}

// PUT /api/v1/admin/accounts/:id — email is immutable; a non-empty password
// rotates the hash.
func (h *AdminStaffHandler) UpdateAccount(c *fiber.Ctx) error {
	u, err := h.Admins.ByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "account not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not load account")
	}
	var f adminUpdateForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "name and role are required")
	}
	if !domain.ValidAdminRole(f.Role) {
		return jsonErr(c, fiber.StatusBadRequest, "unknown role")
	}
	u.Name, u.Contact, u.Role = f.Name, f.Contact, f.Role
	if err := h.Admins.Update(*u); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not update account")
	}
	if f.Password != "" {
		if !validate.Password(f.Password) {
			return jsonErr(c, fiber.StatusBadRequest, "password must be 8-64 characters with letters and digits")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), 12)
		if err != nil {
			return jsonErr(c, fiber.StatusInternalServerError, "could not update account")
		}
		if err := h.Admins.UpdatePassword(u.ID, string(hash)); err != nil {
			return jsonErr(c, fiber.StatusInternalServerError, "could not update account")
		}
		applog.Security(c, "admin.account.passwordChange", map[string]any{"id": u.ID})
	}
	applog.Audit(c, "admin.account.update", map[string]any{"id": u.ID})
	return c.JSON(u)
}

// PUT /api/v1/admin/accounts/:id/published — unpublished accounts cannot log in.
func (h *AdminStaffHandler) ToggleAccountPublished(c *fiber.Ctx) error {
	u, err := h.Admins.ByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonErr(c, fiber.StatusNotFound, "account not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not load account")
	}
	if err := h.Admins.SetPublished(u.ID, !u.Published); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not update account")
	}
	applog.Security(c, "admin.account.published", map[string]any{"id": u.ID, "published": !u.Published})
	return c.JSON(fiber.Map{"published": !u.Published})
}

// DELETE /api/v1/admin/accounts/:id — an admin cannot delete their own account.
func (h *AdminStaffHandler) DeleteAccount(c *fiber.Ctx) error {
	id := c.Params("id")
	if me, ok := c.Locals("admin").(*domain.AdminUser); ok && me != nil && me.ID == id {
		return jsonErr(c, fiber.StatusBadRequest, "cannot delete the account you are logged in with")
	}
	if err := h.Admins.Delete(id); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not delete account")
	}
	applog.Audit(c, "admin.account.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/admin/staff?role=Manager&q=ravi
func (h *AdminStaffHandler) ListStaff(c *fiber.Ctx) error {
	staff, err := h.Admins.ListStaff()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load staff")
	}
	role := c.Query("role")
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	out := make([]domain.StaffRecord, 0, len(staff))
	for _, rec := range staff {
		if role != "" && rec.Role != role {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(rec.Name), q) &&
			!strings.Contains(strings.ToLower(rec.Email), q) {
			continue
		}
		out = append(out, rec)
	}
	return c.JSON(out)
}

type staffForm struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact"`
	Role    string `json:"role" validate:"required"`
}

// PUT /api/v1/admin/staff/:id
func (h *AdminStaffHandler) UpdateStaff(c *fiber.Ctx) error {
	staff, err := h.Admins.ListStaff()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load staff")
	}
	id := c.Params("id")
	var rec *domain.StaffRecord
	for i := range staff {
		if staff[i].ID == id {
			rec = &staff[i]
			break
		}
	}
	if rec == nil {
		return jsonErr(c, fiber.StatusNotFound, "staff record not found")
	}
	var f staffForm
	if err := parseBody(c, &f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "name and role are required")
	}
	if !domain.ValidAdminRole(f.Role) {
		return jsonErr(c, fiber.StatusBadRequest, "unknown role")
	}
	rec.Name, rec.Contact, rec.Role = f.Name, f.Contact, f.Role
	if err := h.Admins.UpdateStaff(*rec); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not update staff record")
	}
	applog.Audit(c, "admin.staff.update", map[string]any{"id": id})
	return c.JSON(rec)
}

// PUT /api/v1/admin/staff/:id/published — also flips Status between Active
// and Inactive so the directory stays consistent.
func (h *AdminStaffHandler) ToggleStaffPublished(c *fiber.Ctx) error {
	staff, err := h.Admins.ListStaff()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load staff")
	}
	id := c.Params("id")
	for _, rec := range staff {
		if rec.ID != id {
			continue
		}
		if err := h.Admins.SetStaffPublished(id, !rec.Published); err != nil {
			return jsonErr(c, fiber.StatusInternalServerError, "could not update staff record")
		}
		return c.JSON(fiber.Map{"published": !rec.Published})
	}
	return jsonErr(c, fiber.StatusNotFound, "staff record not found")
}

// DELETE /api/v1/admin/staff/:id
func (h *AdminStaffHandler) DeleteStaff(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Admins.DeleteStaff(id); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not delete staff record")
	}
	applog.Audit(c, "admin.staff.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}
