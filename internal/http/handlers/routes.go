package handlers

import (
	"time"

	applog "eshop/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Routes mounts the full API surface on app. Storefront routes live under
// /api/v1; everything under /api/v1/admin sits behind the admin session guard.
func Routes(app *fiber.App, d *Deps) {
	api := app.Group("/api/v1")

	// Shopper auth. Login is throttled separately from the global limiter.
	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return jsonErr(c, fiber.StatusTooManyRequests, "too many attempts, try again later")
		},
	})
	api.Post("/signup", d.AuthHandler.Signup)
	api.Post("/login", loginLimiter, d.AuthHandler.Login)
	api.Post("/logout", d.AuthHandler.Logout)
	api.Get("/me", d.AuthHandler.Me)

	// Public catalog.
	api.Get("/products", d.CatalogHandler.List)
	api.Get("/products/latest", d.CatalogHandler.Latest)
	api.Get("/products/:id", d.CatalogHandler.Get)
	api.Get("/products/:id/availability", d.CatalogHandler.Availability)
	api.Get("/categories", d.CatalogHandler.Categories)

	// Cart. Works for guests; the session cookie is the cart key.
	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart/items", d.CartHandler.Add)
	api.Put("/cart/items/:id", d.CartHandler.UpdateQty)
	api.Delete("/cart/items/:id", d.CartHandler.Remove)
	api.Delete("/cart", d.CartHandler.Clear)

	// Orders.
	api.Post("/orders", d.OrderHandler.Place)
	api.Get("/orders", d.OrderHandler.History)
	api.Get("/orders/:id", d.OrderHandler.Get)
	api.Get("/orders/:id/receipt", d.OrderHandler.Receipt)

	// Admin auth is outside the guard.
	adminAuth := api.Group("/admin")
	adminAuth.Post("/register", d.AdminAuthHandler.Register)
	adminAuth.Post("/login", loginLimiter, d.AdminAuthHandler.Login)
	adminAuth.Post("/logout", d.AdminAuthHandler.Logout)

	admin := api.Group("/admin", RequireAdmin(d.AdminAuth))
	admin.Get("/me", d.AdminAuthHandler.Me)

	admin.Get("/dashboard", d.AdminHandler.Dashboard)
	admin.Get("/orders", d.AdminHandler.ListOrders)
	admin.Get("/orders/:id", d.AdminHandler.Order)
	admin.Put("/orders/:id/status", d.AdminHandler.UpdateStatus)
	admin.Get("/orders/:id/invoice", d.AdminHandler.InvoiceView)

	admin.Get("/products", d.AdminCatalogHandler.List)
	admin.Get("/products/export", d.AdminCatalogHandler.Export)
	admin.Post("/products/import", d.AdminCatalogHandler.Import)
	admin.Post("/products/bulk-delete", d.AdminCatalogHandler.BulkDelete)
	admin.Post("/products", d.AdminCatalogHandler.Create)
	admin.Put("/products/:id", d.AdminCatalogHandler.Update)
	admin.Delete("/products/:id", d.AdminCatalogHandler.Delete)
	admin.Put("/products/:id/status", d.AdminCatalogHandler.ToggleStatus)
	admin.Put("/products/:id/published", d.AdminCatalogHandler.TogglePublished)
	admin.Put("/products/:id/latest", d.AdminCatalogHandler.ToggleLatest)

	admin.Get("/categories", d.AdminCategoryHandler.List)
	admin.Get("/categories/export", d.AdminCategoryHandler.Export)
	admin.Post("/categories/import", d.AdminCategoryHandler.Import)
	admin.Post("/categories", d.AdminCategoryHandler.Create)
	admin.Put("/categories/:id", d.AdminCategoryHandler.Update)
	admin.Put("/categories/:id/status", d.AdminCategoryHandler.ToggleStatus)
	admin.Delete("/categories/:id", d.AdminCategoryHandler.Delete)

	admin.Get("/coupons", d.AdminCouponHandler.List)
	admin.Get("/coupons/generate-code", d.AdminCouponHandler.GenerateCode)
	admin.Get("/coupons/export", d.AdminCouponHandler.Export)
	admin.Post("/coupons/import", d.AdminCouponHandler.Import)
	admin.Post("/coupons", d.AdminCouponHandler.Create)
	admin.Put("/coupons/:id", d.AdminCouponHandler.Update)
	admin.Put("/coupons/:id/status", d.AdminCouponHandler.ToggleStatus)
	admin.Delete("/coupons/:id", d.AdminCouponHandler.Delete)

	admin.Get("/accounts", d.AdminStaffHandler.ListAccounts)
	admin.Put("/accounts/:id", d.AdminStaffHandler.UpdateAccount)
	admin.Put("/accounts/:id/published", d.AdminStaffHandler.ToggleAccountPublished)
	admin.Delete("/accounts/:id", d.AdminStaffHandler.DeleteAccount)

	admin.Get("/staff", d.AdminStaffHandler.ListStaff)
	admin.Put("/staff/:id", d.AdminStaffHandler.UpdateStaff)
	admin.Put("/staff/:id/published", d.AdminStaffHandler.ToggleStaffPublished)
	admin.Delete("/staff/:id", d.AdminStaffHandler.DeleteStaff)

	admin.Get("/customers", d.AdminCustomerHandler.List)
	admin.Get("/customers/:id", d.AdminCustomerHandler.Get)
	admin.Put("/customers/:id", d.AdminCustomerHandler.Update)
	admin.Delete("/customers/:id", d.AdminCustomerHandler.Delete)

	admin.Get("/settings/:name", d.AdminSettingsHandler.Get)
	admin.Put("/settings/:name", d.AdminSettingsHandler.Put)
	admin.Delete("/settings/:name", d.AdminSettingsHandler.Delete)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
}
