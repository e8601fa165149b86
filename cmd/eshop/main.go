package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"eshop/internal/config"
	"eshop/internal/fakestore"
	"eshop/internal/http/handlers"
	applog "eshop/internal/log"
	"eshop/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.SeedSuperAdmin(db, cfg.AdminEmail, cfg.AdminPass); err != nil {
		log.Fatal(err)
	}

	// First boot on an empty catalog pulls products from the external API in
	// the background; the server is usable immediately either way.
	go seedCatalog(db, cfg.CatalogAPI)

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard; CSV imports fit comfortably under this.
	app.Server().MaxRequestBodySize = 1 << 20

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:X-Csrf-Token",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "security check failed, refresh and try again",
			})
		},
	}))

	deps := handlers.NewDeps(db)
	handlers.Routes(app, deps)

	log.Fatal(app.Listen(":" + cfg.Port))
}

// seedCatalog fills an empty products table from the external catalog API.
// A non-empty table or a fetch failure both leave the catalog alone.
func seedCatalog(db *sqlx.DB, apiURL string) {
	prods := repos.NewProductRepo(db)
	n, err := prods.Count()
	if err != nil || n > 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	items, err := fakestore.New(apiURL).Fetch(ctx)
	if err != nil {
		log.Printf("[seed] catalog fetch failed: %v", err)
		return
	}
	for _, p := range items {
		if err := prods.Upsert(p); err != nil {
			log.Printf("[seed] upsert %s: %v", p.ID, err)
		}
	}
	log.Printf("[seed] catalog seeded with %d products", len(items))
}
