package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBDSN      string
	LogFile    string
	CatalogAPI string // external product catalog read endpoint
	AdminEmail string // seeded SuperAdmin identity
	AdminPass  string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:       getenv("PORT", "8080"),
		DBDSN:      getenv("DB_DSN", "eshop.db"),
		LogFile:    getenv("LOG_FILE", "./eshop.log"),
		CatalogAPI: getenv("CATALOG_API", "https://fakestoreapi.com/products"),
		AdminEmail: getenv("ADMIN_EMAIL", "admin@eshop.test"),
		AdminPass:  getenv("ADMIN_PASSWORD", "ChangeMe1!"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CATALOG_API=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.CatalogAPI)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
