package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"eshop/internal/domain"
	"eshop/internal/repos"
	"eshop/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedProduct(t *testing.T, db *sqlx.DB, id, title string, price float64) {
	t.Helper()
	p := domain.Product{
		ID: id, Title: title, Category: "Electronics", Price: price, SalePrice: price,
		Stock: 10, Status: "Active", Published: true, DateAdded: "2026-01-01",
	}
	if err := repos.NewProductRepo(db).Upsert(p); err != nil {
		t.Fatal(err)
	}
}

func TestCartAddMergesDuplicates(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "P1", "Headphones", 10)

	cart := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
	sid := "sess-1"

	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}

	cv, err := cart.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 {
		t.Fatalf("want one merged line, got %d", len(cv.Items))
	}
	if cv.Items[0].Qty != 2 {
		t.Fatalf("want qty 2, got %d", cv.Items[0].Qty)
	}
}

func TestCartTotalsAndClear(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "P1", "Headphones", 10)
	seedProduct(t, db, "P2", "Mouse", 5)

	cart := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
	sid := "sess-2"

	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add(sid, "P2"); err != nil {
		t.Fatal(err)
	}

	cv, err := cart.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if cv.TotalItems != 3 {
		t.Fatalf("want 3 total items, got %d", cv.TotalItems)
	}
	if cv.TotalPrice != 25 {
		t.Fatalf("want total 25, got %v", cv.TotalPrice)
	}

	if err := cart.Clear(sid); err != nil {
		t.Fatal(err)
	}
	cv, err = cart.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 || cv.TotalPrice != 0 {
		t.Fatalf("cart should be empty after clear: %+v", cv)
	}
}

// Line subtotals follow the live catalog price, not the price at add time.
func TestCartTotalTracksCurrentPrice(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "P1", "Headphones", 10)

	prods := repos.NewProductRepo(db)
	cart := services.NewCartService(repos.NewCartRepo(db), prods)
	sid := "sess-3"

	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}
	seedProduct(t, db, "P1", "Headphones", 12) // price edit after add

	cv, err := cart.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if cv.TotalPrice != 12 {
		t.Fatalf("want total 12 at the new price, got %v", cv.TotalPrice)
	}
}

func TestCartQtyRules(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "P1", "Headphones", 10)

	cart := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
	sid := "sess-4"

	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}
	if err := cart.UpdateQty(sid, "P1", 0); err != services.ErrBadQty {
		t.Fatalf("want ErrBadQty for qty 0, got %v", err)
	}
	if err := cart.UpdateQty(sid, "P1", 7); err != nil {
		t.Fatal(err)
	}
	if err := cart.UpdateQty(sid, "P9", 2); err != services.ErrNotInCart {
		t.Fatalf("want ErrNotInCart for unknown line, got %v", err)
	}

	cv, _ := cart.View(sid)
	if cv.Items[0].Qty != 7 {
		t.Fatalf("want qty 7, got %d", cv.Items[0].Qty)
	}
}

func TestCartRejectsUnavailableProduct(t *testing.T) {
	db := memdb(t)
	p := domain.Product{
		ID: "P-off", Title: "Retired", Price: 9, SalePrice: 9,
		Status: "Inactive", Published: true,
	}
	if err := repos.NewProductRepo(db).Upsert(p); err != nil {
		t.Fatal(err)
	}

	cart := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
	if err := cart.Add("sess-5", "P-off"); err != services.ErrUnavailable {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
	if err := cart.Add("sess-5", "no-such-id"); err != services.ErrUnavailable {
		t.Fatalf("want ErrUnavailable for missing product, got %v", err)
	}
}
