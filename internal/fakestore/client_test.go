package fakestore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
		  {"id":1,"title":"Backpack","price":109.95,"category":"men's clothing","image":"img1"},
		  {"id":2,"title":"","price":22.3,"category":""}
		]`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 products, got %d", len(got))
	}

	p := got[0]
	if p.ID != "1" || p.Title != "Backpack" || p.Price != 109.95 {
		t.Fatalf("first product wrong: %+v", p)
	}
	if p.SalePrice != p.Price {
		t.Fatal("sale price should default to price")
	}
	if p.Stock < 10 || p.Stock > 50 {
		t.Fatalf("stock out of the 10-50 window: %d", p.Stock)
	}
	if p.Status != "Active" || !p.Published {
		t.Fatalf("seeded products should be live: %+v", p)
	}

	// Blank fields get placeholders.
	if got[1].Title != "Untitled Product" || got[1].Category != "Uncategorized" {
		t.Fatalf("placeholders missing: %+v", got[1])
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Fetch(context.Background()); err == nil {
		t.Fatal("non-200 should surface an error")
	}
}
