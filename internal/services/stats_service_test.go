package services_test

import (
	"testing"
	"time"

	"eshop/internal/domain"
	"eshop/internal/services"
)

func mkOrder(date, status string, total float64) domain.Order {
	return domain.Order{Date: date, OrderStatus: status, TotalPrice: total}
}

func TestComputeStatsBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		mkOrder("2026-03-15T09:00:00Z", domain.StatusPending, 100),
		mkOrder("2026-03-15", domain.StatusDelivered, 50),
		mkOrder("2026-03-14 18:30:00", domain.StatusProcessing, 25),
		mkOrder("2026-03-01T00:00:00Z", "shipped", 10),
		mkOrder("2026-02-20T00:00:00Z", domain.StatusCancelled, 5),
		mkOrder("not a date", domain.StatusPending, 7),
	}

	st := services.ComputeStats(orders, now)

	if st.Today != 2 {
		t.Fatalf("want 2 today, got %d", st.Today)
	}
	if st.Yesterday != 1 {
		t.Fatalf("want 1 yesterday, got %d", st.Yesterday)
	}
	if st.ThisMonth != 4 {
		t.Fatalf("want 4 this month, got %d", st.ThisMonth)
	}
	if st.LastMonth != 1 {
		t.Fatalf("want 1 last month, got %d", st.LastMonth)
	}

	// The unparseable order still counts toward totals and statuses.
	if st.TotalOrders != 6 {
		t.Fatalf("want 6 total orders, got %d", st.TotalOrders)
	}
	if st.TotalSales != 197 {
		t.Fatalf("want total sales 197, got %v", st.TotalSales)
	}
	if st.Pending != 2 {
		t.Fatalf("want 2 pending, got %d", st.Pending)
	}
	// Legacy "shipped" rolls into processing.
	if st.Processing != 2 {
		t.Fatalf("want 2 processing, got %d", st.Processing)
	}
	if st.Delivered != 1 {
		t.Fatalf("want 1 delivered, got %d", st.Delivered)
	}

	// Status counts never exceed the order count.
	if st.Pending+st.Processing+st.Delivered > st.TotalOrders {
		t.Fatal("status counts exceed total orders")
	}
}

func TestWeeklySeries(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		mkOrder("2026-03-15T09:00:00Z", domain.StatusPending, 100),
		mkOrder("2026-03-13T09:00:00Z", domain.StatusPending, 40),
		mkOrder("2026-03-13T21:00:00Z", domain.StatusPending, 10),
		mkOrder("2026-03-01T09:00:00Z", domain.StatusPending, 999), // outside the window
	}

	series := services.WeeklySeries(orders, now)
	if len(series) != 7 {
		t.Fatalf("want 7 points, got %d", len(series))
	}
	if series[0].Date != "2026-03-09" || series[6].Date != "2026-03-15" {
		t.Fatalf("window wrong: %s .. %s", series[0].Date, series[6].Date)
	}
	if series[6].Sales != 100 || series[6].Orders != 1 {
		t.Fatalf("today point wrong: %+v", series[6])
	}
	if series[4].Sales != 50 || series[4].Orders != 2 {
		t.Fatalf("two-days-ago point wrong: %+v", series[4])
	}
	for _, p := range series[:4] {
		if p.Orders != 0 {
			t.Fatalf("empty day should have zero orders: %+v", p)
		}
	}
}

func TestBestSellers(t *testing.T) {
	orders := []domain.Order{
		{Items: []domain.OrderItem{
			{Title: "Headphones", Qty: 2},
			{Title: "Mouse", Qty: 1},
		}},
		{Items: []domain.OrderItem{
			{Title: "Headphones", Qty: 3},
			{Title: "", Qty: 0}, // untitled, zero qty
		}},
	}

	best := services.BestSellers(orders, 0)
	if len(best) != 3 {
		t.Fatalf("want 3 entries, got %d", len(best))
	}
	if best[0].Name != "Headphones" || best[0].Count != 5 {
		t.Fatalf("want Headphones x5 first, got %+v", best[0])
	}
	// Missing titles read "Unnamed", zero quantities count as one.
	found := false
	for _, b := range best {
		if b.Name == "Unnamed" && b.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Unnamed x1 in %+v", best)
	}
}

func TestBestSellersTopNAndTies(t *testing.T) {
	var orders []domain.Order
	for _, title := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		orders = append(orders, domain.Order{Items: []domain.OrderItem{{Title: title, Qty: 1}}})
	}

	best := services.BestSellers(orders, 0)
	if len(best) != 6 {
		t.Fatalf("default cut is six, got %d", len(best))
	}
	// Stable sort: ties keep first-encountered order, so G falls off.
	if best[0].Name != "A" || best[5].Name != "F" {
		t.Fatalf("tie order wrong: %+v", best)
	}

	if got := services.BestSellers(orders, 2); len(got) != 2 {
		t.Fatalf("want 2 with topN=2, got %d", len(got))
	}
}
