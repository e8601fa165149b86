package services

import (
	"sort"
	"strings"
	"time"

	"eshop/internal/domain"
)

// Stats is the dashboard headline block. Day and month buckets count orders by
// calendar date; an order whose date fails to parse is excluded from every
// bucket but still counted in TotalSales, TotalOrders and the status counts.
type Stats struct {
	Today       int     `json:"today"`
	Yesterday   int     `json:"yesterday"`
	ThisMonth   int     `json:"thisMonth"`
	LastMonth   int     `json:"lastMonth"`
	TotalSales  float64 `json:"totalSales"`
	TotalOrders int     `json:"totalOrders"`
	Pending     int     `json:"pending"`
	Processing  int     `json:"processing"`
	Delivered   int     `json:"delivered"`
}

type WeekPoint struct {
	Day    string  `json:"day"`  // short weekday label
	Date   string  `json:"date"` // YYYY-MM-DD
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type BestSeller struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func parseOrderDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ComputeStats aggregates the full order history relative to now.
func ComputeStats(orders []domain.Order, now time.Time) Stats {
	todayStr := now.Format("2006-01-02")
	yesterdayStr := now.AddDate(0, 0, -1).Format("2006-01-02")
	thisMonth, thisYear := now.Month(), now.Year()
	lastMonthT := now.AddDate(0, -1, 0)
	lastMonth, lastMonthYear := lastMonthT.Month(), lastMonthT.Year()

	var st Stats
	st.TotalOrders = len(orders)
	for _, o := range orders {
		st.TotalSales += o.TotalPrice

		switch strings.ToLower(o.OrderStatus) {
		case "pending":
			st.Pending++
		case "processing", "shipped": // legacy "shipped" counts as processing
			st.Processing++
		case "delivered":
			st.Delivered++
		}

		d, ok := parseOrderDate(o.Date)
		if !ok {
			continue
		}
		ds := d.Format("2006-01-02")
		if ds == todayStr {
			st.Today++
		}
		if ds == yesterdayStr {
			st.Yesterday++
		}
		if d.Month() == thisMonth && d.Year() == thisYear {
			st.ThisMonth++
		}
		if d.Month() == lastMonth && d.Year() == lastMonthYear {
			st.LastMonth++
		}
	}
	return st
}

// WeeklySeries returns one point per trailing day, oldest first, today last.
// Membership is string equality on the ISO date prefix.
func WeeklySeries(orders []domain.Order, now time.Time) []WeekPoint {
	points := make([]WeekPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		ds := d.Format("2006-01-02")
		p := WeekPoint{Day: d.Format("Mon"), Date: ds}
		for _, o := range orders {
			od, ok := parseOrderDate(o.Date)
			if !ok || od.Format("2006-01-02") != ds {
				continue
			}
			p.Sales += o.TotalPrice
			p.Orders++
		}
		points = append(points, p)
	}
	return points
}

// BestSellers ranks item titles by cumulative quantity across every order,
// descending. The sort is stable so ties keep first-encountered order.
func BestSellers(orders []domain.Order, topN int) []BestSeller {
	if topN <= 0 {
		topN = 6
	}
	counts := map[string]int{}
	var names []string
	for _, o := range orders {
		for _, it := range o.Items {
			name := it.Title
			if name == "" {
				name = "Unnamed"
			}
			if _, seen := counts[name]; !seen {
				names = append(names, name)
			}
			qty := it.Qty
			if qty < 1 {
				qty = 1
			}
			counts[name] += qty
		}
	}
	out := make([]BestSeller, 0, len(names))
	for _, n := range names {
		out = append(out, BestSeller{Name: n, Count: counts[n]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
