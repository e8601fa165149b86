package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"eshop/internal/repos"
	"eshop/internal/services"
)

func seedAdmin(t *testing.T, admins *repos.AdminRepo, asid string) {
	t.Helper()
	auth := &services.AdminAuthService{Admins: admins}
	u, err := auth.Register(services.AdminRegisterForm{
		Name: "Root", Email: "root@example.com", Password: "rootpass1", Role: "SuperAdmin",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := admins.BindSession(asid, u.ID); err != nil {
		t.Fatal(err)
	}
}

func adminReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "asid", Value: "asid-test"})
	return req
}

func TestAdminGuard(t *testing.T) {
	app, db := newTestApp(t)
	seedAdmin(t, repos.NewAdminRepo(db), "asid-test")

	// Anonymous -> 403.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/admin/dashboard", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("anonymous should be forbidden, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// A shopper session cookie is not an admin session.
	req := httptest.NewRequest("GET", "/api/v1/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sess-http"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("shopper cookie should be forbidden, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Admin session -> 200.
	resp, err = app.Test(adminReq("GET", "/api/v1/admin/dashboard", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAdminGuardBlocksUnpublished(t *testing.T) {
	app, db := newTestApp(t)
	admins := repos.NewAdminRepo(db)
	seedAdmin(t, admins, "asid-test")

	u, err := admins.ByEmail("root@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if err := admins.SetPublished(u.ID, false); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(adminReq("GET", "/api/v1/admin/dashboard", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unpublished admin should be forbidden, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAdminOrderStatusUpdate(t *testing.T) {
	app, db := newTestApp(t)
	seedAdmin(t, repos.NewAdminRepo(db), "asid-test")
	seedTestProduct(t, db, "P1", "Headphones", 100)

	// Place an order as a shopper.
	resp, err := app.Test(jsonReq("POST", "/api/v1/cart/items", `{"productId":"P1"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	checkout := `{"fullName":"Asha Rao","address":"12 Lake Road","city":"Pune",
	  "district":"Pune","state":"MH","pincode":"411001","country":"India",
	  "paymentMethod":"cod"}`
	resp, err = app.Test(jsonReq("POST", "/api/v1/orders", checkout))
	if err != nil {
		t.Fatal(err)
	}
	var placed struct {
		ID int64 `json:"id"`
	}
	decode(t, resp, &placed)

	// Admin moves it to Delivered.
	resp, err = app.Test(adminReq("PUT",
		"/api/v1/admin/orders/"+itoa(placed.ID)+"/status", `{"status":"Delivered"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status update: got %d", resp.StatusCode)
	}
	var updated struct {
		OrderStatus string `json:"orderStatus"`
	}
	decode(t, resp, &updated)
	if updated.OrderStatus != "Delivered" {
		t.Fatalf("want Delivered, got %q", updated.OrderStatus)
	}

	// Unknown status value is refused.
	resp, err = app.Test(adminReq("PUT",
		"/api/v1/admin/orders/"+itoa(placed.ID)+"/status", `{"status":"Teleported"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bogus status should 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAdminInvoiceRenders(t *testing.T) {
	app, db := newTestApp(t)
	seedAdmin(t, repos.NewAdminRepo(db), "asid-test")
	seedTestProduct(t, db, "P1", "Headphones", 100)

	resp, err := app.Test(jsonReq("POST", "/api/v1/cart/items", `{"productId":"P1"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	checkout := `{"fullName":"Asha Rao","address":"12 Lake Road","city":"Pune",
	  "district":"Pune","state":"MH","pincode":"411001","country":"India",
	  "paymentMethod":"cod"}`
	resp, err = app.Test(jsonReq("POST", "/api/v1/orders", checkout))
	if err != nil {
		t.Fatal(err)
	}
	var placed struct {
		ID int64 `json:"id"`
	}
	decode(t, resp, &placed)

	resp, err = app.Test(adminReq("GET", "/api/v1/admin/orders/"+itoa(placed.ID)+"/invoice", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("invoice render: got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	page := string(body)
	if !strings.Contains(page, "Invoice #") || !strings.Contains(page, "Headphones") {
		t.Fatalf("invoice page missing header or line item:\n%s", page)
	}
	// Subtotal 100, 18% tax, no discount or shipping.
	for _, want := range []string{"100.00", "18.00", "118.00"} {
		if !strings.Contains(page, want) {
			t.Fatalf("invoice page missing amount %s:\n%s", want, page)
		}
	}
}

func TestAdminDashboardShape(t *testing.T) {
	app, db := newTestApp(t)
	seedAdmin(t, repos.NewAdminRepo(db), "asid-test")

	resp, err := app.Test(adminReq("GET", "/api/v1/admin/dashboard", ""))
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Stats struct {
			TotalOrders int `json:"totalOrders"`
		} `json:"stats"`
		WeeklySales  []any `json:"weeklySales"`
		BestSellers  []any `json:"bestSellers"`
		RecentOrders []any `json:"recentOrders"`
	}
	decode(t, resp, &body)
	if len(body.WeeklySales) != 7 {
		t.Fatalf("want a 7-point weekly series, got %d", len(body.WeeklySales))
	}
	if body.Stats.TotalOrders != 0 || len(body.RecentOrders) != 0 {
		t.Fatalf("fresh store should have no orders: %+v", body)
	}
}

func TestAdminProductCRUDAndCSV(t *testing.T) {
	app, db := newTestApp(t)
	seedAdmin(t, repos.NewAdminRepo(db), "asid-test")

	resp, err := app.Test(adminReq("POST", "/api/v1/admin/products",
		`{"title":"Kettle","price":35,"category":"Kitchen","published":true}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got %d", resp.StatusCode)
	}
	var created struct {
		ID     string `json:"id"`
		Slug   string `json:"slug"`
		Status string `json:"status"`
	}
	decode(t, resp, &created)
	if created.ID == "" || created.Slug != "kettle" || created.Status != "Active" {
		t.Fatalf("create defaults wrong: %+v", created)
	}

	// Toggle unpublishes it from the storefront.
	resp, err = app.Test(adminReq("PUT", "/api/v1/admin/products/"+created.ID+"/published", ""))
	if err != nil {
		t.Fatal(err)
	}
	var pub struct {
		Published bool `json:"published"`
	}
	decode(t, resp, &pub)
	if pub.Published {
		t.Fatal("toggle should have unpublished the product")
	}

	// Export contains the row; reimport round-trips it.
	resp, err = app.Test(adminReq("GET", "/api/v1/admin/products/export", ""))
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("want text/csv, got %q", got)
	}
	resp.Body.Close()

	resp, err = app.Test(adminReq("POST", "/api/v1/admin/products/import",
		"title,price\nToaster,20\n"))
	if err != nil {
		t.Fatal(err)
	}
	var imp struct {
		Imported int `json:"imported"`
	}
	decode(t, resp, &imp)
	if imp.Imported != 1 {
		t.Fatalf("want 1 imported, got %d", imp.Imported)
	}
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
