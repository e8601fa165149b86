package services_test

import (
	"testing"
	"time"

	"eshop/internal/domain"
	"eshop/internal/repos"
	"eshop/internal/services"
)

func checkoutForm(method string) services.CheckoutForm {
	f := services.CheckoutForm{
		FullName: "Asha Rao", Address: "12 Lake Road", City: "Pune",
		District: "Pune", State: "MH", Pincode: "411001", Country: "India",
		PaymentMethod: method,
	}
	switch method {
	case domain.PayCard:
		f.CardType = "Visa"
		f.CardNumber = "4111111111111111"
		f.CVV = "123"
		f.Expiry = "12/28"
	case domain.PayUPI:
		f.UPIID = "asha@okbank"
	}
	return f
}

func newOrderStack(t *testing.T) (*services.CartService, *services.OrderService, *repos.OrderRepo) {
	t.Helper()
	db := memdb(t)
	seedProduct(t, db, "P1", "Headphones", 100)
	seedProduct(t, db, "P2", "Mouse", 50)

	cartRepo := repos.NewCartRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	couponSvc := services.NewCouponService(repos.NewCouponRepo(db))

	return services.NewCartService(cartRepo, prodRepo),
		services.NewOrderService(cartRepo, prodRepo, orderRepo, couponSvc),
		orderRepo
}

func TestPlaceOrderFromCart(t *testing.T) {
	cart, orders, orderRepo := newOrderStack(t)
	sid := "sess-o1"

	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add(sid, "P2"); err != nil {
		t.Fatal(err)
	}

	o, err := orders.Place(sid, checkoutForm(domain.PayCOD))
	if err != nil {
		t.Fatal(err)
	}
	if o.TotalPrice != 150 {
		t.Fatalf("want total 150, got %v", o.TotalPrice)
	}
	if o.PaymentStatus != "Pending" {
		t.Fatalf("cod should stay Pending, got %q", o.PaymentStatus)
	}
	if o.OrderStatus != domain.StatusPending {
		t.Fatalf("new order should be pending, got %q", o.OrderStatus)
	}
	if len(o.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(o.Items))
	}

	// Delivery estimate is five days out.
	wantDelivery := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	if o.DeliveryDate != wantDelivery {
		t.Fatalf("want delivery %s, got %s", wantDelivery, o.DeliveryDate)
	}

	// Checkout empties the cart.
	cv, err := cart.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d lines", len(cv.Items))
	}

	// The stored order is addressable by row id and matches the snapshot.
	got, err := orderRepo.Get(o.RowID)
	if err != nil {
		t.Fatal(err)
	}
	if got.OrderID != o.OrderID || got.TotalPrice != o.TotalPrice {
		t.Fatalf("stored order differs: %+v vs %+v", got, o)
	}
}

func TestPlaceOrderCardIsPaid(t *testing.T) {
	cart, orders, _ := newOrderStack(t)
	sid := "sess-o2"
	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}

	o, err := orders.Place(sid, checkoutForm(domain.PayCard))
	if err != nil {
		t.Fatal(err)
	}
	if o.PaymentStatus != "Paid" {
		t.Fatalf("card payment should read Paid, got %q", o.PaymentStatus)
	}
	if o.CardLast4 != "1111" {
		t.Fatalf("want last four 1111, got %q", o.CardLast4)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	_, orders, _ := newOrderStack(t)
	if _, err := orders.Place("sess-o3", checkoutForm(domain.PayCOD)); err != services.ErrEmptyCart {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}

func TestPlaceOrderBuyNowLeavesCart(t *testing.T) {
	cart, orders, _ := newOrderStack(t)
	sid := "sess-o4"
	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}

	f := checkoutForm(domain.PayUPI)
	f.BuyNowProductID = "P2"
	f.BuyNowQty = 3
	o, err := orders.Place(sid, f)
	if err != nil {
		t.Fatal(err)
	}
	if len(o.Items) != 1 || o.Items[0].ProductID != "P2" || o.Items[0].Qty != 3 {
		t.Fatalf("buy-now items wrong: %+v", o.Items)
	}
	if o.TotalPrice != 150 {
		t.Fatalf("want 3x50=150, got %v", o.TotalPrice)
	}

	cv, _ := cart.View(sid)
	if len(cv.Items) != 1 {
		t.Fatalf("buy-now must not clear the cart, got %d lines", len(cv.Items))
	}
}

func TestPlaceOrderRejectsBadPayment(t *testing.T) {
	cart, orders, _ := newOrderStack(t)
	sid := "sess-o5"
	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}

	f := checkoutForm(domain.PayCard)
	f.CardNumber = "1234"
	if _, err := orders.Place(sid, f); err == nil {
		t.Fatal("short card number should fail")
	}

	f = checkoutForm(domain.PayUPI)
	f.UPIID = "not-a-upi"
	if _, err := orders.Place(sid, f); err == nil {
		t.Fatal("malformed upi id should fail")
	}

	f = checkoutForm(domain.PayCOD)
	f.Pincode = "00000"
	if _, err := orders.Place(sid, f); err == nil {
		t.Fatal("bad pincode should fail")
	}
}

func TestPlaceOrderFailureReleasesCouponUse(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "P1", "Headphones", 100)

	cartRepo := repos.NewCartRepo(db)
	prodRepo := repos.NewProductRepo(db)
	couponRepo := repos.NewCouponRepo(db)
	couponSvc := services.NewCouponService(couponRepo)
	cart := services.NewCartService(cartRepo, prodRepo)
	orders := services.NewOrderService(cartRepo, prodRepo, repos.NewOrderRepo(db), couponSvc)

	if err := couponSvc.Save(domain.Coupon{Code: "SAVE10", Type: "percentage", Value: 10, UsageLimit: 1}); err != nil {
		t.Fatal(err)
	}
	sid := "sess-o7"
	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}

	// Break the line-item insert so the order transaction rolls back.
	if _, err := db.Exec(`DROP TABLE order_items`); err != nil {
		t.Fatal(err)
	}
	f := checkoutForm(domain.PayCOD)
	f.CouponCode = "SAVE10"
	if _, err := orders.Place(sid, f); err == nil {
		t.Fatal("order insert should have failed")
	}

	// The redeemed use was put back.
	c, err := couponRepo.ByCode("SAVE10")
	if err != nil {
		t.Fatal(err)
	}
	if c.UsedCount != 0 {
		t.Fatalf("failed checkout should not consume a use, got used_count=%d", c.UsedCount)
	}
}

// Order numbers are random six-digit values with no uniqueness guarantee.
func TestNewOrderIDRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := services.NewOrderID()
		if id < 100000 || id > 999999 {
			t.Fatalf("order id out of range: %d", id)
		}
	}
}

func TestComputeInvoice(t *testing.T) {
	o := domain.Order{
		Discount: 10,
		Shipping: 5,
		Items: []domain.OrderItem{
			{UnitPrice: 40, Qty: 2},
			{UnitPrice: 20, Qty: 1},
		},
	}
	inv := services.ComputeInvoice(o)
	if inv.Subtotal != 100 {
		t.Fatalf("want subtotal 100, got %v", inv.Subtotal)
	}
	if inv.Tax != 16.20 {
		t.Fatalf("want tax 16.20 on the discounted base, got %v", inv.Tax)
	}
	if inv.GrandTotal != 111.20 {
		t.Fatalf("want grand total 111.20, got %v", inv.GrandTotal)
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		1.234:  1.23,
		1.236:  1.24,
		100:    100,
		-1.237: -1.24,
	}
	for in, want := range cases {
		if got := services.Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestOrderDateIsRFC3339(t *testing.T) {
	cart, orders, _ := newOrderStack(t)
	sid := "sess-o6"
	if err := cart.Add(sid, "P1"); err != nil {
		t.Fatal(err)
	}
	o, err := orders.Place(sid, checkoutForm(domain.PayCOD))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := time.Parse(time.RFC3339, o.Date); err != nil {
		t.Fatalf("order date %q not RFC3339: %v", o.Date, err)
	}
	if o.DeliveryDate < o.Date[:10] {
		t.Fatalf("delivery %q before order date %q", o.DeliveryDate, o.Date)
	}
}
