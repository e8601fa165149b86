package services_test

import (
	"testing"
	"time"

	"eshop/internal/domain"
	"eshop/internal/repos"
	"eshop/internal/services"
)

func newCouponService(t *testing.T) *services.CouponService {
	t.Helper()
	return services.NewCouponService(repos.NewCouponRepo(memdb(t)))
}

func seedCoupon(t *testing.T, svc *services.CouponService, c domain.Coupon) {
	t.Helper()
	if c.StartDate == "" {
		c.StartDate = "2020-01-01"
	}
	if c.EndDate == "" {
		c.EndDate = time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	}
	if err := svc.Save(c); err != nil {
		t.Fatal(err)
	}
}

func TestCouponSaveValidation(t *testing.T) {
	svc := newCouponService(t)

	if err := svc.Save(domain.Coupon{Code: "ok", Type: "percentage", Value: 10}); err == nil {
		t.Fatal("lowercase code should fail")
	}
	if err := svc.Save(domain.Coupon{Code: "SAVE10", Type: "percentage", Value: 0}); err == nil {
		t.Fatal("zero value should fail")
	}
	if err := svc.Save(domain.Coupon{Code: "SAVE10", Type: "bogus", Value: 10}); err == nil {
		t.Fatal("unknown type should fail")
	}

	seedCoupon(t, svc, domain.Coupon{Code: "SAVE10", Type: "percentage", Value: 10})
	if err := svc.Save(domain.Coupon{Code: "SAVE10", Type: "fixed", Value: 5}); err != services.ErrDuplicateCode {
		t.Fatalf("want ErrDuplicateCode, got %v", err)
	}
}

func TestRedeemPercentage(t *testing.T) {
	svc := newCouponService(t)
	seedCoupon(t, svc, domain.Coupon{Code: "SAVE10", Type: "percentage", Value: 10, UsageLimit: 5})

	discount, code, err := svc.Redeem("save10", 200, nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != "SAVE10" {
		t.Fatalf("want canonical code SAVE10, got %q", code)
	}
	if discount != 20 {
		t.Fatalf("want 10%% of 200 = 20, got %v", discount)
	}
}

func TestRedeemFixedCappedAtSubtotal(t *testing.T) {
	svc := newCouponService(t)
	seedCoupon(t, svc, domain.Coupon{Code: "FLAT50", Type: "fixed", Value: 50, UsageLimit: 5})

	discount, _, err := svc.Redeem("FLAT50", 30, nil)
	if err != nil {
		t.Fatal(err)
	}
	if discount != 30 {
		t.Fatalf("fixed discount must not exceed the subtotal, got %v", discount)
	}
}

func TestRedeemFailures(t *testing.T) {
	svc := newCouponService(t)
	seedCoupon(t, svc, domain.Coupon{
		Code: "PICKY", Type: "fixed", Value: 5, MinOrder: 100, UsageLimit: 5,
		ApplyScope: "categories", SelectedCategories: "Electronics",
	})

	if _, _, err := svc.Redeem("NOSUCH", 200, nil); err != services.ErrCouponNotFound {
		t.Fatalf("want ErrCouponNotFound, got %v", err)
	}
	if _, _, err := svc.Redeem("PICKY", 50, []string{"Electronics"}); err != services.ErrCouponMinOrder {
		t.Fatalf("want ErrCouponMinOrder, got %v", err)
	}
	if _, _, err := svc.Redeem("PICKY", 200, []string{"Books"}); err != services.ErrCouponScope {
		t.Fatalf("want ErrCouponScope, got %v", err)
	}
	if _, _, err := svc.Redeem("PICKY", 200, []string{"Electronics"}); err != nil {
		t.Fatalf("matching category should redeem, got %v", err)
	}
}

func TestRedeemInactiveAndExpired(t *testing.T) {
	svc := newCouponService(t)
	seedCoupon(t, svc, domain.Coupon{Code: "OFF5", Type: "fixed", Value: 5, Status: "Inactive", UsageLimit: 5})
	if _, _, err := svc.Redeem("OFF5", 100, nil); err != services.ErrCouponInactive {
		t.Fatalf("want ErrCouponInactive, got %v", err)
	}

	if err := svc.Save(domain.Coupon{
		Code: "STALE", Type: "fixed", Value: 5, UsageLimit: 5,
		StartDate: "2020-01-01", EndDate: "2020-12-31",
	}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Redeem("STALE", 100, nil); err != services.ErrCouponExpired {
		t.Fatalf("want ErrCouponExpired, got %v", err)
	}
}

func TestRedeemConsumesUsage(t *testing.T) {
	svc := newCouponService(t)
	seedCoupon(t, svc, domain.Coupon{Code: "ONCE", Type: "fixed", Value: 5, UsageLimit: 1})

	if _, _, err := svc.Redeem("ONCE", 100, nil); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Redeem("ONCE", 100, nil); err != services.ErrCouponExhausted {
		t.Fatalf("second use should exhaust, got %v", err)
	}
}

func TestGenerateCode(t *testing.T) {
	code := services.GenerateCode(8)
	if len(code) != 8 {
		t.Fatalf("want 8 chars, got %q", code)
	}
	for _, r := range code {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			t.Fatalf("unexpected character %q in %q", r, code)
		}
	}
	// Length below the minimum falls back to the default.
	if got := services.GenerateCode(2); len(got) != 8 {
		t.Fatalf("short length should fall back to 8, got %d", len(got))
	}
}
