package validate

import "testing"

func TestEmail(t *testing.T) {
	if _, ok := Email(" asha@example.com "); !ok {
		t.Fatal("trimmed valid email should pass")
	}
	for _, bad := range []string{"", "plain", "a@b", "@example.com", "a b@example.com"} {
		if _, ok := Email(bad); ok {
			t.Errorf("%q should fail", bad)
		}
	}
}

func TestMobileAndPincode(t *testing.T) {
	if _, ok := Mobile("9876543210"); !ok {
		t.Fatal("10 digits should pass")
	}
	if _, ok := Mobile("12345"); ok {
		t.Fatal("short mobile should fail")
	}
	if _, ok := Pincode("411001"); !ok {
		t.Fatal("valid pincode should pass")
	}
	if _, ok := Pincode("011001"); ok {
		t.Fatal("leading zero pincode should fail")
	}
}

func TestCouponCodeCanonicalizes(t *testing.T) {
	code, ok := CouponCode(" save10 ")
	if !ok || code != "SAVE10" {
		t.Fatalf("want SAVE10, got %q ok=%v", code, ok)
	}
	if _, ok := CouponCode("AB"); ok {
		t.Fatal("too-short code should fail")
	}
	if _, ok := CouponCode("HAS-DASH"); ok {
		t.Fatal("punctuation should fail")
	}
}

func TestPaymentFields(t *testing.T) {
	if n, ok := CardNumber("4111 1111 1111 1111"); !ok || n != "4111111111111111" {
		t.Fatalf("spaced card number should normalize, got %q ok=%v", n, ok)
	}
	if _, ok := CardNumber("1234"); ok {
		t.Fatal("short card number should fail")
	}
	if _, ok := Expiry("12/28"); !ok {
		t.Fatal("MM/YY should pass")
	}
	if _, ok := Expiry("13/28"); ok {
		t.Fatal("month 13 should fail")
	}
	if _, ok := UPI("asha@okbank"); !ok {
		t.Fatal("valid upi should pass")
	}
	if _, ok := UPI("nobody"); ok {
		t.Fatal("missing handle should fail")
	}
}

func TestQtyClamps(t *testing.T) {
	cases := map[string]int{"": 1, "x": 1, "0": 1, "-3": 1, "7": 7, "50": 50, "51": 50}
	for in, want := range cases {
		if got := Qty(in); got != want {
			t.Errorf("Qty(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestPassword(t *testing.T) {
	if !Password("sunny1234") {
		t.Fatal("letters+digits should pass")
	}
	for _, bad := range []string{"short1", "allletters", "123456789"} {
		if Password(bad) {
			t.Errorf("%q should fail", bad)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Blue Headphones":   "blue-headphones",
		"  Kids' Toys!  ":   "kids-toys",
		"A --- B":           "a-b",
		"Ünïcode Périphery": "n-code-p-riphery",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
