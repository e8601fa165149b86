package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reMobile = regexp.MustCompile(`^[0-9]{10}$`)
	// Indian PIN code: 6 digits, first non-zero
	rePincode = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	reID      = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCoupon  = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)
	reUPI     = regexp.MustCompile(`^[A-Za-z0-9._-]{2,}@[A-Za-z]{2,}$`)
	reCard    = regexp.MustCompile(`^[0-9]{12,19}$`)
	reExpiry  = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Mobile(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reMobile.MatchString(s)
}

func Pincode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePincode.MatchString(s)
}

// ID validates a simple resource identifier (product/category/coupon ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func CouponCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reCoupon.MatchString(s)
}

func UPI(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUPI.MatchString(s)
}

func CardNumber(s string) (string, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	return s, reCard.MatchString(s)
}

func Expiry(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reExpiry.MatchString(s)
}

// Qty parses a quantity field, clamping to [1,50].
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Password enforces a minimal strength window for new credentials.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
			hasLetter = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// Slugify compacts a display name into a URL slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z' || '0' <= r && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == '\'' || r == '"' || r == '`':
			// dropped outright
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
