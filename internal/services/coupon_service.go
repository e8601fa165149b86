package services

import (
	"database/sql"
	"errors"
	"math/rand"
	"strings"
	"time"

	"eshop/internal/domain"
	"eshop/internal/repos"
	"eshop/internal/validate"

	"github.com/google/uuid"
)

var (
	ErrCouponNotFound  = errors.New("coupon code not found")
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrCouponExpired   = errors.New("coupon is outside its validity window")
	ErrCouponMinOrder  = errors.New("order total is below the coupon minimum")
	ErrCouponScope     = errors.New("coupon does not apply to these products")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
	ErrDuplicateCode   = errors.New("coupon code already exists")
)

type CouponService struct {
	Repo *repos.CouponRepo

	now func() time.Time
}

func NewCouponService(repo *repos.CouponRepo) *CouponService {
	return &CouponService{Repo: repo, now: time.Now}
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode produces a random A-Z0-9 coupon code.
func GenerateCode(length int) string {
	if length < 4 {
		length = 8
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

func (s *CouponService) List() ([]domain.Coupon, error) { return s.Repo.List() }

func (s *CouponService) Save(c domain.Coupon) error {
	code, ok := validate.CouponCode(c.Code)
	if !ok {
		return errors.New("coupon code must be 4-12 characters A-Z 0-9")
	}
	c.Code = code
	if c.Value <= 0 {
		return errors.New("discount value must be greater than zero")
	}
	if c.Type != "percentage" && c.Type != "fixed" {
		return errors.New("coupon type must be percentage or fixed")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	dup, err := s.Repo.CodeExists(c.Code, c.ID)
	if err != nil {
		return err
	}
	if dup {
		return ErrDuplicateCode
	}
	if c.UsageLimit < 1 {
		c.UsageLimit = 1
	}
	if c.Status == "" {
		c.Status = "Active"
	}
	if c.ApplyScope == "" {
		c.ApplyScope = "store"
	}
	return s.Repo.Upsert(c)
}

func (s *CouponService) ToggleStatus(id string) (string, error) {
	c, err := s.Repo.Get(id)
	if err != nil {
		return "", err
	}
	next := "Active"
	if c.Status == "Active" {
		next = "Inactive"
	}
	return next, s.Repo.SetStatus(id, next)
}

func (s *CouponService) Delete(id string) error { return s.Repo.Delete(id) }

// Redeem validates the code against the subtotal and the cart's categories and
// returns the discount amount plus the canonical code. A successful redeem
// consumes one use.
func (s *CouponService) Redeem(code string, subtotal float64, categories []string) (float64, string, error) {
	c, err := s.Repo.ByCode(code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrCouponNotFound
		}
		return 0, "", err
	}
	if c.Status != "Active" {
		return 0, "", ErrCouponInactive
	}

	today := s.now().Format("2006-01-02")
	if c.StartDate != "" && today < c.StartDate {
		return 0, "", ErrCouponExpired
	}
	if c.EndDate != "" && today > c.EndDate {
		return 0, "", ErrCouponExpired
	}
	if subtotal < c.MinOrder {
		return 0, "", ErrCouponMinOrder
	}
	if c.ApplyScope == "categories" && !intersects(c.CategoryList(), categories) {
		return 0, "", ErrCouponScope
	}

	ok, err := s.Repo.IncrementUsage(c.ID)
	if err != nil {
		return 0, "", err
	}
	if !ok {
		return 0, "", ErrCouponExhausted
	}

	var discount float64
	if c.Type == "percentage" {
		discount = Round2(subtotal * c.Value / 100)
	} else {
		discount = c.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount, c.Code, nil
}

// Release puts back one use of code after a checkout that redeemed it but
// never persisted an order.
func (s *CouponService) Release(code string) error {
	c, err := s.Repo.ByCode(code)
	if err != nil {
		return err
	}
	return s.Repo.DecrementUsage(c.ID)
}

func intersects(a, b []string) bool {
	set := map[string]struct{}{}
	for _, v := range a {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[strings.ToLower(strings.TrimSpace(v))]; ok {
			return true
		}
	}
	return false
}
