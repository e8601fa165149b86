package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"eshop/internal/domain"
	"eshop/internal/repos"
	"eshop/internal/validate"
)

const (
	taxRate      = 0.18
	deliveryDays = 5
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutForm is the checkout submission: the full shipping address plus one
// payment method and its method-specific fields.
type CheckoutForm struct {
	FullName string `json:"fullName" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	District string `json:"district" validate:"required"`
	State    string `json:"state" validate:"required"`
	Pincode  string `json:"pincode" validate:"required"`
	Country  string `json:"country" validate:"required"`

	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=card upi cod"`
	CardType      string `json:"cardType"`
	CardNumber    string `json:"cardNumber"`
	CVV           string `json:"cvv"`
	Expiry        string `json:"expiry"`
	UPIID         string `json:"upiId"`

	CouponCode string `json:"couponCode"`

	// BuyNow bypasses the cart: the order holds just this product and the
	// cart is left untouched.
	BuyNowProductID string `json:"buyNowProductId"`
	BuyNowQty       int    `json:"buyNowQty"`
}

type OrderService struct {
	Carts   *repos.CartRepo
	Prods   *repos.ProductRepo
	Orders  *repos.OrderRepo
	Coupons *CouponService

	// now is swappable for tests.
	now func() time.Time
}

func NewOrderService(carts *repos.CartRepo, prods *repos.ProductRepo, orders *repos.OrderRepo, coupons *CouponService) *OrderService {
	return &OrderService{Carts: carts, Prods: prods, Orders: orders, Coupons: coupons, now: time.Now}
}

// NewOrderID returns a random 6-digit order number in [100000, 999999]. There
// is deliberately no uniqueness check; collisions are a known low-probability
// defect inherited from the system being reimplemented.
func NewOrderID() int {
	return 100000 + rand.Intn(900000)
}

func (f CheckoutForm) validatePayment() error {
	switch f.PaymentMethod {
	case domain.PayCard:
		if f.CardType == "" {
			return errors.New("card type is required")
		}
		if _, ok := validate.CardNumber(f.CardNumber); !ok {
			return errors.New("card number is invalid")
		}
		if f.CVV == "" {
			return errors.New("cvv is required")
		}
		if _, ok := validate.Expiry(f.Expiry); !ok {
			return errors.New("card expiry is invalid")
		}
	case domain.PayUPI:
		if _, ok := validate.UPI(f.UPIID); !ok {
			return errors.New("upi id is invalid")
		}
	case domain.PayCOD:
		// nothing further
	default:
		return fmt.Errorf("unknown payment method %q", f.PaymentMethod)
	}
	return nil
}

// paymentStatus: complete card or upi details mean the order is treated as
// paid immediately; cash on delivery stays pending.
func (f CheckoutForm) paymentStatus() string {
	switch f.PaymentMethod {
	case domain.PayCard, domain.PayUPI:
		return "Paid"
	default:
		return "Pending"
	}
}

// Place turns the checkout form plus the cart (or a buy-now line) into an
// immutable order, persists it, and clears the cart unless this was buy-now.
func (s *OrderService) Place(sessionID string, f CheckoutForm) (domain.Order, error) {
	if err := f.validatePayment(); err != nil {
		return domain.Order{}, err
	}
	if _, ok := validate.Pincode(f.Pincode); !ok {
		return domain.Order{}, errors.New("pincode is invalid")
	}

	items, categories, err := s.resolveItems(sessionID, f)
	if err != nil {
		return domain.Order{}, err
	}

	subtotal := 0.0
	for _, it := range items {
		subtotal += it.UnitPrice * float64(it.Qty)
	}

	var discount float64
	var couponCode string
	if f.CouponCode != "" {
		d, c, err := s.Coupons.Redeem(f.CouponCode, subtotal, categories)
		if err != nil {
			return domain.Order{}, err
		}
		discount, couponCode = d, c
	}

	now := s.now()
	cardLast4 := ""
	if f.PaymentMethod == domain.PayCard && len(f.CardNumber) >= 4 {
		cardLast4 = f.CardNumber[len(f.CardNumber)-4:]
	}

	o := domain.Order{
		OrderID:       NewOrderID(),
		SessionID:     sessionID,
		FullName:      f.FullName,
		Address:       f.Address,
		City:          f.City,
		District:      f.District,
		State:         f.State,
		Pincode:       f.Pincode,
		Country:       f.Country,
		PaymentMethod: f.PaymentMethod,
		PaymentStatus: f.paymentStatus(),
		CardType:      f.CardType,
		CardLast4:     cardLast4,
		UPIID:         f.UPIID,
		CouponCode:    couponCode,
		Discount:      discount,
		TotalPrice:    Round2(subtotal - discount),
		Date:          now.Format(time.RFC3339),
		DeliveryDate:  now.AddDate(0, 0, deliveryDays).Format("2006-01-02"),
		OrderStatus:   domain.StatusPending,
		Items:         items,
	}

	rowID, err := s.Orders.Create(o)
	if err != nil {
		if couponCode != "" {
			// The redeem above consumed a use; a failed insert gives it back.
			_ = s.Coupons.Release(couponCode)
		}
		return domain.Order{}, err
	}
	o.RowID = rowID

	if f.BuyNowProductID == "" {
		// Best effort: a failed clear leaves a stale cart, not a broken order.
		_ = s.Carts.Clear(sessionID)
	}
	return o, nil
}

func (s *OrderService) resolveItems(sessionID string, f CheckoutForm) ([]domain.OrderItem, []string, error) {
	if f.BuyNowProductID != "" {
		p, err := s.Prods.Get(f.BuyNowProductID)
		if err != nil {
			return nil, nil, ErrUnavailable
		}
		qty := f.BuyNowQty
		if qty < 1 {
			qty = 1
		}
		item := domain.OrderItem{
			ProductID: p.ID, Title: p.Title, Image: p.Image, UnitPrice: p.Price, Qty: qty,
		}
		return []domain.OrderItem{item}, []string{p.Category}, nil
	}

	lines, err := s.Carts.Lines(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, ErrEmptyCart
	}
	items := make([]domain.OrderItem, 0, len(lines))
	cats := make([]string, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID, Title: l.Title, Image: l.Image, UnitPrice: l.Price, Qty: l.Qty,
		})
		cats = append(cats, l.Category)
	}
	return items, cats, nil
}

// Round2 rounds half-up to two decimals on the already-computed float.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Invoice is the shared receipt math for the storefront receipt and the admin
// invoice view.
type Invoice struct {
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Tax        float64 `json:"tax"`
	Shipping   float64 `json:"shipping"`
	GrandTotal float64 `json:"grandTotal"`
}

func ComputeInvoice(o domain.Order) Invoice {
	subtotal := 0.0
	for _, it := range o.Items {
		subtotal += it.UnitPrice * float64(it.Qty)
	}
	tax := Round2((subtotal - o.Discount) * taxRate)
	return Invoice{
		Subtotal:   subtotal,
		Discount:   o.Discount,
		Tax:        tax,
		Shipping:   o.Shipping,
		GrandTotal: Round2(subtotal - o.Discount + tax + o.Shipping),
	}
}
