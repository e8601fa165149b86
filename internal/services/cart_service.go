package services

import (
	"errors"

	"eshop/internal/repos"
)

var (
	ErrBadQty       = errors.New("quantity must be at least 1")
	ErrNotInCart    = errors.New("product is not in the cart")
	ErrUnavailable  = errors.New("product is not available")
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add puts one unit of the product in the cart; a second add of the same
// product increments the existing line instead of duplicating it.
func (s *CartService) Add(sessionID, productID string) error {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return ErrUnavailable
	}
	if p.Status != "Active" || !p.Published {
		return ErrUnavailable
	}
	return s.Carts.AddOne(sessionID, productID)
}

// UpdateQty sets a line's quantity. Values below 1 are rejected outright:
// removal is an explicit Remove call, never a side effect of a quantity edit.
func (s *CartService) UpdateQty(sessionID, productID string, qty int) error {
	if qty < 1 {
		return ErrBadQty
	}
	ok, err := s.Carts.SetQty(sessionID, productID, qty)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotInCart
	}
	return nil
}

func (s *CartService) Remove(sessionID, productID string) error {
	return s.Carts.Remove(sessionID, productID)
}

func (s *CartService) Clear(sessionID string) error {
	return s.Carts.Clear(sessionID)
}

type CartView struct {
	Items      []repos.CartLine `json:"items"`
	TotalItems int              `json:"totalItems"`
	TotalPrice float64          `json:"totalPrice"`
}

// View reads the cart joined with current product prices. Totals follow the
// live price field, not a snapshot taken at add time.
func (s *CartService) View(sessionID string) (CartView, error) {
	lines, err := s.Carts.Lines(sessionID)
	if err != nil {
		return CartView{}, err
	}
	cv := CartView{Items: lines}
	for _, l := range lines {
		cv.TotalItems += l.Qty
		cv.TotalPrice += l.Price * float64(l.Qty)
	}
	return cv, nil
}
