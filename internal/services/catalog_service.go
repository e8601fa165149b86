package services

import (
	"database/sql"
	"errors"
	"math"
	"strings"

	"eshop/internal/domain"
	"eshop/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
	Cats  *repos.CategoryRepo
}

func NewCatalogService(prods *repos.ProductRepo, cats *repos.CategoryRepo) *CatalogService {
	return &CatalogService{Prods: prods, Cats: cats}
}

// Filter narrows a product list. Search is a case-insensitive substring match
// on the title; Category must match exactly when set; the price range is
// inclusive and defaults to [0, +Inf).
type Filter struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
}

func ApplyFilter(products []domain.Product, f Filter) []domain.Product {
	max := f.MaxPrice
	if max <= 0 {
		max = math.Inf(1)
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if p.Price < f.MinPrice || p.Price > max {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *CatalogService) List(f Filter) ([]domain.Product, error) {
	all, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	return ApplyFilter(all, f), nil
}

func (s *CatalogService) ListPublished(f Filter) ([]domain.Product, error) {
	all, err := s.Prods.ListPublished()
	if err != nil {
		return nil, err
	}
	return ApplyFilter(all, f), nil
}

func (s *CatalogService) ListLatest() ([]domain.Product, error) {
	return s.Prods.ListLatest()
}

// CategoryNames lists the distinct category names present on published
// products, for the storefront filter bar.
func (s *CatalogService) CategoryNames() ([]string, error) {
	return s.Prods.Categories()
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Save(p domain.Product) error {
	if p.ID == "" || p.Title == "" {
		return errors.New("product id and title are required")
	}
	if p.Price < 0 {
		return errors.New("price must not be negative")
	}
	if p.Status == "" {
		p.Status = "Active"
	}
	return s.Prods.Upsert(p)
}

func (s *CatalogService) Delete(id string) error {
	return s.Prods.Delete(id)
}

// BulkDelete removes the selected id set and reports how many rows went away.
func (s *CatalogService) BulkDelete(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.New("no products selected")
	}
	return s.Prods.DeleteMany(ids)
}

func (s *CatalogService) ToggleStatus(id string) (string, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return "", err
	}
	next := "Active"
	if p.Status == "Active" {
		next = "Inactive"
	}
	return next, s.Prods.SetStatus(id, next)
}

func (s *CatalogService) TogglePublished(id string) (bool, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return false, err
	}
	return !p.Published, s.Prods.SetPublished(id, !p.Published)
}

func (s *CatalogService) ToggleLatest(id string) (bool, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return false, err
	}
	return !p.Latest, s.Prods.SetLatest(id, !p.Latest)
}

// Availability maps the stock count to the storefront badge.
func (s *CatalogService) Availability(id string) (domain.Availability, error) {
	qty, err := s.Prods.Stock(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Availability{Status: "OUT_OF_STOCK"}, nil
		}
		return domain.Availability{}, err
	}
	status := "OUT_OF_STOCK"
	switch {
	case qty >= 5:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}, nil
}
