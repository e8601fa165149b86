package handlers

import (
	"eshop/internal/repos"
	"eshop/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth      *services.AuthService
	AdminAuth *services.AdminAuthService

	AuthHandler          *AuthHandler
	CartHandler          *CartHandler
	CatalogHandler       *CatalogHandler
	OrderHandler         *OrderHandler
	AdminAuthHandler     *AdminAuthHandler
	AdminHandler         *AdminHandler
	AdminCatalogHandler  *AdminCatalogHandler
	AdminCategoryHandler *AdminCategoryHandler
	AdminCouponHandler   *AdminCouponHandler
	AdminStaffHandler    *AdminStaffHandler
	AdminCustomerHandler *AdminCustomerHandler
	AdminSettingsHandler *AdminSettingsHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	userRepo := repos.NewUserRepo(db)
	adminRepo := repos.NewAdminRepo(db)
	prodRepo := repos.NewProductRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	couponRepo := repos.NewCouponRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	adminAuthSvc := &services.AdminAuthService{Admins: adminRepo}
	catalogSvc := services.NewCatalogService(prodRepo, catRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	couponSvc := services.NewCouponService(couponRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, orderRepo, couponSvc)

	return &Deps{
		Auth:      authSvc,
		AdminAuth: adminAuthSvc,

		AuthHandler:          &AuthHandler{Auth: authSvc},
		CartHandler:          &CartHandler{Cart: cartSvc},
		CatalogHandler:       &CatalogHandler{Catalog: catalogSvc},
		OrderHandler:         &OrderHandler{Orders: orderRepo, Users: userRepo, Placing: orderSvc},
		AdminAuthHandler:     &AdminAuthHandler{Auth: adminAuthSvc},
		AdminHandler:         &AdminHandler{Orders: orderRepo},
		AdminCatalogHandler:  &AdminCatalogHandler{Catalog: catalogSvc},
		AdminCategoryHandler: &AdminCategoryHandler{Cats: catRepo},
		AdminCouponHandler:   &AdminCouponHandler{Coupons: couponSvc},
		AdminStaffHandler:    &AdminStaffHandler{Admins: adminRepo},
		AdminCustomerHandler: &AdminCustomerHandler{Users: userRepo, Orders: orderRepo},
		AdminSettingsHandler: &AdminSettingsHandler{Settings: settingsRepo},
	}
}
