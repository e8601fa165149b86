package services

import (
	"database/sql"
	"errors"
	"time"

	"eshop/internal/domain"
	"eshop/internal/repos"
	"eshop/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAdminInactive  = errors.New("account is inactive, contact an administrator")
	ErrDuplicateAdmin = errors.New("an admin account with this email already exists")
)

// AdminAuthService is the back-office gate. It runs against its own account
// store and its own session cookie; logging in or out here never touches a
// shopper session.
type AdminAuthService struct {
	Admins *repos.AdminRepo
}

type AdminRegisterForm struct {
	Name     string `json:"name" validate:"required"`
	Contact  string `json:"contact"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

func (s *AdminAuthService) Register(f AdminRegisterForm) (*domain.AdminUser, error) {
	email, ok := validate.Email(f.Email)
	if !ok {
		return nil, errors.New("email is invalid")
	}
	if !domain.ValidAdminRole(f.Role) {
		return nil, errors.New("unknown role")
	}
	if !validate.Password(f.Password) {
		return nil, errors.New("password must be 8-64 characters with letters and digits")
	}
	exists, err := s.Admins.Exists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateAdmin
	}
	h, err := bcrypt.GenerateFromPassword([]byte(f.Password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.AdminUser{
		ID:        uuid.NewString(),
		Name:      f.Name,
		Contact:   f.Contact,
		Email:     email,
		Role:      f.Role,
		Hash:      string(h),
		Published: true,
	}
	if err := s.Admins.Create(u); err != nil {
		return nil, err
	}
	if err := s.ensureStaff(u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AdminAuthService) Login(asid, email, password string) (*domain.AdminUser, error) {
	u, err := s.Admins.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if !u.Published {
		return nil, ErrAdminInactive
	}
	// Every admin who has ever logged in appears in the staff directory.
	if err := s.ensureStaff(*u); err != nil {
		return nil, err
	}
	if err := s.Admins.BindSession(asid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AdminAuthService) Logout(asid string) error {
	return s.Admins.UnbindSession(asid)
}

func (s *AdminAuthService) CurrentAdmin(asid string) (*domain.AdminUser, error) {
	return s.Admins.SessionAdmin(asid)
}

// ensureStaff derives a staff record for the account unless one already
// exists for that email.
func (s *AdminAuthService) ensureStaff(u domain.AdminUser) error {
	_, err := s.Admins.StaffByEmail(u.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return s.Admins.CreateStaff(domain.StaffRecord{
		ID:        uuid.NewString(),
		Name:      u.Name,
		Contact:   u.Contact,
		Email:     u.Email,
		Role:      u.Role,
		Status:    "Active",
		JoinDate:  time.Now().Format("2006-01-02"),
		Published: true,
	})
}
