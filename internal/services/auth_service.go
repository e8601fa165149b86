package services

import (
	"errors"

	"eshop/internal/domain"
	"eshop/internal/repos"
	"eshop/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds      = errors.New("invalid credentials")
	ErrDuplicateUser = errors.New("an account with this email or mobile already exists")
)

// AuthService is the shopper gate: find by identifier (email or mobile),
// verify the secret, bind the session.
type AuthService struct {
	Users *repos.UserRepo
}

type SignupForm struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Mobile    string `json:"mobile" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// Signup rejects duplicates on email OR mobile without touching the stored
// user list.
func (s *AuthService) Signup(f SignupForm) (*domain.User, error) {
	email, ok := validate.Email(f.Email)
	if !ok {
		return nil, errors.New("email is invalid")
	}
	mobile, ok := validate.Mobile(f.Mobile)
	if !ok {
		return nil, errors.New("mobile must be a 10-digit number")
	}
	if !validate.Password(f.Password) {
		return nil, errors.New("password must be 8-64 characters with letters and digits")
	}
	exists, err := s.Users.Exists(email, mobile)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}
	h, err := bcrypt.GenerateFromPassword([]byte(f.Password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:        uuid.NewString(),
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     email,
		Mobile:    mobile,
		Hash:      string(h),
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Login(sid, identifier, password string) (*domain.User, error) {
	u, err := s.Users.ByIdentifier(identifier)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// Logout clears only the shopper flag; an admin session on the same browser
// stays intact.
func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
