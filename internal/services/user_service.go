package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baharkarakas/blog-backend/internal/auth"
	"github.com/baharkarakas/blog-backend/internal/metrics"
	"github.com/baharkarakas/blog-backend/internal/models"
	repo "github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/baharkarakas/blog-backend/internal/validate"
)

type SignupInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type Session struct {
	User      models.User
	Token     string
	ExpiresAt time.Time
}

// UserService owns credentials: signup, login and token issuance.
type UserService struct {
	r  repo.Users
	tm *auth.TokenManager
}

func NewUserService(r repo.Users, tm *auth.TokenManager) *UserService {
	return &UserService{r: r, tm: tm}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (Session, error) {
	if err := validate.Collect(
		validate.Required("first_name", in.FirstName),
		validate.Required("last_name", in.LastName),
		validate.Required("email", in.Email),
		validate.Required("password", in.Password),
	); err != nil {
		return Session{}, err
	}
	u := models.User{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}
	if err := u.Validate(); err != nil {
		return Session{}, validate.Field("user", err.Error())
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash

	u, err = s.r.Create(ctx, u)
	if errors.Is(err, repo.ErrDuplicate) {
		return Session{}, fmt.Errorf("%w: email", ErrDuplicate)
	}
	if err != nil {
		return Session{}, err
	}
	return s.session(u)
}

// Login never reveals whether the email or the password was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.r.GetByEmail(ctx, models.NormalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		metrics.AuthFailures.WithLabelValues("bad_credentials").Inc()
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		metrics.AuthFailures.WithLabelValues("bad_credentials").Inc()
		return Session{}, ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *UserService) session(u models.User) (Session, error) {
	tok, exp, err := s.tm.Issue(u.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Token: tok, ExpiresAt: exp}, nil
}
