package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"ticketboard/internal/models"
	"ticketboard/internal/repository"
	"ticketboard/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

const minPasswordLen = 6

type AuthService struct {
	users         repository.UserRepository
	sessionSecret string
	ttl           time.Duration
}

func NewAuthService(users repository.UserRepository, sessionSecret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret, ttl: ttl}
}

func invalid(msg string) error { return fmt.Errorf("%w: %s", ErrInvalidInput, msg) }

func validateProfile(username, email string) error {
	if username == "" {
		return invalid("username is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("a valid email is required")
	}
	return nil
}

// Register creates the user and signs them in.
func (a *AuthService) Register(ctx context.Context, in models.Registration) (*models.AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if err := validateProfile(username, email); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLen {
		return nil, invalid(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := a.users.Create(ctx, username, email, hash)
	if err != nil {
		return nil, err
	}
	return a.issue(u)
}

func (a *AuthService) Login(ctx context.Context, in models.Credentials) (*models.AuthResult, error) {
	u, hash, err := a.users.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(hash, in.Password) {
		return nil, ErrInvalidCredentials
	}
	return a.issue(u)
}

// Verify resolves a bearer token to its user.
func (a *AuthService) Verify(ctx context.Context, token string) (*models.User, error) {
	claims, err := utils.ParseJWT(a.sessionSecret, token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	u, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateProfile applies the set fields of upd to the user with id.
func (a *AuthService) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	u, err := a.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, repository.ErrNotFound
	}
	username, email := u.Username, u.Email
	if upd.Username != nil {
		username = strings.TrimSpace(*upd.Username)
	}
	if upd.Email != nil {
		email = strings.TrimSpace(*upd.Email)
	}
	if err := validateProfile(username, email); err != nil {
		return nil, err
	}
	return a.users.UpdateProfile(ctx, id, username, email)
}

func (a *AuthService) issue(u *models.User) (*models.AuthResult, error) {
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, u.Username, a.ttl)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{Token: tok, User: *u}, nil
}
