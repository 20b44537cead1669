package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/disenos/catalogo/internal/models"
	"github.com/disenos/catalogo/internal/repository"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong
// password. Callers must not distinguish the two cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Auth implements the admin login check. Passwords are compared as plain
// text, matching the stored records. This gate is deliberately weak and
// hardening it is out of scope.
type Auth struct {
	store repository.Storage
}

// NewAuth constructs an Auth using the provided storage backend.
func NewAuth(store repository.Storage) *Auth {
	return &Auth{store: store}
}

// Login returns the user when the username exists and the password
// matches; otherwise ErrInvalidCredentials. Storage failures pass
// through unchanged.
func (a *Auth) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.store.UserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new user account. A taken username surfaces as
// repository.ErrConflict.
func (a *Auth) Register(ctx context.Context, u *models.CreateUser) (*models.User, error) {
	return a.store.CreateUser(ctx, u)
}
