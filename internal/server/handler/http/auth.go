package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/disenos/catalogo/internal/models"
	"github.com/disenos/catalogo/internal/repository"
	"github.com/disenos/catalogo/internal/service"
)

// AuthService defines the authentication operations required by the HTTP
// handlers.
type AuthService interface {
	// Login checks the credentials and returns the matching user.
	Login(ctx context.Context, username, password string) (*models.User, error)
	// Register creates a new user account.
	Register(ctx context.Context, u *models.CreateUser) (*models.User, error)
}

// AuthHandler handles HTTP requests for admin login and user registration.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// LoginRequest represents the JSON payload for admin login.
type LoginRequest struct {
	// Username is the admin account name.
	Username string `json:"username"`
	// Password is compared as plain text against the stored record.
	Password string `json:"password"`
}

// Login handles admin login requests. An unknown username and a wrong
// password produce the same 401 so the response leaks nothing about which
// accounts exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		writeStorageError(w, err, "Error during authentication")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    map[string]string{"id": user.ID, "username": user.Username},
	})
}

// Register handles user creation requests. A taken username is a 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.AuthService.Register(r.Context(), &req)
	if errors.Is(err, repository.ErrConflict) {
		writeMessage(w, http.StatusConflict, "username already exists")
		return
	}
	if err != nil {
		writeStorageError(w, err, "Error creating user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": user.ID, "username": user.Username})
}
