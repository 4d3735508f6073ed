package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hoaxify/hoaxify/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Image    *string `json:"image"`
	Token    string  `json:"token"`
}

// Login verifies credentials and returns a fresh session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAccountInactive) {
			writeError(w, r, http.StatusForbidden, "inactive_authentication_failure", nil)
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, r, http.StatusUnauthorized, "authentication_failure", nil)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		ID:       user.ID,
		Username: user.Username,
		Image:    user.Image,
		Token:    token,
	})
}

// Logout revokes the presented token. Revoking an unknown or absent
// token still succeeds; logout is idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		token := strings.TrimPrefix(auth, "Bearer ")
		err := h.authService.Revoke(token)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{})
}
