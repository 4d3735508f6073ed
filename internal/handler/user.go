package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/hoaxify/hoaxify/internal/ctxkeys"
	"github.com/hoaxify/hoaxify/internal/service"
	"github.com/hoaxify/hoaxify/internal/validation"
)

type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	validationErrors := map[string]string{}
	if err := validation.ValidateUsername(req.Username); err != nil {
		validationErrors["username"] = err.Error()
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		validationErrors["email"] = err.Error()
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		validationErrors["password"] = err.Error()
	}
	if len(validationErrors) > 0 {
		writeError(w, r, http.StatusBadRequest, "validation_failure", validationErrors)
		return
	}

	err := h.userService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			writeError(w, r, http.StatusBadRequest, "validation_failure", map[string]string{"email": "email_inuse"})
			return
		}
		if errors.Is(err, service.ErrUsernameInUse) {
			writeError(w, r, http.StatusBadRequest, "validation_failure", map[string]string{"username": "username_inuse"})
			return
		}
		if errors.Is(err, service.ErrEmailDelivery) {
			writeError(w, r, http.StatusBadGateway, "email_failure", nil)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeMessage(w, r, http.StatusOK, "user_create_success")
}

func (h *UserHandler) Activate(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	err := h.userService.Activate(token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidActivation) {
			writeError(w, r, http.StatusBadRequest, "account_activation_failure", nil)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeMessage(w, r, http.StatusOK, "account_activation_success")
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)

	// The optionally authenticated caller is excluded from the listing
	authenticated := ctxkeys.User(r.Context())

	result, err := h.userService.List(page, size, authenticated)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.userService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, r, http.StatusNotFound, "user_not_found", nil)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Username string  `json:"username"`
	Image    *string `json:"image"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	authenticated := ctxkeys.User(r.Context())
	if authenticated == nil || authenticated.ID != id {
		writeError(w, r, http.StatusForbidden, "unauthorized_user_update", nil)
		return
	}

	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	validationErrors := map[string]string{}
	if err := validation.ValidateUsername(req.Username); err != nil {
		validationErrors["username"] = err.Error()
	}

	// Decode once; the service stores the bytes as-is
	var image []byte
	if req.Image != nil {
		data, err := base64.StdEncoding.DecodeString(*req.Image)
		if err != nil {
			validationErrors["image"] = validation.ErrUnsupportedImage.Error()
		} else if err := validation.ValidateProfileImage(data); err != nil {
			validationErrors["image"] = err.Error()
		} else {
			image = data
		}
	}
	if len(validationErrors) > 0 {
		writeError(w, r, http.StatusBadRequest, "validation_failure", validationErrors)
		return
	}

	user, err := h.userService.Update(id, req.Username, image)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	authenticated := ctxkeys.User(r.Context())
	if authenticated == nil || authenticated.ID != id {
		writeError(w, r, http.StatusForbidden, "unauthorized_user_delete", nil)
		return
	}

	err := h.userService.DeleteUser(id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeMessage(w, r, http.StatusOK, "user_delete_success")
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

func (h *UserHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failure", map[string]string{"email": err.Error()})
		return
	}

	err := h.authService.RequestPasswordReset(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, r, http.StatusNotFound, "email_not_inuse", nil)
			return
		}
		if errors.Is(err, service.ErrEmailDelivery) {
			writeError(w, r, http.StatusBadGateway, "email_failure", nil)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeMessage(w, r, http.StatusOK, "password_reset_request_success")
}

type passwordUpdateRequest struct {
	PasswordResetToken string `json:"passwordResetToken"`
	Password           string `json:"password"`
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// The reset token is checked before the password rules so an invalid
	// token cannot probe whether a submitted password was acceptable
	err := h.authService.ResetPassword(req.PasswordResetToken, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			writeError(w, r, http.StatusForbidden, "unauthorized_password_reset", nil)
			return
		}
		if validation.IsValidationError(err) {
			writeError(w, r, http.StatusBadRequest, "validation_failure", map[string]string{"password": err.Error()})
			return
		}
		writeError(w, r, http.StatusInternalServerError, "server_failure", nil)
		return
	}

	writeMessage(w, r, http.StatusOK, "password_update_success")
}

func pagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil {
		size = 10
	}
	return page, size
}
