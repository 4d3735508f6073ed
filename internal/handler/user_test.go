package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoaxify/hoaxify/internal/ctxkeys"
	"github.com/hoaxify/hoaxify/internal/db"
	"github.com/hoaxify/hoaxify/internal/model"
	"github.com/hoaxify/hoaxify/internal/repository"
	"github.com/hoaxify/hoaxify/internal/service"
	"github.com/hoaxify/hoaxify/internal/storage"
	"github.com/stretchr/testify/require"
)

// stubSender replaces the email provider; err != nil fails deliveries.
type stubSender struct{ err error }

func (s stubSender) SendAccountActivationEmail(email, token, name string) error { return s.err }
func (s stubSender) SendPasswordResetEmail(email, token, name string) error     { return s.err }

func newUserHandler(t *testing.T, sender service.EmailSender) (*UserHandler, repository.UserRepository) {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	users := repository.NewUserRepository(database)
	tokens := repository.NewTokenRepository(database)
	hoaxes := repository.NewHoaxRepository(database)
	attachments := repository.NewAttachmentRepository(database)

	store, err := storage.NewLocal(t.TempDir(), storage.ProfileArea, storage.AttachmentArea)
	require.NoError(t, err)

	files := service.NewFileService(attachments, store, 24*time.Hour)
	auth := service.NewAuthService(users, tokens, sender, 7*24*time.Hour)
	userService := service.NewUserService(users, hoaxes, attachments, tokens, files, sender)

	return NewUserHandler(userService, auth), users
}

func TestRegister_EmailFailureBody(t *testing.T) {
	h, users := newUserHandler(t, stubSender{err: errors.New("provider unavailable")})

	body, err := json.Marshal(map[string]string{
		"username": "user1",
		"email":    "user1@mail.com",
		"password": "P4ssword",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/1.0/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp struct {
		Path    string `json:"path"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "/api/1.0/users", resp.Path)
	require.Equal(t, "E-mail Failure", resp.Message)

	// The failed registration left no row behind
	_, err = users.ByEmail("user1@mail.com")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUpdate_RejectsUndecodableImage(t *testing.T) {
	h, users := newUserHandler(t, stubSender{})

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     "user1",
		Email:        "user1@mail.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, users.Create(user))

	payload := map[string]any{"username": "user1-updated", "image": "not base64!!!"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/1.0/users/"+user.ID, bytes.NewReader(body))
	req.SetPathValue("id", user.ID)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		ValidationErrors map[string]string `json:"validationErrors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Only PNG and JPG files are allowed", resp.ValidationErrors["image"])

	// The username change was rejected along with the image
	stored, err := users.ByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "user1", stored.Username)
}
