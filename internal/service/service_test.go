package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoaxify/hoaxify/internal/db"
	"github.com/hoaxify/hoaxify/internal/model"
	"github.com/hoaxify/hoaxify/internal/repository"
	"github.com/hoaxify/hoaxify/internal/storage"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testEnv wires real repositories over a throwaway sqlite database and a
// temp-dir storage root, matching the production composition.
type testEnv struct {
	db          *sqlx.DB
	storage     *storage.LocalStorage
	users       repository.UserRepository
	tokens      repository.TokenRepository
	hoaxes      repository.HoaxRepository
	attachments repository.AttachmentRepository
	email       *EmailService
	auth        *AuthService
	files       *FileService
	userSvc     *UserService
	hoaxSvc     *HoaxService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	store, err := storage.NewLocal(t.TempDir(), storage.ProfileArea, storage.AttachmentArea)
	require.NoError(t, err)

	env := &testEnv{
		db:          database,
		storage:     store,
		users:       repository.NewUserRepository(database),
		tokens:      repository.NewTokenRepository(database),
		hoaxes:      repository.NewHoaxRepository(database),
		attachments: repository.NewAttachmentRepository(database),
		email:       NewEmailService("", "noreply@my-app.com", "info@my-app.com", "http://localhost:8080", "Hoaxify", true),
	}
	env.auth = NewAuthService(env.users, env.tokens, env.email, 7*24*time.Hour)
	env.files = NewFileService(env.attachments, store, 24*time.Hour)
	env.userSvc = NewUserService(env.users, env.hoaxes, env.attachments, env.tokens, env.files, env.email)
	env.hoaxSvc = NewHoaxService(env.hoaxes, env.users, env.attachments, env.files)

	return env
}

func (e *testEnv) addUser(t *testing.T, username, password string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@mail.com",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	require.NoError(t, e.users.Create(user))
	return user
}

// failingSender refuses every delivery, standing in for a provider
// outage.
type failingSender struct{}

func (failingSender) SendAccountActivationEmail(email, token, name string) error {
	return errors.New("provider unavailable")
}

func (failingSender) SendPasswordResetEmail(email, token, name string) error {
	return errors.New("provider unavailable")
}

// unlinkFailStorage fails every delete the way a permission error would.
type unlinkFailStorage struct{ *storage.LocalStorage }

func (unlinkFailStorage) Delete(path string) error {
	return errors.New("permission denied")
}

func (e *testEnv) addToken(t *testing.T, userID string, lastUsed time.Time) string {
	t.Helper()

	token, err := GenerateToken()
	require.NoError(t, err)
	require.NoError(t, e.tokens.Create(&model.Token{
		Token:      token,
		UserID:     userID,
		LastUsedAt: lastUsed,
	}))
	return token
}
