package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/hoaxify/hoaxify/internal/model"
	"github.com/hoaxify/hoaxify/internal/repository"
	"github.com/hoaxify/hoaxify/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidResetToken  = errors.New("invalid password reset token")
)

// AuthService owns the full session token lifecycle: issuing, validating,
// refreshing, revoking and sweeping opaque bearer tokens. Tokens expire
// by sliding window: the expiry counts from the last use, not creation.
type AuthService struct {
	userRepository  repository.UserRepository
	tokenRepository repository.TokenRepository
	emailService    EmailSender
	tokenExpiry     time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	tokenRepository repository.TokenRepository,
	emailService EmailSender,
	tokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		emailService:    emailService,
		tokenExpiry:     tokenExpiry,
	}
}

// GenerateToken produces an opaque high-entropy random string. Uniqueness
// is enforced by the tokens primary key, not here; a collision of 32
// random bytes is treated as negligible.
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Issue creates and persists a new token for the user. Each login gets
// its own token; concurrent sessions for one user are independent.
func (s *AuthService) Issue(userID string) (string, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	err = s.tokenRepository.Create(&model.Token{
		Token:      token,
		UserID:     userID,
		LastUsedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	return token, nil
}

// Authenticate resolves a bearer token to its user and refreshes the
// token's last-used timestamp. Unknown and expired tokens both return
// ErrUnauthenticated. Expired tokens are left in place; removing them is
// the sweep's job, so a failed read never mutates state.
func (s *AuthService) Authenticate(tokenString string) (*model.User, error) {
	token, err := s.tokenRepository.ByToken(tokenString)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	now := time.Now()
	if token.IsExpired(s.tokenExpiry, now) {
		return nil, ErrUnauthenticated
	}

	err = s.tokenRepository.Touch(tokenString, now)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	user, err := s.userRepository.ByID(token.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load token user: %w", err)
	}

	return user, nil
}

// Revoke deletes a single token. Revoking an unknown token is a no-op.
func (s *AuthService) Revoke(tokenString string) error {
	return s.tokenRepository.Delete(tokenString)
}

// RevokeAllForUser removes every session of the user. Used on account
// deletion and after a completed password reset.
func (s *AuthService) RevokeAllForUser(userID string) error {
	_, err := s.tokenRepository.DeleteByUser(userID)
	return err
}

// SweepExpired deletes every token idle past the expiry window.
func (s *AuthService) SweepExpired(now time.Time) (int64, error) {
	return s.tokenRepository.DeleteLastUsedBefore(now.Add(-s.tokenExpiry))
}

// Login verifies credentials and issues a fresh token. Inactive accounts
// cannot log in even with correct credentials.
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if user.Inactive {
		return nil, "", ErrAccountInactive
	}

	token, err := s.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// RequestPasswordReset stores a reset token on the account and mails it.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		return err
	}

	resetToken, err := GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	user.PasswordResetToken = &resetToken
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	err = s.emailService.SendPasswordResetEmail(user.Email, resetToken, user.Username)
	if err != nil {
		return ErrEmailDelivery
	}

	return nil
}

// ResetPassword completes a password reset: sets the new hash, clears the
// reset token, activates the account and revokes every live session so a
// stolen token dies with the old password.
func (s *AuthService) ResetPassword(resetToken, newPassword string) error {
	user, err := s.userRepository.ByPasswordResetToken(resetToken)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.PasswordResetToken = nil
	user.ActivationToken = nil
	user.Inactive = false

	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return s.RevokeAllForUser(user.ID)
}
