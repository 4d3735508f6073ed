package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hoaxify/hoaxify/internal/model"
	"github.com/hoaxify/hoaxify/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailInUse        = errors.New("email already in use")
	ErrUsernameInUse     = errors.New("username already in use")
	ErrInvalidActivation = errors.New("invalid activation token")
	ErrUserNotFound      = repository.ErrUserNotFound
)

type UserService struct {
	userRepository repository.UserRepository
	hoaxRepository repository.HoaxRepository
	attachmentRepo repository.AttachmentRepository
	tokenRepo      repository.TokenRepository
	fileService    *FileService
	emailService   EmailSender
}

func NewUserService(
	userRepository repository.UserRepository,
	hoaxRepository repository.HoaxRepository,
	attachmentRepo repository.AttachmentRepository,
	tokenRepo repository.TokenRepository,
	fileService *FileService,
	emailService EmailSender,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		hoaxRepository: hoaxRepository,
		attachmentRepo: attachmentRepo,
		tokenRepo:      tokenRepo,
		fileService:    fileService,
		emailService:   emailService,
	}
}

// activationToken is shorter than a session token; it travels in email.
func activationToken() (string, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", err
	}
	return token[:16], nil
}

// Register creates an inactive account and mails the activation token.
// A failed activation mail rolls the account back so the address can
// retry registration.
func (s *UserService) Register(username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := activationToken()
	if err != nil {
		return fmt.Errorf("failed to generate activation token: %w", err)
	}

	user := &model.User{
		ID:              uuid.New().String(),
		Username:        username,
		Email:           email,
		PasswordHash:    string(hash),
		Inactive:        true,
		ActivationToken: &token,
		CreatedAt:       time.Now(),
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailInUse
		}
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return ErrUsernameInUse
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	err = s.emailService.SendAccountActivationEmail(email, token, username)
	if err != nil {
		delErr := s.userRepository.Delete(user.ID)
		if delErr != nil {
			slog.Error("failed to roll back user after email failure", "user_id", user.ID, "error", delErr)
		}
		return ErrEmailDelivery
	}

	return nil
}

// Activate flips the account active and consumes the activation token.
func (s *UserService) Activate(token string) error {
	user, err := s.userRepository.ByActivationToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidActivation
		}
		return fmt.Errorf("failed to look up activation token: %w", err)
	}

	user.Inactive = false
	user.ActivationToken = nil

	return s.userRepository.Update(user)
}

// Page is a paginated listing response.
type Page[T any] struct {
	Content    []T `json:"content"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalPages int `json:"totalPages"`
}

// NormalizePage clamps page and size to sane bounds: page >= 0, size
// between 1 and 100, defaulting to 10.
func NormalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

// UserListing is the public projection of a user.
type UserListing struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Image    *string `json:"image"`
}

func (s *UserService) listing(user *model.User) UserListing {
	l := UserListing{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	if user.HasImage() {
		url := s.fileService.ProfileImageURL(*user.Image)
		l.Image = &url
	}
	return l
}

// List returns a page of active users. The authenticated caller, when
// present, is excluded from the listing.
func (s *UserService) List(page, size int, authenticated *model.User) (*Page[UserListing], error) {
	page, size = NormalizePage(page, size)

	excludeID := ""
	if authenticated != nil {
		excludeID = authenticated.ID
	}

	users, count, err := s.userRepository.ListActive(page, size, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	content := make([]UserListing, 0, len(users))
	for _, user := range users {
		content = append(content, s.listing(user))
	}

	return &Page[UserListing]{
		Content:    content,
		Page:       page,
		Size:       size,
		TotalPages: int(math.Ceil(float64(count) / float64(size))),
	}, nil
}

// Get returns an active user by id.
func (s *UserService) Get(id string) (*UserListing, error) {
	user, err := s.userRepository.ByID(id)
	if err != nil {
		return nil, err
	}
	if user.Inactive {
		return nil, repository.ErrUserNotFound
	}

	listing := s.listing(user)
	return &listing, nil
}

// Update changes the username and optionally replaces the profile image.
// The previous image file is removed once the new one is stored.
func (s *UserService) Update(id, username string, image []byte) (*UserListing, error) {
	user, err := s.userRepository.ByID(id)
	if err != nil {
		return nil, err
	}

	user.Username = username

	if image != nil {
		filename, err := s.fileService.SaveProfileImage(image)
		if err != nil {
			return nil, err
		}
		if user.HasImage() {
			s.fileService.DeleteProfileImage(*user.Image)
		}
		user.Image = &filename
	}

	err = s.userRepository.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	listing := s.listing(user)
	return &listing, nil
}

// DeleteUser removes a user and everything that exists only in relation
// to it: profile image file, hoaxes with their attachments (rows and
// files), and all session tokens. Dependents go first so a crash
// mid-sequence never leaves a row pointing at a deleted user. Filesystem
// failures are logged and skipped; database failures abort.
func (s *UserService) DeleteUser(userID string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Already deleted
			return nil
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if user.HasImage() {
		s.fileService.DeleteProfileImage(*user.Image)
	}

	hoaxes, err := s.hoaxRepository.ByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to list user hoaxes: %w", err)
	}

	for _, hoax := range hoaxes {
		attachment, err := s.attachmentRepo.ByHoax(hoax.ID)
		if err != nil && !errors.Is(err, repository.ErrAttachmentNotFound) {
			return fmt.Errorf("failed to load hoax attachment: %w", err)
		}
		if attachment != nil {
			s.fileService.DeleteAttachmentFile(attachment.Filename)
			err = s.attachmentRepo.Delete(attachment.ID)
			if err != nil {
				return fmt.Errorf("failed to delete attachment: %w", err)
			}
		}

		err = s.hoaxRepository.Delete(hoax.ID)
		if err != nil {
			return fmt.Errorf("failed to delete hoax: %w", err)
		}
	}

	_, err = s.tokenRepo.DeleteByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}

	err = s.userRepository.Delete(userID)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
