package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hoaxify/hoaxify/internal/model"
	"github.com/hoaxify/hoaxify/internal/repository"
)

var (
	// ErrHoaxDeleteForbidden covers both "not the owner" and "no such
	// hoax" so callers cannot probe for existence.
	ErrHoaxDeleteForbidden = errors.New("not authorized to delete hoax")
)

type HoaxService struct {
	hoaxRepository repository.HoaxRepository
	userRepository repository.UserRepository
	attachmentRepo repository.AttachmentRepository
	fileService    *FileService
}

func NewHoaxService(
	hoaxRepository repository.HoaxRepository,
	userRepository repository.UserRepository,
	attachmentRepo repository.AttachmentRepository,
	fileService *FileService,
) *HoaxService {
	return &HoaxService{
		hoaxRepository: hoaxRepository,
		userRepository: userRepository,
		attachmentRepo: attachmentRepo,
		fileService:    fileService,
	}
}

// Create stores a hoax and, when an attachment id is supplied, binds that
// attachment to it. A stale or already-bound attachment id is ignored.
func (s *HoaxService) Create(userID, content string, attachmentID *string) (*model.Hoax, error) {
	hoax := &model.Hoax{
		ID:        uuid.New().String(),
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
		UserID:    userID,
	}

	err := s.hoaxRepository.Create(hoax)
	if err != nil {
		return nil, fmt.Errorf("failed to create hoax: %w", err)
	}

	if attachmentID != nil && *attachmentID != "" {
		err = s.fileService.AssociateWithHoax(*attachmentID, hoax.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to associate attachment: %w", err)
		}
	}

	return hoax, nil
}

// HoaxListing is the public projection of a hoax with its owner summary
// and attachment, if any.
type HoaxListing struct {
	ID             string             `json:"id"`
	Content        string             `json:"content"`
	Timestamp      int64              `json:"timestamp"`
	User           UserListing        `json:"user"`
	FileAttachment *AttachmentListing `json:"fileAttachment,omitempty"`
}

type AttachmentListing struct {
	Filename string  `json:"filename"`
	FileType *string `json:"fileType"`
	URL      string  `json:"url"`
}

// List returns a page of hoaxes, newest first. A non-empty userID limits
// the listing to that user and fails with ErrUserNotFound for unknown or
// inactive users.
func (s *HoaxService) List(page, size int, userID string) (*Page[HoaxListing], error) {
	page, size = NormalizePage(page, size)

	if userID != "" {
		user, err := s.userRepository.ByID(userID)
		if err != nil {
			return nil, err
		}
		if user.Inactive {
			return nil, repository.ErrUserNotFound
		}
	}

	rows, count, err := s.hoaxRepository.List(page, size, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hoaxes: %w", err)
	}

	content := make([]HoaxListing, 0, len(rows))
	for _, row := range rows {
		listing := HoaxListing{
			ID:        row.ID,
			Content:   row.Content,
			Timestamp: row.Timestamp,
			User: UserListing{
				ID:       row.UserID,
				Username: row.Username,
				Email:    row.Email,
			},
		}
		if row.Image != nil {
			url := s.fileService.ProfileImageURL(*row.Image)
			listing.User.Image = &url
		}
		if row.AttachmentFilename != nil {
			listing.FileAttachment = &AttachmentListing{
				Filename: *row.AttachmentFilename,
				FileType: row.AttachmentType,
				URL:      s.fileService.AttachmentURL(*row.AttachmentFilename),
			}
		}
		content = append(content, listing)
	}

	return &Page[HoaxListing]{
		Content:    content,
		Page:       page,
		Size:       size,
		TotalPages: int(math.Ceil(float64(count) / float64(size))),
	}, nil
}

// Delete removes a hoax after verifying the requester owns it, cascading
// to the attachment row and file. Unknown hoaxes get the same forbidden
// outcome as foreign ones.
func (s *HoaxService) Delete(hoaxID, requesterID string) error {
	hoax, err := s.hoaxRepository.ByID(hoaxID)
	if err != nil {
		if errors.Is(err, repository.ErrHoaxNotFound) {
			return ErrHoaxDeleteForbidden
		}
		return fmt.Errorf("failed to load hoax: %w", err)
	}

	if hoax.UserID != requesterID {
		return ErrHoaxDeleteForbidden
	}

	attachment, err := s.attachmentRepo.ByHoax(hoaxID)
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

	err = s.hoaxRepository.Delete(hoaxID)
	if err != nil {
		return fmt.Errorf("failed to delete hoax: %w", err)
	}

	return nil
}
