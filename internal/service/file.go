package service

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/hoaxify/hoaxify/internal/model"
	"github.com/hoaxify/hoaxify/internal/repository"
	"github.com/hoaxify/hoaxify/internal/storage"
)

// FileService stores uploaded media and tracks hoax attachments pending
// association. Files are named by random stems; attachments additionally
// carry an extension inferred from the sniffed content type.
type FileService struct {
	attachmentRepo repository.AttachmentRepository
	storage        storage.Storage
	retention      time.Duration
}

func NewFileService(attachmentRepo repository.AttachmentRepository, storage storage.Storage, retention time.Duration) *FileService {
	return &FileService{
		attachmentRepo: attachmentRepo,
		storage:        storage,
		retention:      retention,
	}
}

// randomFilename returns a 32-character hex file name stem.
func randomFilename() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// SaveAttachment writes the uploaded bytes to the attachment area and
// records an unassociated attachment row. A failed insert rolls back the
// file write so no orphan file is left without a row.
func (s *FileService) SaveAttachment(data []byte) (*model.Attachment, error) {
	stem, err := randomFilename()
	if err != nil {
		return nil, fmt.Errorf("failed to generate filename: %w", err)
	}

	filename := stem
	var fileType *string
	detected := mimetype.Detect(data)
	if detected.String() != "application/octet-stream" {
		// Undetectable content keeps a nil type and a bare filename
		mime := detected.String()
		fileType = &mime
		filename = stem + detected.Extension()
	}

	storagePath := path.Join(storage.AttachmentArea, filename)
	err = s.storage.Save(storagePath, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to save attachment file: %w", err)
	}

	attachment := &model.Attachment{
		ID:         uuid.New().String(),
		Filename:   filename,
		FileType:   fileType,
		UploadDate: time.Now(),
	}

	err = s.attachmentRepo.Create(attachment)
	if err != nil {
		// If the insert fails, try to clean up the written file
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to delete attachment file during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create attachment record: %w", err)
	}

	return attachment, nil
}

// AssociateWithHoax binds an uploaded attachment to a hoax. The first
// association wins and later calls are no-ops, as is a reference to an
// attachment id that no longer exists; hoax submission must not fail on
// a stale client-side attachment reference.
func (s *FileService) AssociateWithHoax(attachmentID, hoaxID string) error {
	return s.attachmentRepo.Associate(attachmentID, hoaxID)
}

// ReapOrphans deletes attachments that were never bound to a hoax within
// the retention window: file first, then row. The row delete re-checks
// that the attachment is still unassociated, so an association racing the
// sweep keeps its row. A missing file is ignored; leaving the row behind
// would leak it forever once a delete failed.
func (s *FileService) ReapOrphans(now time.Time) (int, error) {
	cutoff := now.Add(-s.retention)
	orphans, err := s.attachmentRepo.OrphansBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find orphaned attachments: %w", err)
	}

	reaped := 0
	for _, orphan := range orphans {
		storagePath := path.Join(storage.AttachmentArea, orphan.Filename)
		err := s.storage.Delete(storagePath)
		if err != nil {
			slog.Warn("failed to delete orphaned attachment file", "path", storagePath, "error", err)
		}

		deleted, err := s.attachmentRepo.DeleteIfUnassociated(orphan.ID)
		if err != nil {
			return reaped, fmt.Errorf("failed to delete orphaned attachment row: %w", err)
		}
		if deleted {
			reaped++
		}
	}

	if reaped > 0 {
		slog.Info("reaped orphaned attachments", "count", reaped)
	}
	return reaped, nil
}

// SaveProfileImage writes a profile image into the profile area and
// returns the stored filename. The caller has already decoded and
// validated the payload.
func (s *FileService) SaveProfileImage(data []byte) (string, error) {
	filename, err := randomFilename()
	if err != nil {
		return "", fmt.Errorf("failed to generate filename: %w", err)
	}

	err = s.storage.Save(path.Join(storage.ProfileArea, filename), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to save profile image: %w", err)
	}

	return filename, nil
}

// DeleteProfileImage removes a stored profile image. Failures are logged
// and swallowed; a leaked file must never block the calling operation.
func (s *FileService) DeleteProfileImage(filename string) {
	err := s.storage.Delete(path.Join(storage.ProfileArea, filename))
	if err != nil {
		slog.Warn("failed to delete profile image", "filename", filename, "error", err)
	}
}

// DeleteAttachmentFile removes a stored attachment file, best effort.
func (s *FileService) DeleteAttachmentFile(filename string) {
	err := s.storage.Delete(path.Join(storage.AttachmentArea, filename))
	if err != nil {
		slog.Warn("failed to delete attachment file", "filename", filename, "error", err)
	}
}

// AttachmentURL returns the public URL of an attachment file.
func (s *FileService) AttachmentURL(filename string) string {
	return s.storage.URL(path.Join(storage.AttachmentArea, filename))
}

// ProfileImageURL returns the public URL of a profile image.
func (s *FileService) ProfileImageURL(filename string) string {
	return s.storage.URL(path.Join(storage.ProfileArea, filename))
}
