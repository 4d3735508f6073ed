package validation

import (
	"errors"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrImageTooLarge       = errors.New("profile_image_size")
	ErrUnsupportedImage    = errors.New("unsupported_image_file")
	maxProfileImageBytes   = int64(2 * 1024 * 1024)
	supportedProfileImages = map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
	}
)

// ValidateProfileImage checks size (max 2MB) and sniffed content type
// (png or jpeg only). The declared content type is ignored; only the
// bytes decide.
func ValidateProfileImage(data []byte) error {
	if int64(len(data)) > maxProfileImageBytes {
		return ErrImageTooLarge
	}

	detected := mimetype.Detect(data)
	if !supportedProfileImages[detected.String()] {
		return ErrUnsupportedImage
	}

	return nil
}
