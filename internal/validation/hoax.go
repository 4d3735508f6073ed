package validation

import (
	"errors"
	"strings"
)

var (
	ErrContentSize = errors.New("hoax_content_size")
)

// ValidateHoaxContent enforces the 10..5000 character content rule
func ValidateHoaxContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < 10 || len(trimmed) > 5000 {
		return ErrContentSize
	}
	return nil
}
