package validation

import (
	"errors"
	"net/mail"
	"strings"
)

// Validation errors carry message catalog keys; the handler layer
// localizes them per the request's Accept-Language.
var (
	ErrUsernameRequired = errors.New("username_null")
	ErrUsernameSize     = errors.New("username_size")
	ErrEmailRequired    = errors.New("email_null")
	ErrEmailInvalid     = errors.New("email_invalid")
	ErrPasswordRequired = errors.New("password_null")
	ErrPasswordSize     = errors.New("password_size")
	ErrPasswordPattern  = errors.New("password_pattern")
)

// IsValidationError reports whether err is one of the field rule errors,
// so handlers can map it to a 400 with a validationErrors body.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrUsernameRequired, ErrUsernameSize,
		ErrEmailRequired, ErrEmailInvalid,
		ErrPasswordRequired, ErrPasswordSize, ErrPasswordPattern,
		ErrContentSize, ErrImageTooLarge, ErrUnsupportedImage,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ValidateUsername enforces the 4..32 character username rule
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}
	if len(username) < 4 || len(username) > 32 {
		return ErrUsernameSize
	}
	return nil
}

// ValidateEmail validates email format using Go's RFC 5322 parser
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len(email) > 254 {
		return ErrEmailInvalid
	}
	_, err := mail.ParseAddress(email)
	if err != nil {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword requires at least 6 characters with one lowercase,
// one uppercase and one digit. Capped at 72 bytes (bcrypt limitation).
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < 6 || len(password) > 72 {
		return ErrPasswordSize
	}

	var hasLower, hasUpper, hasDigit bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		return ErrPasswordPattern
	}
	return nil
}
