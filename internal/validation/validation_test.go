package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	require.ErrorIs(t, ValidateUsername(""), ErrUsernameRequired)
	require.ErrorIs(t, ValidateUsername("   "), ErrUsernameRequired)
	require.ErrorIs(t, ValidateUsername("usr"), ErrUsernameSize)
	require.ErrorIs(t, ValidateUsername(strings.Repeat("u", 33)), ErrUsernameSize)
	require.NoError(t, ValidateUsername("user"))
	require.NoError(t, ValidateUsername(strings.Repeat("u", 32)))
}

func TestValidateEmail(t *testing.T) {
	require.ErrorIs(t, ValidateEmail(""), ErrEmailRequired)
	require.ErrorIs(t, ValidateEmail("not-an-email"), ErrEmailInvalid)
	require.ErrorIs(t, ValidateEmail("a@"+strings.Repeat("x", 260)+".com"), ErrEmailInvalid)
	require.NoError(t, ValidateEmail("user1@mail.com"))
}

func TestValidatePassword(t *testing.T) {
	require.ErrorIs(t, ValidatePassword(""), ErrPasswordRequired)
	require.ErrorIs(t, ValidatePassword("P4ss"), ErrPasswordSize)
	require.ErrorIs(t, ValidatePassword("P4"+strings.Repeat("s", 71)), ErrPasswordSize)
	require.ErrorIs(t, ValidatePassword("alllowercase1"), ErrPasswordPattern)
	require.ErrorIs(t, ValidatePassword("ALLUPPERCASE1"), ErrPasswordPattern)
	require.ErrorIs(t, ValidatePassword("NoDigitsHere"), ErrPasswordPattern)
	require.NoError(t, ValidatePassword("P4ssword"))
}

func TestValidateHoaxContent(t *testing.T) {
	require.ErrorIs(t, ValidateHoaxContent("too short"), ErrContentSize)
	require.ErrorIs(t, ValidateHoaxContent("         padded        "), ErrContentSize)
	require.ErrorIs(t, ValidateHoaxContent(strings.Repeat("x", 5001)), ErrContentSize)
	require.NoError(t, ValidateHoaxContent("exactly10!"))
	require.NoError(t, ValidateHoaxContent(strings.Repeat("x", 5000)))
}

func TestValidateProfileImage(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46}

	require.NoError(t, ValidateProfileImage(png))
	require.NoError(t, ValidateProfileImage(jpeg))
	require.ErrorIs(t, ValidateProfileImage([]byte("plain text")), ErrUnsupportedImage)
	require.ErrorIs(t, ValidateProfileImage(make([]byte, 3*1024*1024)), ErrImageTooLarge)
}

func TestIsValidationError(t *testing.T) {
	require.True(t, IsValidationError(ErrPasswordPattern))
	require.True(t, IsValidationError(ErrContentSize))
	require.False(t, IsValidationError(nil))
	require.False(t, IsValidationError(errors.New("connection refused")))
}
