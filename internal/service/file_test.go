package service

import (
	"path"
	"testing"
	"time"

	"github.com/hoaxify/hoaxify/internal/model"
	"github.com/hoaxify/hoaxify/internal/repository"
	"github.com/hoaxify/hoaxify/internal/storage"
	"github.com/stretchr/testify/require"
)

// pngBytes is a minimal PNG header, enough for content sniffing.
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func (e *testEnv) addHoax(t *testing.T, userID string) *model.Hoax {
	t.Helper()

	hoax, err := e.hoaxSvc.Create(userID, "this is a hoax of sufficient length", nil)
	require.NoError(t, err)
	return hoax
}

func TestFileService_SaveAttachmentDetectsType(t *testing.T) {
	env := newTestEnv(t)

	attachment, err := env.files.SaveAttachment(pngBytes)
	require.NoError(t, err)
	require.NotNil(t, attachment.FileType)
	require.Equal(t, "image/png", *attachment.FileType)
	require.Equal(t, ".png", path.Ext(attachment.Filename))
	require.True(t, env.storage.Exists(path.Join(storage.AttachmentArea, attachment.Filename)))

	stored, err := env.attachments.ByID(attachment.ID)
	require.NoError(t, err)
	require.Nil(t, stored.HoaxID)
}

func TestFileService_SaveAttachmentUnknownType(t *testing.T) {
	env := newTestEnv(t)

	attachment, err := env.files.SaveAttachment([]byte{0x00, 0x01, 0x02, 0x03})
	require.NoError(t, err)
	require.Nil(t, attachment.FileType)
	require.Empty(t, path.Ext(attachment.Filename))
}

func TestFileService_ReapOrphansPastRetention(t *testing.T) {
	env := newTestEnv(t)

	attachment, err := env.files.SaveAttachment(pngBytes)
	require.NoError(t, err)

	// Still inside the retention window
	reaped, err := env.files.ReapOrphans(time.Now())
	require.NoError(t, err)
	require.Zero(t, reaped)

	reaped, err = env.files.ReapOrphans(time.Now().Add(25 * time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, reaped)

	_, err = env.attachments.ByID(attachment.ID)
	require.ErrorIs(t, err, repository.ErrAttachmentNotFound)
	require.False(t, env.storage.Exists(path.Join(storage.AttachmentArea, attachment.Filename)))
}

func TestFileService_ReapSkipsAssociated(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "user1", "P4ssword")
	hoax := env.addHoax(t, user.ID)

	attachment, err := env.files.SaveAttachment(pngBytes)
	require.NoError(t, err)
	require.NoError(t, env.files.AssociateWithHoax(attachment.ID, hoax.ID))

	reaped, err := env.files.ReapOrphans(time.Now().Add(48 * time.Hour))
	require.NoError(t, err)
	require.Zero(t, reaped)

	stored, err := env.attachments.ByID(attachment.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.HoaxID)
	require.True(t, env.storage.Exists(path.Join(storage.AttachmentArea, attachment.Filename)))
}

func TestFileService_ReapToleratesMissingFile(t *testing.T) {
	env := newTestEnv(t)

	attachment, err := env.files.SaveAttachment(pngBytes)
	require.NoError(t, err)
	require.NoError(t, env.storage.Delete(path.Join(storage.AttachmentArea, attachment.Filename)))

	reaped, err := env.files.ReapOrphans(time.Now().Add(25 * time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, reaped)

	_, err = env.attachments.ByID(attachment.ID)
	require.ErrorIs(t, err, repository.ErrAttachmentNotFound)
}

func TestFileService_ProfileImageRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	filename, err := env.files.SaveProfileImage([]byte("test-image"))
	require.NoError(t, err)
	require.True(t, env.storage.Exists(path.Join(storage.ProfileArea, filename)))

	env.files.DeleteProfileImage(filename)
	require.False(t, env.storage.Exists(path.Join(storage.ProfileArea, filename)))

	// Deleting again must not blow up
	env.files.DeleteProfileImage(filename)
}

func TestFileService_URLs(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, "/attachments/file.png", env.files.AttachmentURL("file.png"))
	require.Equal(t, "/images/avatar", env.files.ProfileImageURL("avatar"))
}
