package service

import (
	"path"
	"testing"
	"time"

	"github.com/hoaxify/hoaxify/internal/repository"
	"github.com/hoaxify/hoaxify/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndActivate(t *testing.T) {
	env := newTestEnv(t)

	err := env.userSvc.Register("user1", "user1@mail.com", "P4ssword")
	require.NoError(t, err)

	user, err := env.users.ByEmail("user1@mail.com")
	require.NoError(t, err)
	require.True(t, user.Inactive)
	require.NotNil(t, user.ActivationToken)

	// Inactive accounts are hidden from lookups
	_, err = env.userSvc.Get(user.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, env.userSvc.Activate(*user.ActivationToken))

	activated, err := env.users.ByID(user.ID)
	require.NoError(t, err)
	require.False(t, activated.Inactive)
	require.Nil(t, activated.ActivationToken)

	_, err = env.userSvc.Get(user.ID)
	require.NoError(t, err)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user1", "P4ssword")

	err := env.userSvc.Register("other", "user1@mail.com", "P4ssword")
	require.ErrorIs(t, err, ErrEmailInUse)
}

func TestUserService_RegisterRollsBackOnEmailFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.hoaxes, env.attachments, env.tokens, env.files, failingSender{})

	err := svc.Register("user1", "user1@mail.com", "P4ssword")
	require.ErrorIs(t, err, ErrEmailDelivery)

	// The account was rolled back so the address can register again
	_, err = env.users.ByEmail("user1@mail.com")
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	require.NoError(t, env.userSvc.Register("user1", "user1@mail.com", "P4ssword"))
}

func TestUserService_ActivateUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	err := env.userSvc.Activate("bogus")
	require.ErrorIs(t, err, ErrInvalidActivation)
}

func TestUserService_ListExcludesCaller(t *testing.T) {
	env := newTestEnv(t)
	caller := env.addUser(t, "user1", "P4ssword")
	env.addUser(t, "user2", "P4ssword")
	env.addUser(t, "user3", "P4ssword")

	page, err := env.userSvc.List(0, 10, caller)
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	require.Equal(t, 1, page.TotalPages)
	for _, listing := range page.Content {
		require.NotEqual(t, caller.ID, listing.ID)
	}

	// Anonymous callers see everyone
	page, err = env.userSvc.List(0, 10, nil)
	require.NoError(t, err)
	require.Len(t, page.Content, 3)
}

func TestUserService_ListPagination(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"user1", "user2", "user3", "user4", "user5"} {
		env.addUser(t, name, "P4ssword")
	}

	page, err := env.userSvc.List(1, 2, nil)
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 3, page.TotalPages)
}

func TestUserService_UpdateReplacesImage(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "user1", "P4ssword")

	listing, err := env.userSvc.Update(user.ID, "renamed", []byte("first-image"))
	require.NoError(t, err)
	require.Equal(t, "renamed", listing.Username)
	require.NotNil(t, listing.Image)

	stored, err := env.users.ByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Image)
	firstImage := *stored.Image
	require.True(t, env.storage.Exists(path.Join(storage.ProfileArea, firstImage)))

	_, err = env.userSvc.Update(user.ID, "renamed", []byte("second-image"))
	require.NoError(t, err)

	require.False(t, env.storage.Exists(path.Join(storage.ProfileArea, firstImage)))
}

func TestUserService_DeleteUserCascades(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "user1", "P4ssword")

	// Profile image
	_, err := env.userSvc.Update(user.ID, "user1", []byte("avatar"))
	require.NoError(t, err)
	stored, err := env.users.ByID(user.ID)
	require.NoError(t, err)
	imagePath := path.Join(storage.ProfileArea, *stored.Image)

	// A hoax with an attachment, plus a bare hoax and two sessions
	attachment, err := env.files.SaveAttachment(pngBytes)
	require.NoError(t, err)
	attachmentID := attachment.ID
	_, err = env.hoaxSvc.Create(user.ID, "a hoax that carries an attachment", &attachmentID)
	require.NoError(t, err)
	env.addHoax(t, user.ID)
	token, err := env.auth.Issue(user.ID)
	require.NoError(t, err)
	_, err = env.auth.Issue(user.ID)
	require.NoError(t, err)

	require.NoError(t, env.userSvc.DeleteUser(user.ID))

	_, err = env.users.ByID(user.ID)
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	hoaxes, err := env.hoaxes.ByUser(user.ID)
	require.NoError(t, err)
	require.Empty(t, hoaxes)

	_, err = env.attachments.ByID(attachment.ID)
	require.ErrorIs(t, err, repository.ErrAttachmentNotFound)
	require.False(t, env.storage.Exists(path.Join(storage.AttachmentArea, attachment.Filename)))
	require.False(t, env.storage.Exists(imagePath))

	_, err = env.auth.Authenticate(token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUserService_DeleteUserSurvivesUnlinkFailure(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "user1", "P4ssword")

	_, err := env.userSvc.Update(user.ID, "user1", []byte("avatar"))
	require.NoError(t, err)
	attachment, err := env.files.SaveAttachment(pngBytes)
	require.NoError(t, err)
	attachmentID := attachment.ID
	_, err = env.hoaxSvc.Create(user.ID, "a hoax that carries an attachment", &attachmentID)
	require.NoError(t, err)

	// Same database, but every unlink fails as on a permission error
	files := NewFileService(env.attachments, unlinkFailStorage{env.storage}, 24*time.Hour)
	svc := NewUserService(env.users, env.hoaxes, env.attachments, env.tokens, files, env.email)

	require.NoError(t, svc.DeleteUser(user.ID))

	_, err = env.users.ByID(user.ID)
	require.ErrorIs(t, err, repository.ErrUserNotFound)
	hoaxes, err := env.hoaxes.ByUser(user.ID)
	require.NoError(t, err)
	require.Empty(t, hoaxes)
	_, err = env.attachments.ByID(attachment.ID)
	require.ErrorIs(t, err, repository.ErrAttachmentNotFound)

	// The file stayed behind; the rows are what count
	require.True(t, env.storage.Exists(path.Join(storage.AttachmentArea, attachment.Filename)))
}

func TestUserService_DeleteUserWithoutDependents(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "user1", "P4ssword")

	require.NoError(t, env.userSvc.DeleteUser(user.ID))

	_, err := env.users.ByID(user.ID)
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserService_DeleteUserIdempotent(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.userSvc.DeleteUser("already-gone"))
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantSize int
	}{
		{"defaults", -1, 0, 0, 10},
		{"passthrough", 2, 25, 2, 25},
		{"size capped", 0, 500, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := NormalizePage(tt.page, tt.size)
			require.Equal(t, tt.wantPage, page)
			require.Equal(t, tt.wantSize, size)
		})
	}
}
