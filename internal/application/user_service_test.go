package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

func newUserService(users *fakeUserRepo, up *fakeUploader) *UserService {
	return NewUserService(users, helpers.NewJWTManager("test-secret", time.Hour), up, nil, false, quietLogger())
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:      "Jane Writer",
		Email:     "jane@example.com",
		Password:  "password123",
		Phone:     "555-0101",
		Education: "MFA",
		Role:      entity.RoleAuthor,
		Avatar:    pngInput("avatar.png"),
	}
}

func TestRegisterSuccess(t *testing.T) {
	users := newFakeUserRepo()
	up := newFakeUploader()
	svc := newUserService(users, up)

	u, token, exp, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, entity.RoleAuthor, u.Role)
	assert.Equal(t, "uploads/avatar.png", u.Avatar.ID)
	assert.NotEmpty(t, u.Avatar.URL)
	assert.True(t, exp.After(time.Now()))

	// Stored password is a hash, never the plaintext.
	assert.NotEqual(t, "password123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "password123"))

	claims, err := svc.JWT.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	assert.Equal(t, 1, up.uploadCount())
}

func TestRegisterMissingAvatar(t *testing.T) {
	svc := newUserService(newFakeUserRepo(), newFakeUploader())

	in := registerInput()
	in.Avatar = nil
	_, _, _, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrMainImageRequired)
}

func TestRegisterRejectsBadMIMEBeforeUpload(t *testing.T) {
	up := newFakeUploader()
	svc := newUserService(newFakeUserRepo(), up)

	in := registerInput()
	in.Avatar.ContentType = "image/gif"
	_, _, _, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Zero(t, up.uploadCount())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	up := newFakeUploader()
	svc := newUserService(users, up)

	_, _, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Name = "Other Person"
	_, _, _, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailTaken)
	// The duplicate attempt never reaches the media store.
	assert.Equal(t, 1, up.uploadCount())
}

func TestLoginSuccessAndFailures(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeUploader())

	_, _, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	u, token, _, err := svc.Login(context.Background(), "jane@example.com", "password123", entity.RoleAuthor)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, u.Password)

	_, _, _, err = svc.Login(context.Background(), "jane@example.com", "wrongpass", entity.RoleAuthor)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "password123", entity.RoleAuthor)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// A role mismatch reads the same as any other bad credential.
	_, _, _, err = svc.Login(context.Background(), "jane@example.com", "password123", entity.RoleReader)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfileAndAuthors(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeUploader())

	author, _, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	reader := registerInput()
	reader.Email = "reader@example.com"
	reader.Role = entity.RoleReader
	_, _, _, err = svc.Register(context.Background(), reader)
	require.NoError(t, err)

	got, err := svc.Profile(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, author.Email, got.Email)
	assert.Empty(t, got.Password)

	_, err = svc.Profile(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrUserNotFound)

	authors, err := svc.Authors(context.Background())
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, author.ID, authors[0].ID)
}
