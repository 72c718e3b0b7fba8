package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/internal/metrics"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
	"github.com/oksasatya/go-blog-api/pkg/mailer"
	"github.com/oksasatya/go-blog-api/pkg/media"
)

// UserService implements registration, login and profile reads.
type UserService struct {
	Users       repository.UserRepository
	JWT         *helpers.JWTManager
	Media       media.Uploader
	Publisher   *helpers.RabbitPublisher
	MailEnabled bool
	Logger      *logrus.Logger
}

func NewUserService(users repository.UserRepository, jwt *helpers.JWTManager, uploader media.Uploader, pub *helpers.RabbitPublisher, mailEnabled bool, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, JWT: jwt, Media: uploader, Publisher: pub, MailEnabled: mailEnabled, Logger: logger}
}

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	Education string
	Role      entity.Role
	Avatar    *ImageInput
}

// Register validates the avatar, rejects duplicate emails, uploads the avatar
// and creates the user. The MIME gate runs before any upload is attempted.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, string, time.Time, error) {
	if in.Avatar == nil {
		return nil, "", time.Time{}, ErrMainImageRequired
	}
	if err := validateImageTypes(in.Avatar); err != nil {
		return nil, "", time.Time{}, err
	}

	// Duplicate-email pre-check; the unique index is the real guard.
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", time.Time{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", time.Time{}, err
	}

	avatar, err := s.Media.Upload(ctx, in.Avatar.Reader, in.Avatar.Filename, in.Avatar.ContentType)
	if err != nil {
		metrics.MediaUploadsTotal.WithLabelValues("error").Inc()
		return nil, "", time.Time{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	metrics.MediaUploadsTotal.WithLabelValues("ok").Inc()

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	u := &entity.User{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Education: in.Education,
		Role:      in.Role,
		Avatar:    entity.Image{ID: avatar.ID, URL: avatar.URL},
		Password:  hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// Do not keep an avatar no user references.
		if dErr := s.Media.Delete(ctx, avatar.ID); dErr != nil && s.Logger != nil {
			s.Logger.WithError(dErr).WithField("image_id", avatar.ID).Warn("orphan avatar cleanup failed")
		}
		return nil, "", time.Time{}, err
	}
	metrics.UsersRegisteredTotal.Inc()

	s.enqueueWelcomeEmail(ctx, u)

	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

// Login checks email, password and role. All three failure modes collapse
// into the same generic error to avoid user enumeration.
func (s *UserService) Login(ctx context.Context, email, password string, role entity.Role) (*entity.User, string, time.Time, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if u.Role != role {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	u.Password = ""
	return u, token, exp, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Authors lists every user holding the Author role.
func (s *UserService) Authors(ctx context.Context) ([]*entity.User, error) {
	return s.Users.ListByRole(ctx, entity.RoleAuthor)
}

func (s *UserService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Publisher == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name, "Role": string(u.Role)},
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
	}
}
