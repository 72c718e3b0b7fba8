package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/pkg/media"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

// GetByID omits the password hash, like the SQL projection it stands in for.
func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	cp.Password = ""
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role entity.Role) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			cp := *u
			cp.Password = ""
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeBlogRepo struct {
	mu    sync.Mutex
	blogs map[string]*entity.Blog
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: map[string]*entity.Blog{}}
}

func (r *fakeBlogRepo) Create(_ context.Context, b *entity.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	r.blogs[b.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) GetByID(_ context.Context, id string) (*entity.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBlogRepo) ListPublished(_ context.Context) ([]*entity.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Blog
	for _, b := range r.blogs {
		if b.Published {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) ListByCreator(_ context.Context, userID string) ([]*entity.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Blog
	for _, b := range r.blogs {
		if b.CreatedBy == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) Update(_ context.Context, b *entity.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	r.blogs[b.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.blogs, id)
	return nil
}

func (r *fakeBlogRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blogs)
}

// fakeUploader records uploads and deletes; failFor makes named files fail.
type fakeUploader struct {
	mu      sync.Mutex
	uploads []media.Image
	deletes []string
	failFor map[string]bool
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{failFor: map[string]bool{}}
}

func (f *fakeUploader) Upload(_ context.Context, _ io.Reader, filename, _ string) (media.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[filename] {
		return media.Image{}, errors.New("upload rejected")
	}
	img := media.Image{
		ID:  "uploads/" + filename,
		URL: fmt.Sprintf("https://cdn.example.com/uploads/%s", filename),
	}
	f.uploads = append(f.uploads, img)
	return img, nil
}

func (f *fakeUploader) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeUploader) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

func (f *fakeUploader) deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}

var _ media.Uploader = (*fakeUploader)(nil)

func pngInput(filename string) *ImageInput {
	return &ImageInput{
		Reader:      bytesReader(),
		Filename:    filename,
		ContentType: "image/png",
	}
}

func bytesReader() io.Reader {
	return io.LimitReader(rand{}, 16)
}

// rand is a trivial deterministic reader for test payloads.
type rand struct{}

func (rand) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(i)
	}
	return len(p), nil
}
