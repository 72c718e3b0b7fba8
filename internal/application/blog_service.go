package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/internal/metrics"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
	"github.com/oksasatya/go-blog-api/pkg/media"
)

const (
	publishedCacheKey = "blogs:published"
	publishedCacheTTL = time.Minute
)

// BlogService implements the blog CRUD workflows.
type BlogService struct {
	Blogs   repository.BlogRepository
	Media   media.Uploader
	Redis   *redis.Client
	ES      *elasticsearch.Client
	ESIndex string
	Logger  *logrus.Logger
}

func NewBlogService(blogs repository.BlogRepository, uploader media.Uploader, rdb *redis.Client, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *BlogService {
	return &BlogService{Blogs: blogs, Media: uploader, Redis: rdb, ES: es, ESIndex: esIndex, Logger: logger}
}

type CreateBlogInput struct {
	Title              string
	Intro              string
	Category           string
	ParaOneTitle       string
	ParaOneDescription string
	ParaTwoTitle       string
	ParaTwoDescription string
	Published          bool
	MainImage          *ImageInput
	ParaOneImage       *ImageInput
	ParaTwoImage       *ImageInput
}

// Create uploads all provided images concurrently, then persists the blog.
// If any upload fails, nothing is persisted and the uploads that did succeed
// are deleted best-effort. Author identity is snapshotted from the caller.
func (s *BlogService) Create(ctx context.Context, author *entity.User, in CreateBlogInput) (*entity.Blog, error) {
	if in.MainImage == nil {
		return nil, ErrMainImageRequired
	}
	if err := validateImageTypes(in.MainImage, in.ParaOneImage, in.ParaTwoImage); err != nil {
		return nil, err
	}

	var mainImg, paraOneImg, paraTwoImg media.Image
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mainImg, err = s.upload(gctx, in.MainImage)
		return err
	})
	if in.ParaOneImage != nil {
		g.Go(func() error {
			var err error
			paraOneImg, err = s.upload(gctx, in.ParaOneImage)
			return err
		})
	}
	if in.ParaTwoImage != nil {
		g.Go(func() error {
			var err error
			paraTwoImg, err = s.upload(gctx, in.ParaTwoImage)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.cleanupImages(ctx, mainImg.ID, paraOneImg.ID, paraTwoImg.ID)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	b := &entity.Blog{
		Title:              in.Title,
		Intro:              in.Intro,
		Category:           in.Category,
		ParaOneTitle:       in.ParaOneTitle,
		ParaOneDescription: in.ParaOneDescription,
		ParaTwoTitle:       in.ParaTwoTitle,
		ParaTwoDescription: in.ParaTwoDescription,
		MainImage:          entity.Image{ID: mainImg.ID, URL: mainImg.URL},
		CreatedBy:          author.ID,
		AuthorName:         author.Name,
		AuthorAvatar:       author.Avatar.URL,
		Published:          in.Published,
	}
	if in.ParaOneImage != nil {
		b.ParaOneImage = &entity.Image{ID: paraOneImg.ID, URL: paraOneImg.URL}
	}
	if in.ParaTwoImage != nil {
		b.ParaTwoImage = &entity.Image{ID: paraTwoImg.ID, URL: paraTwoImg.URL}
	}

	if err := s.Blogs.Create(ctx, b); err != nil {
		s.cleanupImages(ctx, mainImg.ID, paraOneImg.ID, paraTwoImg.ID)
		return nil, err
	}
	metrics.BlogsCreatedTotal.Inc()

	s.invalidatePublishedCache(ctx)
	s.indexBlog(ctx, b)
	return b, nil
}

// UpdateBlogInput applies a partial patch; nil fields are left untouched.
type UpdateBlogInput struct {
	Title              *string
	Intro              *string
	Category           *string
	ParaOneTitle       *string
	ParaOneDescription *string
	ParaTwoTitle       *string
	ParaTwoDescription *string
	Published          *bool
	MainImage          *ImageInput
	ParaOneImage       *ImageInput
	ParaTwoImage       *ImageInput
}

// Update patches text fields and replaces images. All provided images are
// MIME-checked before any remote call; replacements then run sequentially,
// deleting the old object before uploading the new one.
func (s *BlogService) Update(ctx context.Context, id string, in UpdateBlogInput) (*entity.Blog, error) {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	if err := validateImageTypes(in.MainImage, in.ParaOneImage, in.ParaTwoImage); err != nil {
		return nil, err
	}

	applyIf(&b.Title, in.Title)
	applyIf(&b.Intro, in.Intro)
	applyIf(&b.Category, in.Category)
	applyIf(&b.ParaOneTitle, in.ParaOneTitle)
	applyIf(&b.ParaOneDescription, in.ParaOneDescription)
	applyIf(&b.ParaTwoTitle, in.ParaTwoTitle)
	applyIf(&b.ParaTwoDescription, in.ParaTwoDescription)
	if in.Published != nil {
		b.Published = *in.Published
	}

	if in.MainImage != nil {
		img, err := s.replaceImage(ctx, b.MainImage.ID, in.MainImage)
		if err != nil {
			return nil, err
		}
		b.MainImage = entity.Image{ID: img.ID, URL: img.URL}
	}
	if in.ParaOneImage != nil {
		oldID := ""
		if b.ParaOneImage != nil {
			oldID = b.ParaOneImage.ID
		}
		img, err := s.replaceImage(ctx, oldID, in.ParaOneImage)
		if err != nil {
			return nil, err
		}
		b.ParaOneImage = &entity.Image{ID: img.ID, URL: img.URL}
	}
	if in.ParaTwoImage != nil {
		oldID := ""
		if b.ParaTwoImage != nil {
			oldID = b.ParaTwoImage.ID
		}
		img, err := s.replaceImage(ctx, oldID, in.ParaTwoImage)
		if err != nil {
			return nil, err
		}
		b.ParaTwoImage = &entity.Image{ID: img.ID, URL: img.URL}
	}

	if err := s.Blogs.Update(ctx, b); err != nil {
		return nil, err
	}
	s.invalidatePublishedCache(ctx)
	s.indexBlog(ctx, b)
	return b, nil
}

// Delete removes the blog row and then releases its remote images best-effort.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBlogNotFound
		}
		return err
	}
	if err := s.Blogs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBlogNotFound
		}
		return err
	}
	s.cleanupImages(ctx, b.RemoteImageIDs()...)
	s.invalidatePublishedCache(ctx)
	s.deleteIndexedBlog(ctx, id)
	return nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*entity.Blog, error) {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListPublished returns every published blog, served from a short-lived
// Redis cache when available.
func (s *BlogService) ListPublished(ctx context.Context) ([]*entity.Blog, error) {
	if s.Redis != nil {
		var cached []*entity.Blog
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, publishedCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	blogs, err := s.Blogs.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, publishedCacheKey, blogs, publishedCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("published cache set failed")
		}
	}
	return blogs, nil
}

func (s *BlogService) ListByAuthor(ctx context.Context, userID string) ([]*entity.Blog, error) {
	return s.Blogs.ListByCreator(ctx, userID)
}

func (s *BlogService) upload(ctx context.Context, in *ImageInput) (media.Image, error) {
	img, err := s.Media.Upload(ctx, in.Reader, in.Filename, in.ContentType)
	if err != nil {
		metrics.MediaUploadsTotal.WithLabelValues("error").Inc()
		return media.Image{}, err
	}
	metrics.MediaUploadsTotal.WithLabelValues("ok").Inc()
	return img, nil
}

// replaceImage deletes the old remote object (best-effort) and uploads the new one.
func (s *BlogService) replaceImage(ctx context.Context, oldID string, in *ImageInput) (media.Image, error) {
	if oldID != "" {
		s.cleanupImages(ctx, oldID)
	}
	img, err := s.upload(ctx, in)
	if err != nil {
		return media.Image{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return img, nil
}

func (s *BlogService) cleanupImages(ctx context.Context, ids ...string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		metrics.MediaDeletesTotal.Inc()
		if err := s.Media.Delete(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("image_id", id).Warn("remote image delete failed")
		}
	}
}

func (s *BlogService) invalidatePublishedCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, publishedCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("published cache invalidation failed")
	}
}

func (s *BlogService) indexBlog(ctx context.Context, b *entity.Blog) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          b.ID,
		"title":       b.Title,
		"intro":       b.Intro,
		"category":    b.Category,
		"author_name": b.AuthorName,
		"published":   b.Published,
		"created_at":  b.CreatedAt.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: b.ID, Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("blog_id", b.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("blog_id", b.ID).Warn("es index response error")
	}
}

func (s *BlogService) deleteIndexedBlog(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("blog_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match query over published blogs.
func (s *BlogService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "intro", "category"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"published": true},
				},
			},
		},
		"size": size,
	}
	body, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func applyIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
