package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// GCSStore uploads images into a single bucket under uploads/.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

func (s *GCSStore) Upload(ctx context.Context, r io.Reader, filename, contentType string) (Image, error) {
	if s.client == nil || s.bucket == "" {
		return Image{}, errors.New("media store not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := "uploads/" + uuid.NewString() + ext

	wc := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return Image{}, err
	}
	if err := wc.Close(); err != nil {
		return Image{}, err
	}
	return Image{ID: objectPath, URL: PublicURL(s.bucket, objectPath)}, nil
}

func (s *GCSStore) Delete(ctx context.Context, id string) error {
	if s.client == nil || s.bucket == "" {
		return errors.New("media store not configured")
	}
	return s.client.Bucket(s.bucket).Object(id).Delete(ctx)
}

// PublicURL builds a public URL for an object (assuming public read access or signed URLs)
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

var _ Uploader = (*GCSStore)(nil)
