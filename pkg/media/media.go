// Package media wraps the remote media store behind an upload/delete API.
// The rest of the application only ever sees object identifiers and URLs.
package media

import (
	"context"
	"io"
)

// Image is a reference to a successfully uploaded remote object.
type Image struct {
	ID  string `json:"public_id"`
	URL string `json:"url"`
}

// Uploader is the remote media store. Upload failures are fatal to the
// enclosing operation; Delete is best-effort cleanup.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (Image, error)
	Delete(ctx context.Context, id string) error
}
