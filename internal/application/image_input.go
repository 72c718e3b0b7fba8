package application

import "io"

// ImageInput carries an uploaded file from the transport into the workflow layer.
type ImageInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpg":  {},
	"image/jpeg": {},
	"image/webp": {},
}

// AllowedImageType reports whether the MIME type is on the upload allow-list.
func AllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// validateImageTypes gates every provided image before any upload is attempted.
func validateImageTypes(images ...*ImageInput) error {
	for _, img := range images {
		if img == nil {
			continue
		}
		if !AllowedImageType(img.ContentType) {
			return ErrInvalidFileType
		}
	}
	return nil
}
