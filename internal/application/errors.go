package application

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrBlogNotFound       = errors.New("blog not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidFileType    = errors.New("invalid file type, only png, jpg, jpeg and webp are allowed")
	ErrMainImageRequired  = errors.New("main blog image is required")
	ErrUploadFailed       = errors.New("image upload failed")
)
