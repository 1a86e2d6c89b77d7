package model

import "errors"

const (
	MaxImageSizeBytes = 10 * 1024 * 1024 // 10MB per post image
	ImageMaxWidth     = 1080
	ImageMaxHeight    = 1350
	ImageFolder       = "posts"
	ImageExt          = ".jpg"
	ImageCacheControl = "public, max-age=31536000" // 1 year
)

// Supported image content types for upload validation
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
)

var allowedImageTypes = map[string]struct{}{
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
	ContentTypeGIF:  {},
	ContentTypeWebP: {},
}

// Domain errors for media operations
var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("invalid image type")
)

// UploadResult represents the uploaded object location.
// URL is the public-facing URL, Key the object key inside the bucket.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// IsAllowedImageType reports if the provided content type is supported
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}
