// Package images validates, stores and locates product images.
package images

import (
	"context"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jrsteele09/courier-admin/internal/errors"
)

// MaxSize is the largest accepted image, 5 MiB.
const MaxSize = 5 * 1024 * 1024

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// File is an uploaded file as received from a form.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Image is a stored product image.
type Image struct {
	ProductID   string
	ContentType string
	Data        []byte
}

type Store interface {
	// Upload stores the image of a product and returns the URL it can be fetched from.
	Upload(ctx context.Context, productID string, file File, contentType string) (string, error)
	URL(productID string) string
	Delete(ctx context.Context, productID string) error
	Fetch(ctx context.Context, productID string) (*Image, error)
}

// Validate sniffs the file content and returns its MIME type. The declared
// content type of the upload is not trusted.
func Validate(file File) (string, error) {
	detected := mimetype.Detect(file.Data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", errors.Wrapf(errors.ErrNotAnImage, "[images Validate] %s is %s", file.Name, detected.String())
	}
	if len(file.Data) > MaxSize {
		return "", errors.Wrapf(errors.ErrImageTooLarge, "[images Validate] %s is %d bytes", file.Name, len(file.Data))
	}
	if !slices.ContainsFunc(allowedTypes, detected.Is) {
		return "", errors.Wrapf(errors.ErrUnsupportedImageType, "[images Validate] %s is %s", file.Name, detected.String())
	}
	return detected.String(), nil
}
