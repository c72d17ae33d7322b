package media

import (
	"fmt"
	"mime"
	"strings"
)

// allowedContentTypes is a deterministic whitelist of accepted image MIME
// types. It does not rely on OS mime databases.
var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// Validator checks an upload's declared size and MIME type against
// configured limits. It performs no I/O.
type Validator struct {
	maxFileSize int64
}

// NewValidator returns a Validator enforcing the given size limit in bytes.
func NewValidator(maxFileSize int64) Validator {
	return Validator{maxFileSize: maxFileSize}
}

// Validate returns nil when the declared size and content type are
// acceptable. A file exactly at the size limit is valid.
func (v Validator) Validate(sizeBytes int64, contentType string) error {
	if sizeBytes > v.maxFileSize {
		return fmt.Errorf("%w: %d bytes exceeds the %d MiB limit",
			ErrFileTooLarge, sizeBytes, v.maxFileSize>>20)
	}

	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	if _, ok := allowedContentTypes[strings.ToLower(mimeType)]; !ok {
		return fmt.Errorf("%w: %q (allowed: jpeg, jpg, png, webp, gif)",
			ErrUnsupportedType, mimeType)
	}
	return nil
}
