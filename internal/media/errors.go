package media

import "errors"

// ErrFileTooLarge is returned when an upload exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file too large")

// ErrUnsupportedType is returned when an upload's MIME type is not allowed.
var ErrUnsupportedType = errors.New("unsupported content type")

// ErrImageDecode is returned when source bytes cannot be decoded as an image.
var ErrImageDecode = errors.New("cannot decode image")

// ErrStorage is returned when the object store rejects or fails an operation.
var ErrStorage = errors.New("object storage failure")
