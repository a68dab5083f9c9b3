package recipe

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	dataURIPrefix   = "data:"
	base64Marker    = ";base64,"
	magicNumberSeek = 512
)

// allowedImageTypes lists the simple MIME types we accept.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var mimeTypeSuffix = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var (
	ErrNotDataURI          = errors.New("expected a base64 data URI")
	ErrUnsupportedMimeType = errors.New("unsupported mime type")
)

type UploadedImage struct {
	Size     int64
	Data     []byte
	Suffix   string
	MimeType string
}

// ParseDataURI decodes a "data:image/<ext>;base64,<payload>" string into the
// raw image bytes. The MIME type is taken from the decoded content, not from
// the URI label.
func ParseDataURI(uri string) (*UploadedImage, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return nil, ErrNotDataURI
	}
	idx := strings.Index(uri, base64Marker)
	if idx == -1 {
		return nil, ErrNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(uri[idx+len(base64Marker):])
	if err != nil {
		return nil, fmt.Errorf("decoding image payload: %w", err)
	}

	contentType := http.DetectContentType(data[:min(len(data), magicNumberSeek)])
	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("mime type %q: %w", contentType, ErrUnsupportedMimeType)
	}

	return &UploadedImage{
		Size:     int64(len(data)),
		MimeType: contentType,
		Suffix:   mimeTypeSuffix[contentType],
		Data:     data,
	}, nil
}
