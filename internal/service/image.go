package service

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const base64Separator = ";base64,"

var allowedImageFormats = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
}

// DecodedImage is the result of decoding a data-URI image payload.
// Persisting the bytes is the caller's concern.
type DecodedImage struct {
	Name        string
	ContentType string
	Data        []byte
}

// DecodeBase64Image decodes a `data:image/<fmt>;base64,<data>` string into
// binary content plus an inferred file name. The format must be one of
// jpeg, jpg, png or gif.
func DecodeBase64Image(data string) (*DecodedImage, error) {
	if !strings.HasPrefix(data, "data:image") {
		return nil, ErrInvalidImageEncoding
	}

	parts := strings.Split(data, base64Separator)
	if len(parts) != 2 {
		return nil, ErrInvalidImageEncoding
	}

	format := parts[0][strings.LastIndex(parts[0], "/")+1:]
	if !allowedImageFormats[format] {
		return nil, ErrUnsupportedImageFormat
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrInvalidImageData
	}

	contentType := "image/" + format
	if format == "jpg" {
		contentType = "image/jpeg"
	}

	return &DecodedImage{
		Name:        fmt.Sprintf("photo.%s", format),
		ContentType: contentType,
		Data:        decoded,
	}, nil
}
