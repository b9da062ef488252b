package valueobjects

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG    ImageFormat = "jpeg"
	PNG     ImageFormat = "png"
	GIF     ImageFormat = "gif"
	WEBP    ImageFormat = "webp"
	Unknown ImageFormat = "unknown"
)

// DefaultMimeType is declared to the model when the upload does not name an image type.
const DefaultMimeType = "image/jpeg"

var ErrEmptyImage = errors.New("image data cannot be empty")

// ImageData holds uploaded bytes as-is. The format is sniffed for logging only;
// bytes that are not a decodable image are still accepted.
type ImageData struct {
	data     []byte
	mimeType string
	format   ImageFormat
}

func NewImageData(data []byte, mimeType string) (*ImageData, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	return &ImageData{
		data:     data,
		mimeType: normalizeMimeType(mimeType),
		format:   detectFormat(data),
	}, nil
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) MimeType() string {
	return i.mimeType
}

func (i *ImageData) Format() ImageFormat {
	return i.format
}

func (i *ImageData) Size() int {
	return len(i.data)
}

func (i *ImageData) ToBase64() string {
	return base64.StdEncoding.EncodeToString(i.data)
}

func normalizeMimeType(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if !strings.HasPrefix(mimeType, "image/") || mimeType == "image/" {
		return DefaultMimeType
	}
	return mimeType
}

func detectFormat(data []byte) ImageFormat {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Unknown
	}

	switch format {
	case "jpeg":
		return JPEG
	case "png":
		return PNG
	case "gif":
		return GIF
	case "webp":
		return WEBP
	default:
		return Unknown
	}
}
