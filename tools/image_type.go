package tools

import "bytes"

type ImageType string

const (
	ImageTypePNG     ImageType = "png"
	ImageTypeJPEG    ImageType = "jpeg"
	ImageTypeWEBP    ImageType = "webp"
	ImageTypeUnknown ImageType = "unknown"
)

func (t ImageType) String() string {
	return string(t)
}

func (t ImageType) ContentType() string {
	switch t {
	case ImageTypePNG:
		return "image/png"
	case ImageTypeJPEG:
		return "image/jpeg"
	case ImageTypeWEBP:
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// DetectImageType sniffs magic bytes.
func DetectImageType(b []byte) ImageType {
	switch {
	case bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")):
		return ImageTypePNG
	case bytes.HasPrefix(b, []byte{0xFF, 0xD8, 0xFF}):
		return ImageTypeJPEG
	case len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return ImageTypeWEBP
	default:
		return ImageTypeUnknown
	}
}
