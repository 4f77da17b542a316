package mimetypes

import (
	"mime"
	"strings"
)

type MIME string

const (
	Unknown        MIME = "application/octet-stream"
	TextPlain      MIME = "text/plain"
	ImagePNG       MIME = "image/png"
	ImageJPEG      MIME = "image/jpeg"
	ImageGIF       MIME = "image/gif"
	ImageWebP      MIME = "image/webp"
	ApplicationPDF MIME = "application/pdf"
)

// Parse strips parameters such as charset from a detected content type.
func Parse(detected string) MIME {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown
	}
	return MIME(mt)
}

func Matches(detected string, expected MIME) bool {
	return Parse(detected) == expected
}

func (m MIME) IsImage() bool {
	return strings.HasPrefix(string(m), "image/")
}
