// Package mimetypes names the picture formats camera clients send.
package mimetypes

import "mime"

type MIME string

const (
	Unknown MIME = "unknown"

	ImageJPEG MIME = "image/jpeg"
	ImagePNG  MIME = "image/png"
	ImageGIF  MIME = "image/gif"
	ImageWEBP MIME = "image/webp"
	ImageHEIC MIME = "image/heic"
	ImageBMP  MIME = "image/bmp"
)

var pictures = map[MIME]struct{}{
	ImageJPEG: {}, ImagePNG: {}, ImageGIF: {}, ImageWEBP: {}, ImageHEIC: {}, ImageBMP: {},
}

// ToPicture maps a detected media type (parameters allowed) to a known
// picture format, or Unknown.
func ToPicture(detected string) MIME {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown
	}
	if _, ok := pictures[MIME(mt)]; ok {
		return MIME(mt)
	}
	return Unknown
}

func (m MIME) IsPicture() bool {
	return m != Unknown
}
