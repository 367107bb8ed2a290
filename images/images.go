// Package images handles the base64 image payloads sent by camera clients.
// Images are never transformed, only validated, measured and passed through.
package images

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"toni/domain/mimetypes"
	"toni/errors"

	"github.com/gabriel-vasile/mimetype"
)

const dataURLPrefix = "data:image"

var base64Charset = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)

// Image is a decoded client image. Base64 is the payload without any data-URL prefix.
// MIME is sniffed from the bytes; Unknown payloads are still forwarded.
type Image struct {
	Base64 string
	Size   int
	MIME   mimetypes.MIME
}

// Valid reports whether s looks like a base64 image: either a data URL or a
// bare base64 string.
func Valid(s string) bool {
	return strings.HasPrefix(s, dataURLPrefix) || base64Charset.MatchString(s)
}

// Extract strips a data-URL prefix, keeping the segment after the first comma.
func Extract(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	return strings.Split(s, ",")[1]
}

// Decode validates, extracts and decodes one image field.
func Decode(raw string) (Image, error) {
	if !Valid(raw) {
		return Image{}, errors.ErrInvalidImage
	}
	payload := Extract(raw)
	data, err := decodeBase64(payload)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", errors.ErrInvalidImage, err)
	}
	return Image{
		Base64: payload,
		Size:   len(data),
		MIME:   mimetypes.ToPicture(mimetype.Detect(data).String()),
	}, nil
}

func decodeBase64(payload string) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty payload")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err == nil {
		return data, nil
	}
	// Some clients drop the padding.
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
}
