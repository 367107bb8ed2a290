package mimetypes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToPicture(t *testing.T) {
	tests := []struct {
		name     string
		detected string
		want     MIME
	}{
		{"JPEG", "image/jpeg", ImageJPEG},
		{"PNG", "image/png", ImagePNG},
		{"WEBP", "image/webp", ImageWEBP},
		{"HEIC", "image/heic", ImageHEIC},
		{"GIF with parameter", "image/gif; charset=binary", ImageGIF},
		{"Plain text", "text/plain; charset=utf-8", Unknown},
		{"Octet stream", "application/octet-stream", Unknown},
		{"Invalid MIME", "not a mime", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPicture(tt.detected)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.want != Unknown, got.IsPicture())
		})
	}
}
