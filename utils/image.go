package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
)

const DefaultImageMimeType = "image/jpeg"

var ErrInvalidImage = errors.New("invalid base64 image")

// ImageData is a decoded upload. Base64 is the cleaned payload without any
// data URI header.
type ImageData struct {
	MimeType string
	Base64   string
	Bytes    []byte
}

// ParseImageData accepts raw base64 or "data:<mime>;base64,<data>".
func ParseImageData(s string) (*ImageData, error) {
	s = strings.TrimSpace(s)
	mimeType := DefaultImageMimeType

	if strings.HasPrefix(s, "data:") {
		meta, data, ok := strings.Cut(s, ",")
		if !ok {
			return nil, ErrInvalidImage
		}
		mediaType := strings.TrimPrefix(meta, "data:") // "image/jpeg;base64"
		ct, enc, _ := strings.Cut(mediaType, ";")
		if enc != "base64" {
			return nil, fmt.Errorf("%w: only base64 data URIs are supported", ErrInvalidImage)
		}
		if ct != "" {
			mimeType = ct
		}
		s = data
	}

	// camera payloads are often line-wrapped
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, ErrInvalidImage
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrInvalidImage, mimeType)
	}

	return &ImageData{MimeType: mimeType, Base64: s, Bytes: b}, nil
}

// Extension picks a file extension for the image's content type.
func (img *ImageData) Extension() string {
	switch img.MimeType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(img.MimeType); len(exts) > 0 {
		return exts[0]
	}
	if _, sub, ok := strings.Cut(img.MimeType, "/"); ok {
		return "." + sub
	}
	return ""
}
