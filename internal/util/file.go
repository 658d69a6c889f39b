package util

import (
	"bytes"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SniffImage reads the head of r to detect its MIME type and returns a reader that
// replays the consumed bytes. Non-image content yields ErrInvalidImage.
func SniffImage(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	if !IsImage(mtype.String()) {
		return mtype.String(), nil, ErrInvalidImage
	}
	return mtype.String(), io.MultiReader(bytes.NewReader(head), r), nil
}

// ExtensionFor returns the canonical file extension for a MIME type, including the dot.
func ExtensionFor(mimeType string) string {
	return mimetype.Lookup(mimeType).Extension()
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeImage)
}
