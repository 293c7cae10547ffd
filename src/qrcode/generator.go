package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	maxSize     = 1024
)

// PNG encodes data as a QR code image. size is clamped to a sane range.
func PNG(data string, size int) ([]byte, error) {
	if data == "" {
		return nil, fmt.Errorf("qrcode: empty content")
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return qrcode.Encode(data, qrcode.Medium, size)
}

// ProjectLink is the client portal page a project QR code points at.
func ProjectLink(baseURL, projectID string) string {
	return fmt.Sprintf("%s/client/projects/%s", baseURL, projectID)
}
