package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// Generate renders content as a PNG QR code, used for printable talk posters
// carrying the join link.
func Generate(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("no content to encode")
	}
	png, err := qrcode.Encode(content, qrcode.Medium, defaultSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
