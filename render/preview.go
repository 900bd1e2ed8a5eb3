package render

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Preview returns a terminal rendering of payload using half-block
// characters, two modules per line. Set inverse for dark-on-light terminals.
func Preview(payload string, level Level, inverse bool) (string, error) {
	q, err := qrcode.New(payload, level.recoveryLevel())
	if err != nil {
		return "", fmt.Errorf("preview qr: %w", err)
	}
	return q.ToSmallString(inverse), nil
}

// PlainPNG returns an unstyled black-on-white PNG of payload, size pixels
// square.
func PlainPNG(payload string, level Level, size int) ([]byte, error) {
	return qrcode.Encode(payload, level.recoveryLevel(), size)
}
