// Package qr encodes verification URLs into raster QR code images.
package qr

import (
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

// DefaultSize is the pixel edge length of generated QR codes. The code is
// scaled down when embedded into the certificate document, so it is
// generated larger than its embedded size and with the highest error
// correction level to stay scannable.
const DefaultSize = 256

// Encode returns a PNG image of a QR code carrying the passed content.
func Encode(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(content, qrcode.Highest, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode qr code")
	}
	return png, nil
}
