package keys

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

var ErrInvalidQRSize = errors.New("invalid size: must be between 128 and 2048")

// QRCode renders key as a PNG. A size of zero uses the default.
func QRCode(key string, size int) ([]byte, error) {
	if size == 0 {
		size = defaultQRSize
	}
	if size < 128 || size > 2048 {
		return nil, ErrInvalidQRSize
	}
	if key == "" {
		return nil, errors.New("empty key")
	}

	qr, err := qrcode.New(key, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return qr.PNG(size)
}
