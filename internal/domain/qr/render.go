package qr

import (
	"bytes"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// Render encodes the request content as a PNG.
func Render(req ImageRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	size := req.Size
	if size == 0 {
		size = DefaultImageSize
	}

	code, err := qrcode.New(req.Content(), qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, code.Image(size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
