package util

import "github.com/skip2/go-qrcode"

const QRCodeSize = 512

// GenerateQRCode encodes content as a PNG.
func GenerateQRCode(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, QRCodeSize)
}
