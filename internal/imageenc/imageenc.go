// Package imageenc turns image files into opaque data-URI strings, the
// reference format used for product images, banners and payment proofs.
package imageenc

import (
	"encoding/base64"
	"net/http"
	"os"
)

// Encode wraps raw image bytes as a data URI. The result is treated as an
// opaque string everywhere downstream.
func Encode(data []byte) string {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Encode(data), nil
}
