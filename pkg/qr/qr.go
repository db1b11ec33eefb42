// Package qr handles the identifier-to-URL boundary with the QR
// collaborator. The core only ever produces and consumes the batch
// identifier string; the image itself is an opaque payload.
package qr

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"go-agrichain/pkg/batchid"
)

// Encode builds the scanner deep link a QR code carries, e.g.
// "https://host/app#qr-scanner?batch=B7K2Q9X".
func Encode(baseURL, id string) string {
	return fmt.Sprintf("%s#qr-scanner?batch=%s", baseURL, id)
}

// Decode extracts a batch identifier from scanned text. It accepts
// either an encoded deep link (anything carrying a batch= parameter)
// or a raw identifier in the fixed B+6 alphanumeric format. An empty
// string means the text is not a batch reference.
func Decode(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "?"); i >= 0 && strings.Contains(text, "batch=") {
		if params, err := url.ParseQuery(text[i+1:]); err == nil {
			if id := params.Get("batch"); batchid.Valid(id) {
				return id
			}
		}
		return ""
	}
	if batchid.Valid(text) {
		return text
	}
	return ""
}

// Image renders the deep link for id as a PNG of the given pixel size.
func Image(baseURL, id string, size int) ([]byte, error) {
	return qrcode.Encode(Encode(baseURL, id), qrcode.Medium, size)
}
