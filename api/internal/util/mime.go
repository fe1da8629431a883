package util

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"
)

var ErrNotDataURL = errors.New("not a base64 data URL")

// SniffImageMIME guesses the MIME type of raw image bytes.
func SniffImageMIME(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8 {
		return "image/jpeg"
	}
	if len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A {
		return "image/png"
	}
	if len(b) > 0 {
		return http.DetectContentType(b)
	}
	return "application/octet-stream"
}

// MakeDataURL builds data:<mime>;base64,<payload>.
func MakeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func IsDataURL(s string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "data:")
}

func IsHTTPURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// DecodeDataURL splits data:<mime>;base64,<payload> and decodes the payload.
// Standard and URL-safe alphabets are both accepted.
func DecodeDataURL(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	if !IsDataURL(s) {
		return nil, "", ErrNotDataURL
	}
	idx := strings.IndexByte(s, ',')
	if idx < 0 {
		return nil, "", ErrNotDataURL
	}
	meta := s[len("data:"):idx]
	if !strings.HasSuffix(strings.ToLower(meta), ";base64") {
		return nil, "", ErrNotDataURL
	}
	mime := strings.TrimSpace(meta[:len(meta)-len(";base64")])
	data, err := DecodeBase64(s[idx+1:])
	if err != nil {
		return nil, "", err
	}
	return data, mime, nil
}

func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}
	if b2, err2 := base64.URLEncoding.DecodeString(s); err2 == nil {
		return b2, nil
	}
	return nil, err
}

// Truncate cuts s to at most n bytes, never inside a UTF-8 sequence, and
// marks the cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
