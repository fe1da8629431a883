// Package photo turns an arbitrary user photo into the compact JPEG data URI
// sent for identification.
package photo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"

	"github.com/apex/log"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"plant-id/api/internal/util"
)

const (
	DefaultMaxEdge  = 1024
	DefaultQuality  = 80
	DefaultMaxBytes = 20 << 20
	// maxPixels guards against decompression bombs.
	maxPixels = 18_000_000
)

var (
	ErrDecode   = errors.New("could not decode image")
	ErrTooLarge = errors.New("image too large")
)

type Normalizer struct {
	MaxBytes int64
	MaxEdge  int
	Quality  int
}

func New() *Normalizer {
	return &Normalizer{
		MaxBytes: DefaultMaxBytes,
		MaxEdge:  DefaultMaxEdge,
		Quality:  DefaultQuality,
	}
}

// Normalize uses the default limits.
func Normalize(raw []byte) (string, error) {
	return New().Normalize(raw)
}

func NormalizeReader(r io.Reader) (string, error) {
	return New().NormalizeReader(r)
}

func (n *Normalizer) NormalizeReader(r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, n.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return n.Normalize(raw)
}

// Normalize decodes raw, applies the EXIF orientation, fits the longest edge
// into MaxEdge and re-encodes as JPEG. The result is a data:image/jpeg URI.
func (n *Normalizer) Normalize(raw []byte) (string, error) {
	out, err := n.Encode(raw)
	if err != nil {
		return "", err
	}
	return util.MakeDataURL("image/jpeg", out), nil
}

// Encode is Normalize without the data URI wrapping.
func (n *Normalizer) Encode(raw []byte) ([]byte, error) {
	if int64(len(raw)) > n.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, len(raw), n.MaxBytes)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width*cfg.Height > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	orientation := Orientation(raw)
	if orientation != 1 {
		img = Orient(img, orientation)
	}

	b := img.Bounds()
	w, h := TargetSize(b.Dx(), b.Dy(), n.MaxEdge)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	} else {
		draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: n.Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	log.WithFields(log.Fields{
		"format":      format,
		"orientation": orientation,
		"src":         fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"dst":         fmt.Sprintf("%dx%d", w, h),
		"bytes_in":    len(raw),
		"bytes_out":   buf.Len(),
	}).Debug("image normalized")

	return buf.Bytes(), nil
}

// TargetSize fits w x h into maxEdge on the longest side, keeping the aspect
// ratio. Images already within the limit keep their size.
func TargetSize(w, h, maxEdge int) (int, int) {
	long, short := w, h
	if h > w {
		long, short = h, w
	}
	if long <= maxEdge {
		return w, h
	}
	scaled := int(math.Round(float64(short) * float64(maxEdge) / float64(long)))
	if scaled < 1 {
		scaled = 1
	}
	if w >= h {
		return maxEdge, scaled
	}
	return scaled, maxEdge
}
