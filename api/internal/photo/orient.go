package photo

import (
	"bytes"
	"image"

	"github.com/rwcarlsen/goexif/exif"
)

// Orientation reads the EXIF orientation tag, 1 when absent or unreadable.
func Orientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		return 1
	}
	return v
}

// Orient returns img as it should be displayed for the given EXIF
// orientation. Orientations 5 to 8 swap width and height.
func Orient(img image.Image, orientation int) image.Image {
	if orientation < 2 || orientation > 8 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.RGBA
	if orientation >= 5 {
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(b.Min.X+x, b.Min.Y+y)
			switch orientation {
			case 2: // mirror horizontal
				dst.Set(w-1-x, y, c)
			case 3: // rotate 180
				dst.Set(w-1-x, h-1-y, c)
			case 4: // mirror vertical
				dst.Set(x, h-1-y, c)
			case 5: // transpose
				dst.Set(y, x, c)
			case 6: // rotate 90 clockwise
				dst.Set(h-1-y, x, c)
			case 7: // transverse
				dst.Set(h-1-y, w-1-x, c)
			case 8: // rotate 90 counter-clockwise
				dst.Set(y, w-1-x, c)
			}
		}
	}
	return dst
}
