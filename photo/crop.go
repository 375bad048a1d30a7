// Package photo prepares photos before upload.
package photo

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/raushankrgupta/fitly-wardrobe/api"
)

// JPEGQuality is used when re-encoding cropped photos.
const JPEGQuality = 90

// CropSquare center-crops the image to a square and scales it down to maxSide when larger.
// The result is always JPEG.
func CropSquare(r io.Reader, maxSide int) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	if side == 0 {
		return nil, fmt.Errorf("decode image: empty bounds")
	}
	cropped := imaging.CropCenter(img, side, side)
	if maxSide > 0 && side > maxSide {
		cropped = imaging.Resize(cropped, maxSide, maxSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// CropFile returns a cropped copy of an upload, renamed to .jpg.
func CropFile(f api.File, maxSide int) (api.File, error) {
	data, err := CropSquare(bytes.NewReader(f.Data), maxSide)
	if err != nil {
		return api.File{}, fmt.Errorf("%s: %w", f.Name, err)
	}
	name := strings.TrimSuffix(f.Name, filepath.Ext(f.Name)) + ".jpg"
	return api.File{Name: name, ContentType: "image/jpeg", Data: data}, nil
}
