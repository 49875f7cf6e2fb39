package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Header sizes of the MU texture wrappers.
const (
	ozjHeader = 24 // followed by JPEG
	oztHeader = 4  // followed by TGA
)

// LoadTexture reads an OZJ, OZT, JPEG, TGA or PNG file as NRGBA.
func LoadTexture(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	img, err := Decode(raw, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("texture: %s: %w", path, err)
	}
	return img, nil
}

// Decode strips the wrapper header implied by ext and decodes the payload with
// the codec that ext names. TGA has no magic number, so content is never sniffed.
func Decode(raw []byte, ext string) (*image.NRGBA, error) {
	var (
		data   = raw
		decode func(io.Reader) (image.Image, error)
	)
	switch strings.ToLower(ext) {
	case ".ozj":
		if len(raw) <= ozjHeader {
			return nil, fmt.Errorf("ozj of %d bytes is too short", len(raw))
		}
		data, decode = raw[ozjHeader:], jpeg.Decode
	case ".ozt":
		if len(raw) <= oztHeader {
			return nil, fmt.Errorf("ozt of %d bytes is too short", len(raw))
		}
		data, decode = raw[oztHeader:], tga.Decode
	case ".jpg", ".jpeg":
		decode = jpeg.Decode
	case ".tga":
		decode = tga.Decode
	case ".png":
		decode = png.Decode
	default:
		return nil, fmt.Errorf("unknown extension %q", ext)
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return toNRGBA(img), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
