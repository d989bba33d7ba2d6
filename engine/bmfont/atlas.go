package bmfont

import (
	"image"
	_ "image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

var ErrEmptyAtlas = errors.New("atlas image has no pixels")

// LoadAtlasImage decodes the atlas image at path.
func LoadAtlasImage(path string) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open atlas %s", path)
	}
	defer file.Close()
	img, err := DecodeAtlas(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decode atlas %s", path)
	}
	return img, nil
}

// DecodeAtlas decodes an image into tightly packed 8-bit RGBA, rows top to bottom, origin at
// (0, 0). Pixels keep straight (non-premultiplied) alpha, which is what the blend function
// of the text pass expects.
func DecodeAtlas(r io.Reader) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyAtlas
	}
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) && nrgba.Stride == 4*bounds.Dx() {
		return nrgba, nil
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	return nrgba, nil
}
