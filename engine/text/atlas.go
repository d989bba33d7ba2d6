package text

import (
	"image"

	"github.com/memmaker/bitmaptext/engine/bmfont"
	"github.com/pkg/errors"
)

// AtlasTexture is the glyph atlas of a font, living on the GPU only.
type AtlasTexture struct {
	texture       Texture
	width, height int
}

// LoadAtlas decodes the image at path and uploads it. The decoded pixels are dropped as soon
// as the upload is done.
func LoadAtlas(dev Device, path string) (*AtlasTexture, error) {
	img, err := bmfont.LoadAtlasImage(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: errors.Cause(err)}
	}
	return NewAtlas(dev, img)
}

// NewAtlas uploads an already decoded atlas.
func NewAtlas(dev Device, img *image.NRGBA) (*AtlasTexture, error) {
	texture, err := dev.NewTexture(img)
	if err != nil {
		return nil, errors.Wrap(err, "upload atlas")
	}
	return &AtlasTexture{
		texture: texture,
		width:   img.Bounds().Dx(),
		height:  img.Bounds().Dy(),
	}, nil
}

// Width returns the atlas width in pixels, 0 for a nil atlas.
func (a *AtlasTexture) Width() int {
	if a == nil {
		return 0
	}
	return a.width
}

// Height returns the atlas height in pixels, 0 for a nil atlas.
func (a *AtlasTexture) Height() int {
	if a == nil {
		return 0
	}
	return a.height
}

// Valid reports whether there is a texture to sample from.
func (a *AtlasTexture) Valid() bool {
	return a != nil && a.texture != nil
}

// Texture returns the GPU handle, nil once deleted.
func (a *AtlasTexture) Texture() Texture {
	if a == nil {
		return nil
	}
	return a.texture
}

func (a *AtlasTexture) Bind(unit uint32) {
	a.texture.Bind(unit)
}

func (a *AtlasTexture) Unbind() {
	a.texture.Unbind()
}

// Delete frees the GPU texture. Safe to call more than once.
func (a *AtlasTexture) Delete() {
	if !a.Valid() {
		return
	}
	a.texture.Delete()
	a.texture = nil
}
