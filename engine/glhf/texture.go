package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Texture is an OpenGL texture.
type Texture struct {
	tex           binder
	width, height int
	smooth        bool
	mipmapped     bool
}

// NewTexture creates a new texture with the specified width and height with some initial
// pixel values. The pixels must be a sequence of RGBA values (one byte per component), rows
// top to bottom.
//
// With mipmaps set, a full mipmap chain is generated from the initial pixels and minification
// samples between levels.
func NewTexture(width, height int, smooth, mipmaps bool, pixels []uint8) *Texture {
	tex := &Texture{
		tex: binder{
			restoreLoc: gl.TEXTURE_BINDING_2D,
			bindFunc: func(obj uint32) {
				gl.BindTexture(gl.TEXTURE_2D, obj)
			},
		},
		width:     width,
		height:    height,
		mipmapped: mipmaps,
	}

	gl.GenTextures(1, &tex.tex.obj)

	tex.Begin()
	defer tex.End()

	// tightly packed rows, whatever the width
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	var data = gl.Ptr(nil)
	if len(pixels) > 0 {
		data = gl.Ptr(pixels)
	}
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		data,
	)
	if mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	tex.SetSmooth(smooth)
	tex.SetWrapToEdge()
	runtime.SetFinalizer(tex, (*Texture).delete)

	return tex
}

func (t *Texture) delete() {
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &t.tex.obj)
	})
}

// Delete releases the GPU storage right away. The Texture must not be used afterwards.
func (t *Texture) Delete() {
	runtime.SetFinalizer(t, nil)
	gl.DeleteTextures(1, &t.tex.obj)
	t.tex.obj = 0
}

// ID returns the OpenGL ID of this Texture.
func (t *Texture) ID() uint32 {
	return t.tex.obj
}

// Width returns the width of the Texture in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the height of the Texture in pixels.
func (t *Texture) Height() int {
	return t.height
}

// SetSmooth sets whether the Texture should be drawn "smoothly" or "pixely".
//
// It affects how the Texture is drawn when zoomed. Smooth interpolates between the neighbour
// pixels, while pixely always chooses the nearest pixel. The Texture must be bound.
func (t *Texture) SetSmooth(smooth bool) {
	t.smooth = smooth
	switch {
	case smooth && t.mipmapped:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	case smooth:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	case t.mipmapped:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	default:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}
}

// SetWrapToEdge clamps sampling to the border texels, so glyphs at the atlas edge do not
// bleed in pixels from the opposite side.
func (t *Texture) SetWrapToEdge() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// Smooth returns whether the Texture is set to be drawn "smooth" or "pixely".
func (t *Texture) Smooth() bool {
	return t.smooth
}

// Begin binds the Texture. This is necessary before using the Texture.
func (t *Texture) Begin() {
	t.tex.bind()
}

// End unbinds the Texture and restores the previous one.
func (t *Texture) End() {
	t.tex.restore()
}

// BeginUnit makes the given texture unit active and binds the Texture to it.
func (t *Texture) BeginUnit(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	t.Begin()
}
