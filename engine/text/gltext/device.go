// Package gltext implements text.Device with OpenGL 3.3 core through engine/glhf.
//
// All methods must be called on the thread that owns the GL context.
package gltext

import (
	_ "embed"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/bitmaptext/engine/glhf"
	"github.com/memmaker/bitmaptext/engine/text"
	"github.com/memmaker/bitmaptext/engine/util"
	"github.com/pkg/errors"
)

var (
	//go:embed shader/text.vert
	textVertexShaderSource string

	//go:embed shader/text.frag
	textFragmentShaderSource string
)

var vertexFormat = glhf.AttrFormat{
	{Name: "position", Type: glhf.Vec3},
	{Name: "texCoord", Type: glhf.Vec2},
}

const (
	uniformProjection = iota
	uniformModel
	uniformTint
	uniformOpacity
	uniformAtlas
)

var uniformFormat = glhf.AttrFormat{
	uniformProjection: {Name: "projection", Type: glhf.Mat4},
	uniformModel:      {Name: "model", Type: glhf.Mat4},
	uniformTint:       {Name: "tint", Type: glhf.Vec3},
	uniformOpacity:    {Name: "opacity", Type: glhf.Float},
	uniformAtlas:      {Name: "atlas", Type: glhf.Int},
}

// Device creates GL objects for the text package. The text shader is compiled on the first
// NewPipeline call and shared with the vertex streams, which are bound to its attribute
// locations.
type Device struct {
	// SmoothAtlas selects linear filtering (with mipmaps) for atlases; pixel fonts look
	// better with it off.
	SmoothAtlas bool

	shader *glhf.Shader
}

func NewDevice() *Device {
	return &Device{SmoothAtlas: true}
}

func (d *Device) NewTexture(img *image.NRGBA) (text.Texture, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, errors.Errorf("cannot upload a %dx%d texture", w, h)
	}
	texture := glhf.NewTexture(w, h, d.SmoothAtlas, d.SmoothAtlas, packedPixels(img))
	if code := glhf.CheckError(); code != 0 {
		texture.Delete()
		return nil, errors.Errorf("texture upload failed with GL error 0x%x", code)
	}
	util.LogGlInfo(fmt.Sprintf("uploaded atlas texture %d (%dx%d)", texture.ID(), w, h))
	return &atlasTexture{texture: texture}, nil
}

// packedPixels returns the pixels of img with rows of exactly 4*width bytes.
func packedPixels(img *image.NRGBA) []uint8 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	rowLen := 4 * w
	if img.Stride == rowLen && len(img.Pix) == rowLen*h {
		return img.Pix
	}
	pixels := make([]uint8, 0, rowLen*h)
	for y := 0; y < h; y++ {
		start := y * img.Stride
		pixels = append(pixels, img.Pix[start:start+rowLen]...)
	}
	return pixels
}

func (d *Device) NewVertexStreams(positions, uvs []float32, capacity int) (text.VertexStreams, error) {
	shader, err := d.textShader()
	if err != nil {
		return nil, err
	}
	streams, err := glhf.NewStreamArray(shader, capacity, positions, uvs)
	if err != nil {
		return nil, err
	}
	return &vertexStreams{streams: streams}, nil
}

func (d *Device) NewPipeline() (text.Pipeline, error) {
	shader, err := d.textShader()
	if err != nil {
		return nil, err
	}
	return &pipeline{device: d, shader: shader}, nil
}

func (d *Device) PushOverlayState() func() {
	return glhf.PushOverlay()
}

func (d *Device) textShader() (*glhf.Shader, error) {
	if d.shader != nil {
		return d.shader, nil
	}
	shader, err := glhf.NewShader(vertexFormat, uniformFormat, textVertexShaderSource, textFragmentShaderSource)
	if err != nil {
		util.LogGlError(fmt.Sprintf("text shader: %v", err))
		return nil, errors.Wrap(err, "compile text shader")
	}
	d.shader = shader
	return shader, nil
}

type atlasTexture struct {
	texture *glhf.Texture
}

func (t *atlasTexture) Width() int  { return t.texture.Width() }
func (t *atlasTexture) Height() int { return t.texture.Height() }

func (t *atlasTexture) Bind(unit uint32) {
	t.texture.BeginUnit(unit)
}

func (t *atlasTexture) Unbind() {
	t.texture.End()
}

func (t *atlasTexture) Delete() {
	t.texture.Delete()
}

type vertexStreams struct {
	streams *glhf.StreamArray
}

// Upload overwrites both streams from vertex 0; the vertex array does not need to be bound.
func (v *vertexStreams) Upload(positions, uvs []float32) {
	v.streams.SetStream(0, positions)
	v.streams.SetStream(1, uvs)
}

func (v *vertexStreams) Draw(vertexCount int) {
	v.streams.Begin()
	v.streams.Draw(vertexCount)
	v.streams.End()
}

func (v *vertexStreams) Delete() {
	v.streams.Delete()
}

type pipeline struct {
	device *Device
	shader *glhf.Shader
}

func (p *pipeline) Begin() { p.shader.Begin() }
func (p *pipeline) End()   { p.shader.End() }

func (p *pipeline) SetProjection(m mgl32.Mat4) {
	p.shader.SetUniformAttr(uniformProjection, m)
}

func (p *pipeline) SetModel(m mgl32.Mat4) {
	p.shader.SetUniformAttr(uniformModel, m)
}

func (p *pipeline) SetTint(c mgl32.Vec3) {
	p.shader.SetUniformAttr(uniformTint, c)
}

func (p *pipeline) SetOpacity(opacity float32) {
	p.shader.SetUniformAttr(uniformOpacity, opacity)
}

func (p *pipeline) SetSampler(unit int32) {
	p.shader.SetUniformAttr(uniformAtlas, unit)
}

// Delete frees the shader. Vertex streams created from it must be deleted first.
func (p *pipeline) Delete() {
	if p.device.shader == p.shader {
		p.device.shader = nil
	}
	p.shader.Delete()
}
