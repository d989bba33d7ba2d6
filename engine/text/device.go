// Package text draws strings with bitmap fonts. Fonts are loaded from a BMFont descriptor
// plus its atlas image, strings are laid out into one vertex buffer per Entity, and every
// Entity is drawn with a single draw call.
//
// All GPU work goes through a Device; gltext provides the OpenGL one. Everything in this
// package must be called from the thread that owns the graphics context.
package text

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Device creates the GPU objects the text pipeline needs.
type Device interface {
	// NewTexture uploads a tightly packed RGBA image. The image is not retained.
	NewTexture(img *image.NRGBA) (Texture, error)
	// NewVertexStreams allocates a position stream (3 floats per vertex) and a UV stream
	// (2 floats per vertex) with room for capacity vertices and fills them from the start.
	NewVertexStreams(positions, uvs []float32, capacity int) (VertexStreams, error)
	// NewPipeline compiles and links the text shader program.
	NewPipeline() (Pipeline, error)
	// PushOverlayState enables alpha blending and disables depth testing. The returned
	// function restores the previous state.
	PushOverlayState() (restore func())
}

// Texture is an uploaded atlas.
type Texture interface {
	Width() int
	Height() int
	Bind(unit uint32)
	Unbind()
	Delete()
}

// VertexStreams is the GPU storage of a GeometryBuffer. Upload writes from vertex 0 and never
// reallocates; callers keep the data within the allocated capacity.
type VertexStreams interface {
	Upload(positions, uvs []float32)
	Draw(vertexCount int)
	Delete()
}

// Pipeline is the compiled text shader program. Setters are only valid between Begin and End.
type Pipeline interface {
	Begin()
	End()
	SetProjection(projection mgl32.Mat4)
	SetModel(model mgl32.Mat4)
	SetTint(tint mgl32.Vec3)
	SetOpacity(opacity float32)
	SetSampler(unit int32)
	Delete()
}
