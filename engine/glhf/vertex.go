package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// StreamArray is a vertex array whose attributes are not interleaved: every attribute of the
// shader's vertex format lives in its own buffer (a "stream"). Each stream can be re-uploaded
// on its own without touching the others.
//
// The GPU storage of every stream is allocated once, for cap vertices, and never grows.
//
// Note that you need to Begin a StreamArray before updating it or drawing it. After you're
// done with it, you need to End it.
type StreamArray struct {
	vao           binder
	vbos          []binder
	format        AttrFormat
	cap           int
	primitiveType uint32
}

// NewStreamArray allocates a vertex array object plus one buffer per attribute of the shader's
// vertex format, each sized for cap vertices. The initial data of stream i is taken from
// streams[i] (may be shorter than cap, or missing).
//
// Note, that a StreamArray is specialized for a specific shader and can't be used with another
// shader.
func NewStreamArray(shader *Shader, cap int, streams ...[]float32) (*StreamArray, error) {
	format := shader.VertexFormat()
	if len(streams) > len(format) {
		return nil, errors.Errorf("failed to create stream array: %d streams for %d attributes", len(streams), len(format))
	}
	for i, attr := range format {
		switch attr.Type {
		case Float, Vec2, Vec3, Vec4:
		default:
			panic(errors.New("failed to create stream array: invalid attribute type"))
		}
		if i < len(streams) && len(streams[i]) > cap*attr.Type.Components() {
			return nil, errors.Errorf("failed to create stream array: stream %q holds more than %d vertices", attr.Name, cap)
		}
	}

	sa := &StreamArray{
		primitiveType: gl.TRIANGLES,
		vao: binder{
			restoreLoc: gl.VERTEX_ARRAY_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindVertexArray(obj)
			},
		},
		vbos:   make([]binder, len(format)),
		format: format,
		cap:    cap,
	}

	gl.GenVertexArrays(1, &sa.vao.obj)
	sa.vao.bind()

	for i, attr := range format {
		sa.vbos[i] = binder{
			restoreLoc: gl.ARRAY_BUFFER_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindBuffer(gl.ARRAY_BUFFER, obj)
			},
		}
		vbo := &sa.vbos[i]
		gl.GenBuffers(1, &vbo.obj)
		vbo.bind()

		// allocate the full capacity, then fill what we have
		gl.BufferData(gl.ARRAY_BUFFER, cap*attr.Type.Size(), nil, gl.DYNAMIC_DRAW)
		if i < len(streams) && len(streams[i]) > 0 {
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(streams[i])*SizeOfFloat32, gl.Ptr(streams[i]))
		}

		loc := shader.AttribLocation(attr.Name)
		if loc < 0 {
			println("stream array: attribute not found in shader:", attr.Name)
		} else {
			gl.VertexAttribPointerWithOffset(uint32(loc), int32(attr.Type.Components()), gl.FLOAT, false, 0, 0)
			gl.EnableVertexAttribArray(uint32(loc))
		}
		vbo.restore()
	}

	sa.vao.restore()

	runtime.SetFinalizer(sa, (*StreamArray).delete)

	return sa, nil
}

func (sa *StreamArray) delete() {
	mainthread.CallNonBlock(func() {
		sa.release()
	})
}

func (sa *StreamArray) release() {
	gl.DeleteVertexArrays(1, &sa.vao.obj)
	for i := range sa.vbos {
		gl.DeleteBuffers(1, &sa.vbos[i].obj)
	}
}

// Delete releases all GPU storage right away. The StreamArray must not be used afterwards.
func (sa *StreamArray) Delete() {
	runtime.SetFinalizer(sa, nil)
	sa.release()
	sa.cap = 0
}

// Cap returns the number of vertices every stream has room for.
func (sa *StreamArray) Cap() int {
	return sa.cap
}

// VertexFormat returns the format of the streams, one attribute per stream.
func (sa *StreamArray) VertexFormat() AttrFormat {
	return sa.format
}

// SetStream overwrites stream i, starting at vertex 0, without reallocating its storage.
//
// If data describes more than Cap vertices, this method panics.
func (sa *StreamArray) SetStream(i int, data []float32) {
	components := sa.format[i].Type.Components()
	if len(data) > sa.cap*components {
		panic("set stream: data exceeds capacity")
	}
	if len(data) == 0 {
		// avoid setting 0 bytes of buffer data
		return
	}
	vbo := &sa.vbos[i]
	vbo.bind()
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*SizeOfFloat32, gl.Ptr(data))
	vbo.restore()
}

// SetPrimitiveType changes the primitive used by Draw (gl.TRIANGLES by default).
func (sa *StreamArray) SetPrimitiveType(glPrimitiveType uint32) {
	sa.primitiveType = glPrimitiveType
}

// Draw issues a single non-indexed draw call for the first count vertices.
func (sa *StreamArray) Draw(count int) {
	if count <= 0 {
		return
	}
	if count > sa.cap {
		count = sa.cap
	}
	gl.DrawArrays(sa.primitiveType, 0, int32(count))
}

// Begin binds the vertex array object. Calling this method is necessary before drawing.
func (sa *StreamArray) Begin() {
	sa.vao.bind()
}

// End unbinds the vertex array object and restores the previous one.
func (sa *StreamArray) End() {
	sa.vao.restore()
}
