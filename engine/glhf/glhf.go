package glhf

import (
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Init loads the OpenGL function pointers. It must be called once, after a context has been
// made current on the calling thread and before any other function of this package.
func Init() {
	err := gl.Init()
	if err != nil {
		panic(err)
	}
}

// Clear clears the current framebuffer's color and depth buffers.
func Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// binder binds an OpenGL object and remembers what was bound before, so that the previous
// binding can be restored afterwards.
type binder struct {
	restoreLoc uint32
	bindFunc   func(uint32)

	obj uint32

	prev []uint32
}

func (b *binder) bind() *binder {
	var prev int32
	gl.GetIntegerv(b.restoreLoc, &prev)
	b.prev = append(b.prev, uint32(prev))

	if b.prev[len(b.prev)-1] != b.obj {
		b.bindFunc(b.obj)
	}
	return b
}

func (b *binder) restore() *binder {
	if b.prev[len(b.prev)-1] != b.obj {
		b.bindFunc(b.prev[len(b.prev)-1])
	}
	b.prev = b.prev[:len(b.prev)-1]
	return b
}
