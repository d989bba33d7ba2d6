package text

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/bitmaptext/engine/util"
	"github.com/pkg/errors"
)

// Context is the render state shared by all text draws of a session: the Device, the text
// shader pipeline and the projection. The host owns it and passes it to every draw.
type Context struct {
	device     Device
	pipeline   Pipeline
	projection mgl32.Mat4
	width      int
	height     int
}

// NewContext compiles the text pipeline and sets up a pixel projection for a viewport of
// width x height, origin top-left, y pointing down. A graphics context must be current.
func NewContext(dev Device, width, height int) (*Context, error) {
	pipeline, err := dev.NewPipeline()
	if err != nil {
		return nil, errors.Wrap(err, "create text pipeline")
	}
	ctx := &Context{
		device:   dev,
		pipeline: pipeline,
	}
	ctx.Resize(width, height)
	util.LogGlInfo(fmt.Sprintf("text context ready for %dx%d", width, height))
	return ctx, nil
}

// Resize recomputes the projection. Call it before the frame's draws, not between them.
func (c *Context) Resize(width, height int) {
	c.width = width
	c.height = height
	c.projection = util.Get2DPixelCoordOrthographicProjectionMatrix(width, height)
}

func (c *Context) Projection() mgl32.Mat4 {
	return c.projection
}

// Size returns the viewport size the projection was built for.
func (c *Context) Size() (width, height int) {
	return c.width, c.height
}

func (c *Context) Device() Device {
	return c.device
}

func (c *Context) Pipeline() Pipeline {
	return c.pipeline
}

// Delete frees the pipeline. Entities must not be drawn with this Context afterwards.
func (c *Context) Delete() {
	if c.pipeline != nil {
		c.pipeline.Delete()
		c.pipeline = nil
	}
}
