package text

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/bitmaptext/engine/bmfont"
	"github.com/memmaker/bitmaptext/engine/util"
	"github.com/pkg/errors"
)

// Entity is a string on screen: a font, the GPU geometry of the laid out string, and how to
// draw it (position, tint, opacity).
type Entity struct {
	device   Device
	font     *Font
	ownsFont bool

	buffer   GeometryBuffer
	geometry bmfont.Geometry
	text     string
	stale    bool

	position mgl32.Vec2
	color    mgl32.Vec3
	opacity  float32

	layout  bmfont.Options
	reserve int // glyphs
}

type EntityOption func(e *Entity)

// WithReserve pre-allocates room for the given number of glyphs, so SetText can grow the
// string up to that length without reallocating.
func WithReserve(glyphs int) EntityOption {
	return func(e *Entity) {
		e.reserve = glyphs
	}
}

// WithMissingAdvance sets how far the pen moves past characters the font does not have.
func WithMissingAdvance(mode bmfont.AdvanceMode) EntityOption {
	return func(e *Entity) {
		e.layout.MissingAdvance = mode
	}
}

func WithPosition(position mgl32.Vec2) EntityOption {
	return func(e *Entity) {
		e.position = position
	}
}

func WithColor(color mgl32.Vec3) EntityOption {
	return func(e *Entity) {
		e.color = color
	}
}

func WithOpacity(opacity float32) EntityOption {
	return func(e *Entity) {
		e.opacity = opacity
	}
}

// NewEntity loads the font at fontPath (without extension), lays out s and creates its
// geometry buffer. The Entity is always returned: a font that failed to load is reported in
// the error and leaves an Entity that draws nothing.
func NewEntity(ctx *Context, s, fontPath string, opts ...EntityOption) (*Entity, error) {
	font, fontErr := LoadFont(ctx.Device(), fontPath)
	e := newEntity(ctx, font, true, opts)
	if err := e.create(s); err != nil {
		return e, err
	}
	return e, fontErr
}

// NewEntityWithFont is NewEntity with a font that is already loaded. The font is borrowed:
// deleting the Entity leaves it alone.
func NewEntityWithFont(ctx *Context, s string, font *Font, opts ...EntityOption) (*Entity, error) {
	e := newEntity(ctx, font, false, opts)
	return e, e.create(s)
}

func newEntity(ctx *Context, font *Font, ownsFont bool, opts []EntityOption) *Entity {
	e := &Entity{
		device:   ctx.Device(),
		font:     font,
		ownsFont: ownsFont,
		color:    mgl32.Vec3{1, 1, 1},
		opacity:  1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Entity) create(s string) error {
	e.text = s
	e.font.Layout(&e.geometry, s, e.layout)
	return e.buffer.CreateWithCapacity(e.device, e.geometry, e.reservedVertices())
}

func (e *Entity) reservedVertices() int {
	return e.reserve * bmfont.VerticesPerQuad
}

// SetText lays out s and uploads it into the existing buffer. If s needs more room than the
// buffer has, the buffer is recreated with enough room.
func (e *Entity) SetText(s string) error {
	e.text = s
	e.font.Layout(&e.geometry, s, e.layout)
	e.stale = false

	err := e.buffer.Update(e.geometry)
	if !errors.Is(err, ErrCapacityExceeded) {
		return err
	}
	capacity := max(e.geometry.VertexCount(), 2*e.buffer.Capacity(), e.reservedVertices())
	util.LogTextDebug(fmt.Sprintf("%v, growing to %d vertices", err, capacity))
	return e.buffer.Recreate(e.device, e.geometry, capacity)
}

// SetFont loads another font for this Entity. The geometry is not touched: it still
// describes the old font until SetText or Relayout is called, see Stale.
func (e *Entity) SetFont(fontPath string) error {
	font, err := LoadFont(e.device, fontPath)
	if e.ownsFont {
		e.font.Delete()
	}
	e.font = font
	e.ownsFont = true
	e.stale = true
	return err
}

// Relayout lays out the current text again, for example after SetFont.
func (e *Entity) Relayout() error {
	return e.SetText(e.text)
}

// Stale reports whether the font changed since the geometry was last laid out.
func (e *Entity) Stale() bool {
	return e.stale
}

func (e *Entity) SetPosition(position mgl32.Vec2) {
	e.position = position
}

func (e *Entity) SetColor(color mgl32.Vec3) {
	e.color = color
}

func (e *Entity) SetOpacity(opacity float32) {
	e.opacity = opacity
}

func (e *Entity) Text() string {
	return e.text
}

func (e *Entity) Position() mgl32.Vec2 {
	return e.position
}

func (e *Entity) Color() mgl32.Vec3 {
	return e.color
}

func (e *Entity) Opacity() float32 {
	return e.opacity
}

func (e *Entity) Font() *Font {
	return e.font
}

// Geometry returns the current layout. Do not modify it.
func (e *Entity) Geometry() bmfont.Geometry {
	return e.geometry
}

// Buffer returns the GPU buffer of this Entity.
func (e *Entity) Buffer() *GeometryBuffer {
	return &e.buffer
}

// Bounds returns the size of the text box in pixels, see bmfont.Metrics.Measure.
func (e *Entity) Bounds() mgl32.Vec2 {
	w, h := e.font.Metrics().Measure(e.text, e.layout)
	return mgl32.Vec2{float32(w), float32(h)}
}

// GetTransformMatrix returns the model matrix: a translation to the Entity's position.
func (e *Entity) GetTransformMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(e.position.X(), e.position.Y(), 0)
}

// Draw renders the Entity with one draw call. Blend and depth state are restored afterwards.
// Nothing is drawn for an empty string or a font without atlas.
func (e *Entity) Draw(ctx *Context) {
	atlas := e.font.Atlas()
	if e.buffer.VertexCount() == 0 || !atlas.Valid() {
		return
	}
	restore := ctx.Device().PushOverlayState()
	defer restore()

	pipeline := ctx.Pipeline()
	pipeline.Begin()
	pipeline.SetProjection(ctx.Projection())
	pipeline.SetModel(e.GetTransformMatrix())
	pipeline.SetTint(e.color)
	pipeline.SetOpacity(e.opacity)
	pipeline.SetSampler(0)

	atlas.Bind(0)
	e.buffer.Draw()
	atlas.Unbind()

	pipeline.End()
}

// Delete frees the geometry buffer, and the font if the Entity loaded it itself.
func (e *Entity) Delete() {
	e.buffer.Delete()
	if e.ownsFont {
		e.font.Delete()
	}
}
