package bmfont

import (
	"github.com/go-gl/mathgl/mgl32"
)

// AdvanceMode decides how far the pen moves past a character the font does not have.
type AdvanceMode int

const (
	// AdvanceZero leaves the pen where it is, so the next glyph overlaps the missing one.
	AdvanceZero AdvanceMode = iota
	// AdvanceSpace moves the pen by the xadvance of the font's ' ' glyph.
	AdvanceSpace
)

// Options tune the layout. The zero value is the plain behaviour.
type Options struct {
	MissingAdvance AdvanceMode
}

const (
	VerticesPerQuad  = 6
	PositionStride   = 3
	UVStride         = 2
	positionsPerQuad = VerticesPerQuad * PositionStride
	uvsPerQuad       = VerticesPerQuad * UVStride
)

// Quad is one laid out glyph: two triangles, (top-left, top-right, bottom-left) and
// (bottom-left, top-right, bottom-right).
type Quad struct {
	Positions [VerticesPerQuad]mgl32.Vec3
	UVs       [VerticesPerQuad]mgl32.Vec2
}

// Geometry holds the flattened vertex streams of a laid out string, ready for upload.
type Geometry struct {
	Positions []float32 // x, y, z per vertex
	UVs       []float32 // u, v per vertex

	Cursor  int // pen x after the last character
	Quads   int
	Missing int // characters the font had no glyph for
}

// Reset empties the geometry but keeps the allocated slices for reuse.
func (g *Geometry) Reset() {
	g.Positions = g.Positions[:0]
	g.UVs = g.UVs[:0]
	g.Cursor = 0
	g.Quads = 0
	g.Missing = 0
}

// VertexCount returns the number of vertices in the position stream.
func (g Geometry) VertexCount() int {
	return len(g.Positions) / PositionStride
}

// Quad returns quad i in structured form.
func (g Geometry) Quad(i int) Quad {
	var q Quad
	positions := g.Positions[i*positionsPerQuad : (i+1)*positionsPerQuad]
	uvs := g.UVs[i*uvsPerQuad : (i+1)*uvsPerQuad]
	for v := 0; v < VerticesPerQuad; v++ {
		q.Positions[v] = mgl32.Vec3{positions[v*3], positions[v*3+1], positions[v*3+2]}
		q.UVs[v] = mgl32.Vec2{uvs[v*2], uvs[v*2+1]}
	}
	return q
}

// Layout lays out text on a single line starting at pen x = 0.
//
// The string is walked byte by byte: every byte is a character code of its own, so a
// multi-byte UTF-8 sequence turns into several lookups. atlasW and atlasH are the atlas size
// in pixels. With a zero-sized atlas all UVs are 0.
func Layout(text string, src GlyphSource, atlasW, atlasH int, opts Options) Geometry {
	var g Geometry
	g.Positions = make([]float32, 0, len(text)*positionsPerQuad)
	g.UVs = make([]float32, 0, len(text)*uvsPerQuad)
	LayoutInto(&g, text, src, atlasW, atlasH, opts)
	return g
}

// LayoutInto is Layout writing into dst, reusing its slices.
func LayoutInto(dst *Geometry, text string, src GlyphSource, atlasW, atlasH int, opts Options) {
	dst.Reset()

	spaceAdvance := 0
	if opts.MissingAdvance == AdvanceSpace {
		spaceAdvance = src.Lookup(' ').Glyph.XAdvance
	}

	cursor := 0
	for i := 0; i < len(text); i++ {
		lookup := src.Lookup(rune(text[i]))
		dst.appendQuad(lookup.Glyph, cursor, atlasW, atlasH)

		advance := lookup.Glyph.XAdvance
		if !lookup.Found() {
			dst.Missing++
			advance = spaceAdvance
		}
		cursor += advance
	}
	dst.Cursor = cursor
}

// Quads lays out text and returns the structured quads.
func Quads(text string, src GlyphSource, atlasW, atlasH int, opts Options) []Quad {
	g := Layout(text, src, atlasW, atlasH, opts)
	quads := make([]Quad, g.Quads)
	for i := range quads {
		quads[i] = g.Quad(i)
	}
	return quads
}

func (g *Geometry) appendQuad(glyph Glyph, cursor, atlasW, atlasH int) {
	left := float32(glyph.XOffset + cursor)
	right := float32(glyph.XOffset + cursor + glyph.Width)
	top := float32(glyph.YOffset)
	bottom := float32(glyph.YOffset + glyph.Height)

	topLeft := mgl32.Vec3{left, top, 0}
	topRight := mgl32.Vec3{right, top, 0}
	bottomLeft := mgl32.Vec3{left, bottom, 0}
	bottomRight := mgl32.Vec3{right, bottom, 0}
	for _, corner := range [VerticesPerQuad]mgl32.Vec3{topLeft, topRight, bottomLeft, bottomLeft, topRight, bottomRight} {
		g.Positions = append(g.Positions, corner[0], corner[1], corner[2])
	}

	var leftU, topV, rightU, bottomV float32
	if atlasW > 0 && atlasH > 0 {
		w := float32(atlasW)
		h := float32(atlasH)
		leftU = float32(glyph.X) / w
		topV = float32(glyph.Y) / h
		rightU = float32(glyph.X+glyph.Width) / w
		bottomV = float32(glyph.Y+glyph.Height) / h
	}
	g.UVs = append(g.UVs,
		leftU, topV,
		rightU, topV,
		leftU, bottomV,

		leftU, bottomV,
		rightU, topV,
		rightU, bottomV,
	)
	g.Quads++
}

// Measure returns the size of the box text occupies: the final pen position, and the line
// height of the font (or, without one, the lowest glyph bottom).
func (m *Metrics) Measure(text string, opts Options) (width, height int) {
	g := Layout(text, m, 0, 0, opts)
	width = g.Cursor
	if m != nil && m.LineHeight > 0 {
		return width, m.LineHeight
	}
	for i := 0; i < len(text); i++ {
		glyph := m.Lookup(rune(text[i])).Glyph
		height = max(height, glyph.YOffset+glyph.Height)
	}
	return width, height
}
