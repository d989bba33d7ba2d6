package bmfont

import "sort"

// GlyphStatus tells a found glyph apart from a substituted one.
type GlyphStatus int

const (
	// GlyphMissing means the code is not in the font. The Lookup carries the zero Glyph.
	GlyphMissing GlyphStatus = iota
	GlyphFound
)

func (s GlyphStatus) String() string {
	if s == GlyphFound {
		return "found"
	}
	return "missing"
}

// Lookup is the result of Metrics.Lookup.
type Lookup struct {
	Glyph  Glyph
	Status GlyphStatus
}

// Found reports whether the glyph came from the font.
func (l Lookup) Found() bool {
	return l.Status == GlyphFound
}

// Empty reports whether nothing will be drawn for this lookup, either because the glyph is
// missing or because it is present but zero-sized (a space, usually).
func (l Lookup) Empty() bool {
	return l.Glyph.Empty()
}

// GlyphSource is anything glyphs can be looked up in. *Metrics is the usual one.
type GlyphSource interface {
	Lookup(code rune) Lookup
}

// Metrics is the glyph table of one font, keyed by character code.
type Metrics struct {
	glyphs     map[rune]Glyph
	LineHeight int
	Base       int
}

// NewMetrics builds the glyph table of a parsed descriptor. A nil descriptor gives an empty
// table.
func NewMetrics(desc *Descriptor) *Metrics {
	m := &Metrics{glyphs: make(map[rune]Glyph)}
	if desc == nil {
		return m
	}
	m.LineHeight = desc.LineHeight
	m.Base = desc.Base
	for _, glyph := range desc.Glyphs {
		code := rune(glyph.ID)
		if _, exists := m.glyphs[code]; exists {
			continue
		}
		m.glyphs[code] = glyph
	}
	return m
}

// Lookup returns the glyph for code. Unknown codes give a GlyphMissing result holding the
// zero Glyph: no size, no offset, no advance.
func (m *Metrics) Lookup(code rune) Lookup {
	if m == nil {
		return Lookup{}
	}
	glyph, ok := m.glyphs[code]
	if !ok {
		return Lookup{}
	}
	return Lookup{Glyph: glyph, Status: GlyphFound}
}

// Len returns the number of glyphs in the table.
func (m *Metrics) Len() int {
	if m == nil {
		return 0
	}
	return len(m.glyphs)
}

// Glyphs returns all glyphs ordered by ID.
func (m *Metrics) Glyphs() []Glyph {
	if m == nil {
		return nil
	}
	result := make([]Glyph, 0, len(m.glyphs))
	for _, glyph := range m.glyphs {
		result = append(result, glyph)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}
