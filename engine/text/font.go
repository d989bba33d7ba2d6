package text

import (
	"fmt"

	"github.com/memmaker/bitmaptext/engine/bmfont"
	"github.com/memmaker/bitmaptext/engine/util"
)

// Font is a glyph table plus the atlas it points into.
type Font struct {
	name    string
	metrics *bmfont.Metrics
	atlas   *AtlasTexture
}

// LoadFont loads name+".fnt" and name+".png". The returned Font is never nil: when a file is
// missing the error says which, and the Font is left empty (no glyphs, no atlas) but usable.
func LoadFont(dev Device, name string) (*Font, error) {
	f := &Font{metrics: bmfont.NewMetrics(nil)}
	err := f.Load(dev, name)
	return f, err
}

// Load replaces the glyph table and the atlas with the ones of the font at name (a path
// without extension). The previous atlas is deleted first.
//
// If the descriptor cannot be read the font ends up empty and the atlas is not loaded at all.
// If only the atlas is missing the glyph table is kept, so layout still works.
func (f *Font) Load(dev Device, name string) error {
	f.atlas.Delete()
	f.atlas = nil
	f.name = name
	f.metrics = bmfont.NewMetrics(nil)

	descriptorPath := name + ".fnt"
	desc, err := bmfont.LoadDescriptor(descriptorPath)
	if err != nil {
		util.LogFontError(fmt.Sprintf("could not load font descriptor %s: %v", descriptorPath, err))
		return &ResourceError{Path: descriptorPath, Err: err}
	}
	f.metrics = bmfont.NewMetrics(desc)

	atlas, err := LoadAtlas(dev, name+".png")
	if err != nil {
		util.LogFontError(fmt.Sprintf("could not load font atlas for %s: %v", name, err))
		return err
	}
	f.atlas = atlas

	util.LogFontInfo(fmt.Sprintf("loaded %s: %d glyphs, atlas %dx%d", name, f.metrics.Len(), atlas.Width(), atlas.Height()))
	return nil
}

// Name returns the path the font was loaded from, without extension.
func (f *Font) Name() string {
	return f.name
}

func (f *Font) Metrics() *bmfont.Metrics {
	return f.metrics
}

// Atlas returns the atlas texture, nil if it could not be loaded.
func (f *Font) Atlas() *AtlasTexture {
	return f.atlas
}

// Lookup makes a Font usable as a bmfont.GlyphSource.
func (f *Font) Lookup(code rune) bmfont.Lookup {
	return f.metrics.Lookup(code)
}

// Layout lays out s against this font's glyphs and atlas size, writing into dst.
func (f *Font) Layout(dst *bmfont.Geometry, s string, opts bmfont.Options) {
	bmfont.LayoutInto(dst, s, f.metrics, f.atlas.Width(), f.atlas.Height(), opts)
}

// Delete frees the atlas. The glyph table stays readable.
func (f *Font) Delete() {
	f.atlas.Delete()
	f.atlas = nil
}
