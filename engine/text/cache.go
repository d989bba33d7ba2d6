package text

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/bitmaptext/engine/util"
)

type cacheKey struct {
	font string
	text string
}

type cacheEntry struct {
	entity *Entity
	used   bool
}

// Cache backs the immediate-mode DrawText calls with one Entity per (font, string) pair, so
// strings in different fonts can be on screen in the same frame. Each font is loaded once and
// shared by the entities that use it.
//
// Call EndFrame once per frame: entities that were not drawn since the previous EndFrame are
// deleted.
type Cache struct {
	ctx         *Context
	defaultFont string
	fonts       map[string]*Font
	entries     map[cacheKey]*cacheEntry
}

// NewCache creates a cache drawing with ctx; defaultFont is the path (without extension) used
// by DrawText.
func NewCache(ctx *Context, defaultFont string) *Cache {
	return &Cache{
		ctx:         ctx,
		defaultFont: defaultFont,
		fonts:       make(map[string]*Font),
		entries:     make(map[cacheKey]*cacheEntry),
	}
}

// DrawText draws s in the default font at pos, tinted with color.
func (c *Cache) DrawText(s string, pos mgl32.Vec2, color mgl32.Vec3) {
	c.DrawTextWithFont(s, c.defaultFont, pos, color)
}

// DrawTextWithFont draws s in the font at fontPath.
func (c *Cache) DrawTextWithFont(s, fontPath string, pos mgl32.Vec2, color mgl32.Vec3) {
	entry := c.entry(fontPath, s)
	entry.used = true

	entity := entry.entity
	entity.SetPosition(pos)
	entity.SetColor(color)
	entity.SetOpacity(1)
	entity.Draw(c.ctx)
}

func (c *Cache) entry(fontPath, s string) *cacheEntry {
	key := cacheKey{font: fontPath, text: s}
	if entry, ok := c.entries[key]; ok {
		return entry
	}
	entity, err := NewEntityWithFont(c.ctx, s, c.font(fontPath))
	if err != nil {
		util.LogTextError(fmt.Sprintf("could not create text %q: %v", s, err))
	}
	entry := &cacheEntry{entity: entity}
	c.entries[key] = entry
	return entry
}

// font returns the shared font for path, loading it on first use. A font that failed to load
// stays cached as an empty font, so the failure is logged only once.
func (c *Cache) font(path string) *Font {
	if font, ok := c.fonts[path]; ok {
		return font
	}
	font, _ := LoadFont(c.ctx.Device(), path)
	c.fonts[path] = font
	return font
}

// EndFrame deletes the entities that were not drawn during the frame.
func (c *Cache) EndFrame() {
	for key, entry := range c.entries {
		if entry.used {
			entry.used = false
			continue
		}
		entry.entity.Delete()
		delete(c.entries, key)
	}
}

// Len returns the number of cached entities.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Clear deletes all cached entities and fonts.
func (c *Cache) Clear() {
	for key, entry := range c.entries {
		entry.entity.Delete()
		delete(c.entries, key)
	}
	for path, font := range c.fonts {
		font.Delete()
		delete(c.fonts, path)
	}
}
