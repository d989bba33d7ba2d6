package text

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCacheReusesEntities(t *testing.T) {
	ctx, dev := newTestContext(t)
	cache := NewCache(ctx, writeFont(t, t.TempDir(), "test", true))

	for frame := 0; frame < 3; frame++ {
		cache.DrawText("AB", mgl32.Vec2{float32(frame), 0}, mgl32.Vec3{1, 1, 1})
		cache.EndFrame()
	}
	if cache.Len() != 1 {
		t.Errorf("expected one cached entity, got %d", cache.Len())
	}
	if len(dev.streams) != 1 || len(dev.textures) != 1 {
		t.Errorf("expected one allocation each, got %d streams and %d textures", len(dev.streams), len(dev.textures))
	}
	if draws := dev.streams[0].draws; len(draws) != 3 {
		t.Errorf("expected 3 draws, got %v", draws)
	}
	if model := dev.pipelines[0].model; model != mgl32.Translate3D(2, 0, 0) {
		t.Errorf("expected the last position, got %v", model)
	}
}

func TestCacheEvictsUnusedEntities(t *testing.T) {
	ctx, dev := newTestContext(t)
	cache := NewCache(ctx, writeFont(t, t.TempDir(), "test", true))

	cache.DrawText("A", mgl32.Vec2{}, mgl32.Vec3{1, 1, 1})
	cache.DrawText("B", mgl32.Vec2{}, mgl32.Vec3{1, 1, 1})
	cache.EndFrame()
	if cache.Len() != 2 {
		t.Fatalf("expected 2 cached entities, got %d", cache.Len())
	}

	cache.DrawText("A", mgl32.Vec2{}, mgl32.Vec3{1, 1, 1})
	cache.EndFrame()
	if cache.Len() != 1 {
		t.Errorf("expected the unused entity to be evicted, got %d", cache.Len())
	}
	if dev.liveStreams() != 1 {
		t.Errorf("expected one live allocation, got %d", dev.liveStreams())
	}
	if dev.liveTextures() != 1 {
		t.Error("expected the shared font to survive eviction")
	}
}

func TestCacheMultipleFonts(t *testing.T) {
	ctx, dev := newTestContext(t)
	dir := t.TempDir()
	first := writeFont(t, dir, "first", true)
	second := writeFont(t, dir, "second", true)
	cache := NewCache(ctx, first)

	cache.DrawText("AB", mgl32.Vec2{}, mgl32.Vec3{1, 1, 1})
	cache.DrawTextWithFont("AB", second, mgl32.Vec2{}, mgl32.Vec3{1, 0, 0})
	cache.DrawTextWithFont("BA", second, mgl32.Vec2{}, mgl32.Vec3{1, 0, 0})

	if cache.Len() != 3 {
		t.Errorf("expected 3 cached entities, got %d", cache.Len())
	}
	if len(dev.textures) != 2 {
		t.Errorf("expected each font loaded once, got %d atlases", len(dev.textures))
	}
	if dev.pushed != 3 || dev.restored != 3 {
		t.Errorf("expected 3 balanced draws, got %d/%d", dev.pushed, dev.restored)
	}

	cache.Clear()
	if cache.Len() != 0 || dev.liveStreams() != 0 || dev.liveTextures() != 0 {
		t.Errorf("expected Clear to free everything")
	}
}

func TestCacheMissingFontDrawsNothing(t *testing.T) {
	ctx, dev := newTestContext(t)
	cache := NewCache(ctx, filepath.Join(t.TempDir(), "nope"))

	cache.DrawText("AB", mgl32.Vec2{}, mgl32.Vec3{1, 1, 1})
	cache.DrawText("AB", mgl32.Vec2{}, mgl32.Vec3{1, 1, 1})
	if dev.pushed != 0 {
		t.Error("expected nothing drawn without a font")
	}
	if cache.Len() != 1 {
		t.Errorf("expected the entity to be cached anyway, got %d", cache.Len())
	}
}
