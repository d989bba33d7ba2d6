package text

import (
	"testing"

	"github.com/memmaker/bitmaptext/engine/bmfont"
	"github.com/pkg/errors"
)

func quadGeometry(quads int) bmfont.Geometry {
	g := bmfont.Geometry{
		Positions: make([]float32, quads*bmfont.VerticesPerQuad*bmfont.PositionStride),
		UVs:       make([]float32, quads*bmfont.VerticesPerQuad*bmfont.UVStride),
		Quads:     quads,
	}
	for i := range g.Positions {
		g.Positions[i] = float32(i)
	}
	return g
}

func TestGeometryBufferEmptyAllocatesNothing(t *testing.T) {
	dev := &fakeDevice{}
	var buffer GeometryBuffer
	if err := buffer.Create(dev, bmfont.Geometry{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !buffer.Created() {
		t.Error("expected the buffer to count as created")
	}
	if len(dev.streams) != 0 {
		t.Errorf("expected no allocation, got %d", len(dev.streams))
	}
	buffer.Draw()
	if buffer.VertexCount() != 0 {
		t.Errorf("expected 0 vertices, got %d", buffer.VertexCount())
	}
}

func TestGeometryBufferCreateUploadsAndDraws(t *testing.T) {
	dev := &fakeDevice{}
	var buffer GeometryBuffer
	if err := buffer.Create(dev, quadGeometry(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dev.streams) != 1 {
		t.Fatalf("expected one allocation, got %d", len(dev.streams))
	}
	streams := dev.streams[0]
	if streams.capacity != 12 {
		t.Errorf("expected capacity 12, got %d", streams.capacity)
	}
	if len(streams.positions) != 36 || len(streams.uvs) != 24 {
		t.Errorf("unexpected upload sizes %d/%d", len(streams.positions), len(streams.uvs))
	}

	buffer.Draw()
	if len(streams.draws) != 1 || streams.draws[0] != 12 {
		t.Errorf("expected one draw of 12 vertices, got %v", streams.draws)
	}
}

func TestGeometryBufferUpdateBeforeCreate(t *testing.T) {
	var buffer GeometryBuffer
	if err := buffer.Update(quadGeometry(1)); err != ErrNotCreated {
		t.Errorf("expected ErrNotCreated, got %v", err)
	}
}

func TestGeometryBufferCreateTwice(t *testing.T) {
	dev := &fakeDevice{}
	var buffer GeometryBuffer
	if err := buffer.Create(dev, quadGeometry(1)); err != nil {
		t.Fatal(err)
	}
	if err := buffer.Create(dev, quadGeometry(1)); err != ErrAlreadyCreated {
		t.Errorf("expected ErrAlreadyCreated, got %v", err)
	}
	if len(dev.streams) != 1 {
		t.Errorf("expected one allocation, got %d", len(dev.streams))
	}
}

func TestGeometryBufferUpdateWithinCapacity(t *testing.T) {
	dev := &fakeDevice{}
	var buffer GeometryBuffer
	if err := buffer.CreateWithCapacity(dev, quadGeometry(1), 4*bmfont.VerticesPerQuad); err != nil {
		t.Fatal(err)
	}
	if buffer.Capacity() != 24 {
		t.Fatalf("expected capacity 24, got %d", buffer.Capacity())
	}
	if err := buffer.Update(quadGeometry(3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buffer.VertexCount() != 18 {
		t.Errorf("expected 18 vertices, got %d", buffer.VertexCount())
	}
	if dev.streams[0].uploads != 2 {
		t.Errorf("expected 2 uploads, got %d", dev.streams[0].uploads)
	}
	if len(dev.streams) != 1 {
		t.Errorf("expected no reallocation, got %d allocations", len(dev.streams))
	}
}

func TestGeometryBufferUpdateOverCapacity(t *testing.T) {
	dev := &fakeDevice{}
	var buffer GeometryBuffer
	if err := buffer.Create(dev, quadGeometry(1)); err != nil {
		t.Fatal(err)
	}
	err := buffer.Update(quadGeometry(2))
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected a *CapacityError, got %T", err)
	}
	if capErr.Capacity != 6 || capErr.Required != 12 {
		t.Errorf("unexpected capacity error %+v", capErr)
	}
	if buffer.VertexCount() != 6 {
		t.Errorf("expected the old content to stay, got %d vertices", buffer.VertexCount())
	}
}

func TestGeometryBufferUpdateShrinks(t *testing.T) {
	dev := &fakeDevice{}
	var buffer GeometryBuffer
	if err := buffer.Create(dev, quadGeometry(2)); err != nil {
		t.Fatal(err)
	}
	if err := buffer.Update(bmfont.Geometry{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buffer.Draw()
	if len(dev.streams[0].draws) != 0 {
		t.Errorf("expected no draw for empty content, got %v", dev.streams[0].draws)
	}
}

func TestGeometryBufferRejectsMalformed(t *testing.T) {
	tests := map[string]bmfont.Geometry{
		"ragged positions": {Positions: make([]float32, 4), UVs: make([]float32, 2)},
		"mismatched uvs":   {Positions: make([]float32, 18), UVs: make([]float32, 10)},
		"partial triangle": {Positions: make([]float32, 6), UVs: make([]float32, 4)},
	}
	for name, g := range tests {
		t.Run(name, func(t *testing.T) {
			var buffer GeometryBuffer
			err := buffer.Create(&fakeDevice{}, g)
			if !errors.Is(err, ErrMalformedGeometry) {
				t.Errorf("expected ErrMalformedGeometry, got %v", err)
			}
			if buffer.Created() {
				t.Error("expected the buffer to stay uncreated")
			}
		})
	}
}

func TestGeometryBufferRecreateGrows(t *testing.T) {
	dev := &fakeDevice{}
	var buffer GeometryBuffer
	if err := buffer.Create(dev, quadGeometry(1)); err != nil {
		t.Fatal(err)
	}
	if err := buffer.Recreate(dev, quadGeometry(3), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dev.streams[0].deleted {
		t.Error("expected the old storage to be freed")
	}
	if buffer.Capacity() != 18 || buffer.VertexCount() != 18 {
		t.Errorf("unexpected capacity %d / count %d", buffer.Capacity(), buffer.VertexCount())
	}
	if dev.liveStreams() != 1 {
		t.Errorf("expected one live allocation, got %d", dev.liveStreams())
	}
}

func TestGeometryBufferDelete(t *testing.T) {
	dev := &fakeDevice{}
	var buffer GeometryBuffer
	if err := buffer.Create(dev, quadGeometry(1)); err != nil {
		t.Fatal(err)
	}
	buffer.Delete()
	buffer.Delete()
	if dev.liveStreams() != 0 {
		t.Errorf("expected the storage to be freed")
	}
	if err := buffer.Update(quadGeometry(1)); err != ErrDeleted {
		t.Errorf("expected ErrDeleted, got %v", err)
	}
	if err := buffer.Recreate(dev, quadGeometry(1), 0); err != ErrDeleted {
		t.Errorf("expected ErrDeleted from Recreate, got %v", err)
	}
	buffer.Draw()
}

func TestGeometryBufferAllocationFailure(t *testing.T) {
	var buffer GeometryBuffer
	if err := buffer.Create(&fakeDevice{failStreams: true}, quadGeometry(1)); err == nil {
		t.Error("expected an allocation error")
	}
	if buffer.Created() {
		t.Error("expected the buffer to stay uncreated")
	}
}
