package text

import (
	"github.com/memmaker/bitmaptext/engine/bmfont"
	"github.com/pkg/errors"
)

type bufferState int

const (
	bufferEmpty bufferState = iota
	bufferCreated
	bufferDeleted
)

// GeometryBuffer keeps the vertex streams of one laid out string on the GPU.
//
// Create allocates storage once, sized to the content (or to a reserved capacity). Update
// re-uploads into that storage and refuses content that does not fit, returning a
// *CapacityError; Recreate is the way to grow.
type GeometryBuffer struct {
	streams  VertexStreams
	state    bufferState
	capacity int
	count    int
}

// Create allocates GPU storage for exactly the vertices of g. Nothing is allocated for empty
// geometry; the buffer still counts as created.
func (b *GeometryBuffer) Create(dev Device, g bmfont.Geometry) error {
	return b.CreateWithCapacity(dev, g, 0)
}

// CreateWithCapacity is Create with room for at least minVertices vertices.
func (b *GeometryBuffer) CreateWithCapacity(dev Device, g bmfont.Geometry, minVertices int) error {
	switch b.state {
	case bufferCreated:
		return ErrAlreadyCreated
	case bufferDeleted:
		return ErrDeleted
	}
	if err := validateGeometry(g); err != nil {
		return err
	}

	vertices := g.VertexCount()
	capacity := max(vertices, minVertices)
	if capacity > 0 {
		streams, err := dev.NewVertexStreams(g.Positions, g.UVs, capacity)
		if err != nil {
			return errors.Wrap(err, "allocate geometry buffer")
		}
		b.streams = streams
	}
	b.capacity = capacity
	b.count = vertices
	b.state = bufferCreated
	return nil
}

// Update uploads g into the existing storage. Content larger than the capacity is rejected
// and the buffer keeps what it had.
func (b *GeometryBuffer) Update(g bmfont.Geometry) error {
	switch b.state {
	case bufferEmpty:
		return ErrNotCreated
	case bufferDeleted:
		return ErrDeleted
	}
	if err := validateGeometry(g); err != nil {
		return err
	}

	vertices := g.VertexCount()
	if vertices > b.capacity {
		return &CapacityError{Capacity: b.capacity, Required: vertices}
	}
	if vertices > 0 {
		b.streams.Upload(g.Positions, g.UVs)
	}
	b.count = vertices
	return nil
}

// Recreate frees the current storage and creates it again for g.
func (b *GeometryBuffer) Recreate(dev Device, g bmfont.Geometry, minVertices int) error {
	if b.state == bufferDeleted {
		return ErrDeleted
	}
	b.release()
	b.state = bufferEmpty
	return b.CreateWithCapacity(dev, g, minVertices)
}

// Draw issues one triangle-list draw call covering the current vertices.
func (b *GeometryBuffer) Draw() {
	if b.state != bufferCreated || b.streams == nil || b.count == 0 {
		return
	}
	b.streams.Draw(b.count)
}

// VertexCount returns the number of vertices Draw will submit.
func (b *GeometryBuffer) VertexCount() int {
	return b.count
}

// Capacity returns the number of vertices the storage has room for.
func (b *GeometryBuffer) Capacity() int {
	return b.capacity
}

// Created reports whether Create has been called and Delete has not.
func (b *GeometryBuffer) Created() bool {
	return b.state == bufferCreated
}

// Delete frees the GPU storage. The buffer cannot be used afterwards.
func (b *GeometryBuffer) Delete() {
	b.release()
	b.state = bufferDeleted
}

func (b *GeometryBuffer) release() {
	if b.streams != nil {
		b.streams.Delete()
		b.streams = nil
	}
	b.capacity = 0
	b.count = 0
}

func validateGeometry(g bmfont.Geometry) error {
	if len(g.Positions)%bmfont.PositionStride != 0 || len(g.UVs)%bmfont.UVStride != 0 {
		return errors.Wrapf(ErrMalformedGeometry, "%d position floats, %d uv floats", len(g.Positions), len(g.UVs))
	}
	if len(g.Positions)/bmfont.PositionStride != len(g.UVs)/bmfont.UVStride {
		return errors.Wrapf(ErrMalformedGeometry, "%d positions but %d uvs", len(g.Positions)/bmfont.PositionStride, len(g.UVs)/bmfont.UVStride)
	}
	// triangle list
	if g.VertexCount()%3 != 0 {
		return errors.Wrapf(ErrMalformedGeometry, "%d vertices do not form whole triangles", g.VertexCount())
	}
	return nil
}
