package text

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// fakeDevice records what the text package asks of the GPU.
type fakeDevice struct {
	textures  []*fakeTexture
	streams   []*fakeStreams
	pipelines []*fakePipeline

	pushed   int
	restored int

	failStreams bool
}

func (d *fakeDevice) NewTexture(img *image.NRGBA) (Texture, error) {
	texture := &fakeTexture{width: img.Bounds().Dx(), height: img.Bounds().Dy()}
	d.textures = append(d.textures, texture)
	return texture, nil
}

func (d *fakeDevice) NewVertexStreams(positions, uvs []float32, capacity int) (VertexStreams, error) {
	if d.failStreams {
		return nil, errors.New("out of memory")
	}
	streams := &fakeStreams{capacity: capacity}
	streams.Upload(positions, uvs)
	d.streams = append(d.streams, streams)
	return streams, nil
}

func (d *fakeDevice) NewPipeline() (Pipeline, error) {
	pipeline := &fakePipeline{}
	d.pipelines = append(d.pipelines, pipeline)
	return pipeline, nil
}

func (d *fakeDevice) PushOverlayState() func() {
	d.pushed++
	return func() { d.restored++ }
}

// liveStreams counts vertex streams that were allocated and not deleted.
func (d *fakeDevice) liveStreams() int {
	live := 0
	for _, s := range d.streams {
		if !s.deleted {
			live++
		}
	}
	return live
}

func (d *fakeDevice) liveTextures() int {
	live := 0
	for _, tex := range d.textures {
		if !tex.deleted {
			live++
		}
	}
	return live
}

type fakeTexture struct {
	width, height int
	bound         bool
	boundUnit     uint32
	binds         int
	deleted       bool
}

func (t *fakeTexture) Width() int  { return t.width }
func (t *fakeTexture) Height() int { return t.height }

func (t *fakeTexture) Bind(unit uint32) {
	t.bound = true
	t.boundUnit = unit
	t.binds++
}

func (t *fakeTexture) Unbind() { t.bound = false }
func (t *fakeTexture) Delete() { t.deleted = true }

type fakeStreams struct {
	capacity  int
	positions []float32
	uvs       []float32
	uploads   int
	draws     []int
	deleted   bool
}

func (s *fakeStreams) Upload(positions, uvs []float32) {
	if len(positions)/3 > s.capacity {
		panic("upload exceeds stream capacity")
	}
	s.positions = append(s.positions[:0], positions...)
	s.uvs = append(s.uvs[:0], uvs...)
	s.uploads++
}

func (s *fakeStreams) Draw(vertexCount int) {
	s.draws = append(s.draws, vertexCount)
}

func (s *fakeStreams) Delete() { s.deleted = true }

type fakePipeline struct {
	active     bool
	begins     int
	projection mgl32.Mat4
	model      mgl32.Mat4
	tint       mgl32.Vec3
	opacity    float32
	sampler    int32
	deleted    bool
}

func (p *fakePipeline) Begin() {
	p.active = true
	p.begins++
}

func (p *fakePipeline) End() { p.active = false }

func (p *fakePipeline) SetProjection(m mgl32.Mat4) { p.projection = m }
func (p *fakePipeline) SetModel(m mgl32.Mat4)      { p.model = m }
func (p *fakePipeline) SetTint(c mgl32.Vec3)       { p.tint = c }
func (p *fakePipeline) SetOpacity(o float32)       { p.opacity = o }
func (p *fakePipeline) SetSampler(unit int32)      { p.sampler = unit }
func (p *fakePipeline) Delete()                    { p.deleted = true }

const testDescriptor = `info face="Test" size=12
common lineHeight=17 base=13 scaleW=256 scaleH=128 pages=1 packed=0
page id=0 file="test.png"
chars count=3
char id=32 x=0  y=0 width=0  height=0  xoffset=0 yoffset=13 xadvance=3  page=0 chnl=15
char id=65 x=0  y=0 width=10 height=12 xoffset=0 yoffset=1  xadvance=11 page=0 chnl=15
char id=66 x=11 y=0 width=8  height=12 xoffset=1 yoffset=1  xadvance=9  page=0 chnl=15
`

// writeFont writes name.fnt and, if withAtlas is set, a 256x128 name.png into dir and returns
// the font path without extension.
func writeFont(t *testing.T, dir, name string, withAtlas bool) string {
	t.Helper()
	base := filepath.Join(dir, name)
	if err := os.WriteFile(base+".fnt", []byte(testDescriptor), 0o644); err != nil {
		t.Fatal(err)
	}
	if withAtlas {
		img := image.NewNRGBA(image.Rect(0, 0, 256, 128))
		img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(base+".png", buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return base
}

func newTestContext(t *testing.T) (*Context, *fakeDevice) {
	t.Helper()
	dev := &fakeDevice{}
	ctx, err := NewContext(dev, 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ctx, dev
}
