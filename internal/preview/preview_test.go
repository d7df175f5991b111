package preview

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"testing"

	"mapgen/internal/config"
	"mapgen/internal/mapgen"
	"mapgen/internal/meshing"
	"mapgen/internal/noise"
	"mapgen/internal/terrain"
)

type recordingSink struct {
	textures []image.Image
	meshes   []*meshing.MeshData
}

func (r *recordingSink) DrawTexture(img image.Image) error {
	r.textures = append(r.textures, img)
	return nil
}

func (r *recordingSink) DrawMesh(m *meshing.MeshData, tex image.Image) error {
	r.meshes = append(r.meshes, m)
	r.textures = append(r.textures, tex)
	return nil
}

type syncGen struct {
	sampler noise.Sampler
	err     error
}

func (g syncGen) GenerateSync(p config.Parameters) (mapgen.MapData, error) {
	if g.err != nil {
		return mapgen.MapData{}, g.err
	}
	return mapgen.Generate(g.sampler, p)
}

func newPreviewer(sink *recordingSink, mode DrawMode) *Previewer {
	return New(syncGen{sampler: noise.NewValueSampler()}, meshing.NewGridBuilder(), sink, mode,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDrawModes(t *testing.T) {
	params := config.DefaultParameters()
	params.SimplificationLevel = 3

	sink := &recordingSink{}
	p := newPreviewer(sink, NoiseMap)
	if err := p.Draw(params); err != nil {
		t.Fatal(err)
	}
	p.SetMode(ColorMap)
	if err := p.Draw(params); err != nil {
		t.Fatal(err)
	}
	p.SetMode(Mesh)
	if err := p.Draw(params); err != nil {
		t.Fatal(err)
	}

	if len(sink.textures) != 3 || len(sink.meshes) != 1 {
		t.Fatalf("sink got %d textures and %d meshes, want 3 and 1", len(sink.textures), len(sink.meshes))
	}
	if b := sink.textures[0].Bounds(); b.Dx() != terrain.ChunkSize {
		t.Errorf("texture width %d, want %d", b.Dx(), terrain.ChunkSize)
	}
	if want := (terrain.ChunkSize-1)/6 + 1; sink.meshes[0].VerticesPerLine != want {
		t.Errorf("mesh vertices per line %d, want %d", sink.meshes[0].VerticesPerLine, want)
	}
}

func TestAutoUpdateRedrawsOnChange(t *testing.T) {
	sink := &recordingSink{}
	p := newPreviewer(sink, ColorMap)
	s := config.NewSettings(config.DefaultParameters())
	p.Bind(s)

	s.SetSeed(1)
	if len(sink.textures) != 0 {
		t.Fatalf("drew %d times with auto update off", len(sink.textures))
	}

	p.SetAutoUpdate(true)
	s.SetSeed(2)
	s.SetOctaves(-4)
	if len(sink.textures) != 2 {
		t.Fatalf("drew %d times with auto update on, want 2", len(sink.textures))
	}
}

func TestDrawPropagatesGenerationError(t *testing.T) {
	boom := errors.New("boom")
	p := New(syncGen{err: boom}, meshing.NewGridBuilder(), &recordingSink{}, NoiseMap, nil)
	if err := p.Draw(config.DefaultParameters()); !errors.Is(err, boom) {
		t.Errorf("got %v, want boom", err)
	}
}

func TestParseDrawMode(t *testing.T) {
	for in, want := range map[string]DrawMode{"noise": NoiseMap, "ColorMap": ColorMap, "mesh": Mesh} {
		got, err := ParseDrawMode(in)
		if err != nil || got != want {
			t.Errorf("ParseDrawMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDrawMode("wire"); err == nil {
		t.Error("unknown mode accepted")
	}
}
