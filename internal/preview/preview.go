package preview

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"mapgen/internal/config"
	"mapgen/internal/mapgen"
	"mapgen/internal/meshing"
	"mapgen/internal/texture"
)

// DrawMode selects what a preview shows.
type DrawMode int

const (
	NoiseMap DrawMode = iota
	ColorMap
	Mesh
)

func (m DrawMode) String() string {
	switch m {
	case NoiseMap:
		return "noise"
	case ColorMap:
		return "color"
	case Mesh:
		return "mesh"
	}
	return fmt.Sprintf("DrawMode(%d)", int(m))
}

// ParseDrawMode accepts "noise", "color" or "mesh".
func ParseDrawMode(s string) (DrawMode, error) {
	switch strings.ToLower(s) {
	case "noise", "noisemap":
		return NoiseMap, nil
	case "color", "colormap":
		return ColorMap, nil
	case "mesh":
		return Mesh, nil
	}
	return NoiseMap, fmt.Errorf("unknown draw mode %q", s)
}

// Generator is the blocking map generation entry point.
type Generator interface {
	GenerateSync(p config.Parameters) (mapgen.MapData, error)
}

// Previewer regenerates a chunk synchronously and draws it to a sink, the
// way an editor inspector does when its Generate button is pressed or, with
// auto update on, whenever a parameter changes.
type Previewer struct {
	gen     Generator
	builder meshing.Builder
	sink    texture.Sink
	log     *slog.Logger

	mu         sync.Mutex
	mode       DrawMode
	autoUpdate bool
}

// New creates a previewer.
func New(gen Generator, builder meshing.Builder, sink texture.Sink, mode DrawMode, log *slog.Logger) *Previewer {
	if log == nil {
		log = slog.Default()
	}
	return &Previewer{gen: gen, builder: builder, sink: sink, mode: mode, log: log}
}

// SetMode changes the draw mode for subsequent draws.
func (p *Previewer) SetMode(m DrawMode) {
	p.mu.Lock()
	p.mode = m
	p.mu.Unlock()
}

// SetAutoUpdate toggles redraw on parameter change.
func (p *Previewer) SetAutoUpdate(on bool) {
	p.mu.Lock()
	p.autoUpdate = on
	p.mu.Unlock()
}

// Bind redraws on every change of s while auto update is on.
func (p *Previewer) Bind(s *config.Settings) {
	s.Watch(func(params config.Parameters) {
		p.mu.Lock()
		auto := p.autoUpdate
		p.mu.Unlock()
		if !auto {
			return
		}
		if err := p.Draw(params); err != nil {
			p.log.Warn("auto update draw failed", "error", err)
		}
	})
}

// Draw generates a chunk from params and sends it to the sink according to
// the current draw mode. Generation errors are returned unchanged.
func (p *Previewer) Draw(params config.Parameters) error {
	p.mu.Lock()
	mode := p.mode
	p.mu.Unlock()

	data, err := p.gen.GenerateSync(params)
	if err != nil {
		return err
	}

	switch mode {
	case NoiseMap:
		return p.sink.DrawTexture(texture.FromHeightMap(data.Height))
	case ColorMap:
		return p.sink.DrawTexture(texture.FromColorMap(data.Color))
	case Mesh:
		m, err := p.builder.Build(data.Height, params.MeshHeightMultiplier, params.HeightCurve, params.SimplificationLevel)
		if err != nil {
			return fmt.Errorf("build preview mesh: %w", err)
		}
		return p.sink.DrawMesh(m, texture.FromColorMap(data.Color))
	}
	return fmt.Errorf("unknown draw mode %v", mode)
}
