package noise

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"mapgen/internal/profiling"
	"mapgen/internal/terrain"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
)

var (
	ErrInvalidSize    = errors.New("noise: width and height must be positive")
	ErrNonFinite      = errors.New("noise: sample is not finite")
	ErrUnknownBackend = errors.New("noise: unknown backend")
)

// minScale replaces non-positive scales to avoid dividing by zero.
const minScale = 0.0001

// octaveOffsetRange bounds the random per-octave sample offset.
const octaveOffsetRange = 100000

// Sampler produces a normalised [0,1] height field.
type Sampler interface {
	Sample(width, height int, seed int64, scale float64, octaves int, persistence, lacunarity float64, offset mgl64.Vec2) (*terrain.HeightField, error)
}

// Source is a single-octave coherent noise function returning roughly [-1,1].
type Source func(x, y float64) float64

// FractalSampler sums octaves of a Source and normalises the result.
type FractalSampler struct {
	name   string
	source func(seed int64) Source
}

// NewValueSampler samples the built-in hash value noise.
func NewValueSampler() *FractalSampler {
	return &FractalSampler{name: "value", source: valueSource}
}

// NewPerlinSampler samples classic Perlin noise.
func NewPerlinSampler() *FractalSampler {
	return &FractalSampler{name: "perlin", source: func(seed int64) Source {
		// n=1: octaves are summed by Sample, not by the library.
		p := perlin.NewPerlin(2, 2, 1, seed)
		return p.Noise2D
	}}
}

// NewSimplexSampler samples OpenSimplex noise.
func NewSimplexSampler() *FractalSampler {
	return &FractalSampler{name: "simplex", source: func(seed int64) Source {
		return opensimplex.New(seed).Eval2
	}}
}

// New returns the sampler registered under name.
func New(name string) (*FractalSampler, error) {
	switch name {
	case "value":
		return NewValueSampler(), nil
	case "perlin", "":
		return NewPerlinSampler(), nil
	case "simplex":
		return NewSimplexSampler(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Name returns the backend name.
func (s *FractalSampler) Name() string { return s.name }

// Sample builds a width x height field. Each octave samples the source at a
// seeded random offset; the grid is scaled around its centre so that changing
// scale zooms instead of sliding. Output is remapped to [0,1] by the field's
// own min/max.
func (s *FractalSampler) Sample(width, height int, seed int64, scale float64, octaves int, persistence, lacunarity float64, offset mgl64.Vec2) (*terrain.HeightField, error) {
	defer profiling.Track("noise.Sample")()

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if scale <= 0 {
		scale = minScale
	}

	rng := rand.New(rand.NewSource(seed))
	octaveOffsets := make([]mgl64.Vec2, max(octaves, 0))
	for i := range octaveOffsets {
		ox := float64(rng.Intn(2*octaveOffsetRange)-octaveOffsetRange) + offset.X()
		oy := float64(rng.Intn(2*octaveOffsetRange)-octaveOffsetRange) + offset.Y()
		octaveOffsets[i] = mgl64.Vec2{ox, oy}
	}

	src := s.source(seed)
	raw := make([]float64, width*height)
	lo, hi := math.Inf(1), math.Inf(-1)

	halfW := float64(width) / 2
	halfH := float64(height) / 2

	for y := range height {
		for x := range width {
			amplitude := 1.0
			frequency := 1.0
			h := 0.0
			for _, o := range octaveOffsets {
				sx := (float64(x)-halfW)/scale*frequency + o.X()
				sy := (float64(y)-halfH)/scale*frequency + o.Y()
				h += src(sx, sy) * amplitude
				amplitude *= persistence
				frequency *= lacunarity
			}
			if math.IsNaN(h) || math.IsInf(h, 0) {
				return nil, fmt.Errorf("%w at (%d,%d)", ErrNonFinite, x, y)
			}
			raw[y*width+x] = h
			lo = math.Min(lo, h)
			hi = math.Max(hi, h)
		}
	}

	field := terrain.NewHeightField(width, height)
	for y := range height {
		for x := range width {
			field.Set(x, y, float32(inverseLerp(lo, hi, raw[y*width+x])))
		}
	}
	return field, nil
}

// inverseLerp maps v from [a,b] to [0,1], clamped. A degenerate range maps to 0.
func inverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return math.Max(0, math.Min(1, (v-a)/(b-a)))
}
