package noise

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestHash2Deterministic(t *testing.T) {
	first := hash2(10, 20, 42)
	for i := 1; i < 100; i++ {
		if h := hash2(10, 20, 42); h != first {
			t.Fatalf("hash2 not deterministic: first=%d, run %d=%d", first, i, h)
		}
	}
}

func TestHash2DifferentInputs(t *testing.T) {
	seed := int64(42)
	if hash2(1, 0, seed) == hash2(2, 0, seed) {
		t.Error("hash2 should differ for different X")
	}
	if hash2(0, 1, seed) == hash2(0, 2, seed) {
		t.Error("hash2 should differ for different Y")
	}
	if hash2(1, 1, 100) == hash2(1, 1, 200) {
		t.Error("hash2 should differ for different seed")
	}
}

func TestValueNoise2DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		if v := valueNoise2D(x, y, 42); v < 0 || v > 1 {
			t.Errorf("valueNoise2D(%f, %f) = %f, expected in [0,1]", x, y, v)
		}
	}
}

func TestValueNoise2DContinuity(t *testing.T) {
	v1 := valueNoise2D(1.0, 1.0, 42)
	v2 := valueNoise2D(1.01, 1.0, 42)
	if diff := math.Abs(v1 - v2); diff >= 0.1 {
		t.Errorf("valueNoise2D not continuous: diff=%f >= 0.1", diff)
	}
}

func allSamplers() []*FractalSampler {
	return []*FractalSampler{NewValueSampler(), NewPerlinSampler(), NewSimplexSampler()}
}

func TestSampleDeterministic(t *testing.T) {
	for _, s := range allSamplers() {
		a, err := s.Sample(64, 48, 7, 20, 4, 0.5, 2, mgl64.Vec2{3, -5})
		if err != nil {
			t.Fatalf("%s: %v", s.Name(), err)
		}
		b, err := s.Sample(64, 48, 7, 20, 4, 0.5, 2, mgl64.Vec2{3, -5})
		if err != nil {
			t.Fatalf("%s: %v", s.Name(), err)
		}
		if !a.Equal(b) {
			t.Errorf("%s: identical inputs produced different fields", s.Name())
		}
	}
}

func TestSampleNormalised(t *testing.T) {
	for _, s := range allSamplers() {
		f, err := s.Sample(50, 50, 99, 15, 5, 0.5, 2, mgl64.Vec2{})
		if err != nil {
			t.Fatalf("%s: %v", s.Name(), err)
		}
		lo, hi := f.MinMax()
		if lo != 0 || hi != 1 {
			t.Errorf("%s: range [%v,%v], want exactly [0,1]", s.Name(), lo, hi)
		}
	}
}

func TestSampleSeedChangesField(t *testing.T) {
	for _, s := range allSamplers() {
		a, _ := s.Sample(32, 32, 1, 10, 3, 0.5, 2, mgl64.Vec2{})
		b, _ := s.Sample(32, 32, 2, 10, 3, 0.5, 2, mgl64.Vec2{})
		if a.Equal(b) {
			t.Errorf("%s: different seeds produced identical fields", s.Name())
		}
	}
}

func TestSampleZeroOctavesIsFlat(t *testing.T) {
	f, err := NewValueSampler().Sample(8, 8, 1, 10, 0, 0.5, 2, mgl64.Vec2{})
	if err != nil {
		t.Fatal(err)
	}
	if lo, hi := f.MinMax(); lo != 0 || hi != 0 {
		t.Errorf("zero octaves: range [%v,%v], want flat 0", lo, hi)
	}
}

func TestSampleZeroScaleAccepted(t *testing.T) {
	if _, err := NewPerlinSampler().Sample(8, 8, 1, 0, 2, 0.5, 2, mgl64.Vec2{}); err != nil {
		t.Fatalf("zero scale should be accepted, got %v", err)
	}
}

func TestSampleErrors(t *testing.T) {
	s := NewValueSampler()
	if _, err := s.Sample(0, 10, 1, 10, 1, 0.5, 2, mgl64.Vec2{}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero width: got %v, want ErrInvalidSize", err)
	}
	if _, err := s.Sample(4, 4, 1, 10, 2, math.Inf(1), 2, mgl64.Vec2{}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("infinite persistence: got %v, want ErrNonFinite", err)
	}
}

func TestNewBackend(t *testing.T) {
	for _, name := range []string{"value", "perlin", "simplex"} {
		s, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, s.Name())
		}
	}
	if _, err := New("worley"); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New(worley): got %v, want ErrUnknownBackend", err)
	}
}

func BenchmarkSampleChunk(b *testing.B) {
	s := NewPerlinSampler()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = s.Sample(241, 241, 12345, 25, 4, 0.5, 2, mgl64.Vec2{})
	}
}
