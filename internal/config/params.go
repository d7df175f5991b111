package config

import (
	"image/color"

	"mapgen/internal/curve"
	"mapgen/internal/terrain"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxSimplificationLevel is the highest LOD the editor exposes.
const MaxSimplificationLevel = 6

// Parameters holds everything needed to generate one map chunk.
type Parameters struct {
	NoiseScale           float64          `json:"noise_scale"`
	Octaves              int              `json:"octaves"`
	Persistence          float64          `json:"persistence"`
	Lacunarity           float64          `json:"lacunarity"`
	Seed                 int64            `json:"seed"`
	Offset               mgl64.Vec2       `json:"offset"`
	MeshHeightMultiplier float64          `json:"mesh_height_multiplier"`
	HeightCurve          curve.Curve      `json:"height_curve"`
	SimplificationLevel  int              `json:"simplification_level"`
	Regions              []terrain.Region `json:"regions"`
}

// DefaultParameters returns a usable island-style preset.
func DefaultParameters() Parameters {
	return Parameters{
		NoiseScale:           25,
		Octaves:              4,
		Persistence:          0.5,
		Lacunarity:           2,
		Seed:                 0,
		MeshHeightMultiplier: 26,
		HeightCurve: curve.New(
			curve.Key{Time: 0, Value: 0},
			curve.Key{Time: 0.4, Value: 0},
			curve.Key{Time: 1, Value: 1},
		),
		SimplificationLevel: 0,
		Regions: []terrain.Region{
			{Name: "deep water", Height: 0.3, Color: color.RGBA{R: 50, G: 99, B: 195, A: 255}},
			{Name: "shallow water", Height: 0.4, Color: color.RGBA{R: 54, G: 103, B: 199, A: 255}},
			{Name: "sand", Height: 0.45, Color: color.RGBA{R: 210, G: 208, B: 125, A: 255}},
			{Name: "grass", Height: 0.55, Color: color.RGBA{R: 86, G: 152, B: 23, A: 255}},
			{Name: "grass 2", Height: 0.6, Color: color.RGBA{R: 62, G: 107, B: 18, A: 255}},
			{Name: "rock", Height: 0.7, Color: color.RGBA{R: 90, G: 69, B: 60, A: 255}},
			{Name: "rock 2", Height: 0.9, Color: color.RGBA{R: 75, G: 60, B: 53, A: 255}},
			{Name: "snow", Height: 1, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		},
	}
}

// Validate clamps the fields that have a hard domain: octaves >= 0 and
// lacunarity >= 1. Everything else (negative seed, zero scale, ...) is
// accepted as-is. It reports whether anything was changed.
func (p *Parameters) Validate() bool {
	changed := false
	if p.Octaves < 0 {
		p.Octaves = 0
		changed = true
	}
	if p.Lacunarity < 1 {
		p.Lacunarity = 1
		changed = true
	}
	return changed
}

// Clone returns a deep copy that shares no mutable memory with p.
func (p Parameters) Clone() Parameters {
	out := p
	out.HeightCurve = p.HeightCurve.Copy()
	if p.Regions != nil {
		out.Regions = make([]terrain.Region, len(p.Regions))
		copy(out.Regions, p.Regions)
	}
	return out
}
