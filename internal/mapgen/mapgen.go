package mapgen

import (
	"fmt"

	"mapgen/internal/config"
	"mapgen/internal/noise"
	"mapgen/internal/profiling"
	"mapgen/internal/terrain"
)

// MapData is the height field of one chunk together with its color
// classification. Both are built before a MapData is returned.
type MapData struct {
	Height *terrain.HeightField
	Color  *terrain.ColorField
}

// Generate samples a ChunkSize x ChunkSize height field with the given
// parameters and classifies it against p.Regions. It is a pure function of
// (sampler, p): the same inputs always give bit-identical output.
func Generate(sampler noise.Sampler, p config.Parameters) (MapData, error) {
	defer profiling.Track("mapgen.Generate")()

	height, err := sampler.Sample(
		terrain.ChunkSize, terrain.ChunkSize,
		p.Seed, p.NoiseScale, p.Octaves, p.Persistence, p.Lacunarity, p.Offset,
	)
	if err != nil {
		return MapData{}, fmt.Errorf("sample height field: %w", err)
	}

	return MapData{
		Height: height,
		Color:  terrain.Classify(height, p.Regions),
	}, nil
}
