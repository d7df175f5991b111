package terrain

import "math"

// ChunkSize is the side length of a generated map chunk. 241 = 240+1 keeps
// (ChunkSize-1) divisible by every simplification increment 2,4,6,...,12.
const ChunkSize = 241

// HeightField is a Width x Height grid of elevation samples stored row-major.
// Generators fill it once; after it is handed out it is treated as read-only.
type HeightField struct {
	Width  int
	Height int
	data   []float32
}

// NewHeightField allocates a zeroed field.
func NewHeightField(width, height int) *HeightField {
	return &HeightField{
		Width:  width,
		Height: height,
		data:   make([]float32, width*height),
	}
}

// At returns the sample at (x, y).
func (f *HeightField) At(x, y int) float32 {
	return f.data[y*f.Width+x]
}

// Set stores a sample. Only generators call this, before publishing the field.
func (f *HeightField) Set(x, y int, v float32) {
	f.data[y*f.Width+x] = v
}

// Len returns the number of cells.
func (f *HeightField) Len() int { return len(f.data) }

// MinMax returns the smallest and largest sample.
func (f *HeightField) MinMax() (lo, hi float32) {
	if len(f.data) == 0 {
		return 0, 0
	}
	lo, hi = f.data[0], f.data[0]
	for _, v := range f.data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// Equal reports whether both fields have the same shape and bit-identical samples.
func (f *HeightField) Equal(o *HeightField) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f.Width != o.Width || f.Height != o.Height {
		return false
	}
	for i, v := range f.data {
		if math.Float32bits(v) != math.Float32bits(o.data[i]) {
			return false
		}
	}
	return true
}
