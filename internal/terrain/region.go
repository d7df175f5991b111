package terrain

import "image/color"

// Unclassified is written to cells whose height exceeds every region threshold.
var Unclassified = color.RGBA{}

// Region is a classification rule: cells at or below Height take Color.
type Region struct {
	Name   string     `json:"name"`
	Height float32    `json:"height"`
	Color  color.RGBA `json:"color"`
}

// ColorField holds one color per HeightField cell, index y*Width+x.
// RegionIndex records which region matched each cell, -1 when none did.
type ColorField struct {
	Width       int
	Height      int
	Pixels      []color.RGBA
	RegionIndex []int
}

// At returns the color at (x, y).
func (c *ColorField) At(x, y int) color.RGBA {
	return c.Pixels[y*c.Width+x]
}

// Equal reports whether both fields hold identical colors and region indices.
func (c *ColorField) Equal(o *ColorField) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.Width != o.Width || c.Height != o.Height || len(c.Pixels) != len(o.Pixels) {
		return false
	}
	for i := range c.Pixels {
		if c.Pixels[i] != o.Pixels[i] || c.RegionIndex[i] != o.RegionIndex[i] {
			return false
		}
	}
	return true
}

// Match scans regions in the given order and returns the first one whose
// threshold is >= h. Regions are expected in ascending threshold order;
// an unsorted list is scanned as-is, so an earlier high threshold shadows
// later lower ones.
func Match(h float32, regions []Region) (color.RGBA, int) {
	for i := range regions {
		if h <= regions[i].Height {
			return regions[i].Color, i
		}
	}
	return Unclassified, -1
}

// Classify builds the color field for a height field.
func Classify(f *HeightField, regions []Region) *ColorField {
	cf := &ColorField{
		Width:       f.Width,
		Height:      f.Height,
		Pixels:      make([]color.RGBA, f.Len()),
		RegionIndex: make([]int, f.Len()),
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			i := y*f.Width + x
			cf.Pixels[i], cf.RegionIndex[i] = Match(f.At(x, y), regions)
		}
	}
	return cf
}
