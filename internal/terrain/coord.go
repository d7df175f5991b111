package terrain

// Coord addresses a chunk on the terrain grid.
type Coord struct {
	X, Y int
}

// Origin returns the sample offset of the chunk's first corner. Neighbouring
// chunks share their edge row and column.
func (c Coord) Origin() (x, y float64) {
	step := float64(ChunkSize - 1)
	return float64(c.X) * step, float64(c.Y) * step
}

// Rings lists up to limit chunk coordinates around center, nearest ring
// first. Each ring is walked along its top edge, down the right side, back
// along the bottom and up the left side. limit <= 0 returns nil.
func Rings(center Coord, limit int) []Coord {
	if limit <= 0 {
		return nil
	}
	out := make([]Coord, 0, limit)
	push := func(x, y int) bool {
		out = append(out, Coord{X: x, Y: y})
		return len(out) < limit
	}

	if !push(center.X, center.Y) {
		return out
	}
	for r := 1; ; r++ {
		x0, x1 := center.X-r, center.X+r
		y0, y1 := center.Y-r, center.Y+r

		for x := x0; x <= x1; x++ {
			if !push(x, y0) {
				return out
			}
		}
		for y := y0 + 1; y <= y1-1; y++ {
			if !push(x1, y) {
				return out
			}
		}
		for x := x1; x >= x0; x-- {
			if !push(x, y1) {
				return out
			}
		}
		for y := y1 - 1; y >= y0+1; y-- {
			if !push(x0, y) {
				return out
			}
		}
	}
}
