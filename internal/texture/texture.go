package texture

import (
	"image"
	"image/color"

	"mapgen/internal/terrain"
)

// FromHeightMap renders a height field as grayscale, 0 black and 1 white.
func FromHeightMap(h *terrain.HeightField) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, h.Width, h.Height))
	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			v := h.At(x, y)
			v = max(0, min(1, v))
			g := uint8(v*255 + 0.5)
			img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}
	return img
}

// FromColorMap copies a color field into an image.
func FromColorMap(c *terrain.ColorField) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, c.At(x, y))
		}
	}
	return img
}
