package renderer

import (
	"context"
	"image"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID      int             // Unique tile identifier, also the sampler seed offset
	Bounds  image.Rectangle // Pixel bounds in image coordinates, row 0 at the top
	Sampler core.Sampler    // Tile-specific random source for deterministic results
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, newSampler func(tileID int) core.Sampler) []*Tile {
	if tileSize <= 0 {
		tileSize = max(width, height)
	}

	var tiles []*Tile
	tileID := 0

	// Ceiling division
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:      tileID,
				Bounds:  image.Rect(x0, y0, x1, y1),
				Sampler: newSampler(tileID),
			})
			tileID++
		}
	}

	return tiles
}

// renderTile renders every pixel of the tile into the frame.
// Tiles never overlap, so concurrent tiles write disjoint pixels.
func (rt *Raytracer) renderTile(ctx context.Context, tile *Tile, frame *Frame) (RenderStats, error) {
	stats := RenderStats{}
	height := rt.config.Height

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		// Image rows run top to bottom, the vertical pixel index bottom to top
		j := height - 1 - y
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			colorVec := rt.RenderPixel(i, j, tile.Sampler)
			frame.Set(i, y, ToRGB(colorVec))

			stats.TotalPixels++
			stats.TotalSamples += rt.config.SamplesPerPixel
		}
	}

	return stats, nil
}
