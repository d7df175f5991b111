package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"mapgen/internal/config"
	"mapgen/internal/dispatch"
	"mapgen/internal/host"
	"mapgen/internal/meshing"
	"mapgen/internal/terrain"
	"mapgen/internal/texture"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// chunk is one streamed tile collected on the host goroutine.
type chunk struct {
	coord terrain.Coord
	color image.Image
	mesh  *meshing.MeshData
}

func runStream(d *dispatch.Dispatcher, cfg *config.Config, log *slog.Logger) error {
	sink, err := texture.NewFileSink(cfg.OutputDir, "chunk-")
	if err != nil {
		return err
	}

	var (
		chunks   []*chunk
		failures int
		expected = cfg.Chunks
	)
	done := func() int { return len(chunks) + failures }

	settings := d.Settings()
	for _, coord := range terrain.Rings(terrain.Coord{}, cfg.Chunks) {
		x, y := coord.Origin()
		settings.Update(func(p *config.Parameters) { p.Offset = mgl64.Vec2{x, y} })

		c := &chunk{coord: coord}
		err := d.RequestMapData(func(res dispatch.MapResult) {
			if res.Err != nil {
				failures++
				return
			}
			c.color = texture.FromColorMap(res.Value.Color)
			err := d.RequestMeshData(res.Value.Height, func(mr dispatch.MeshResult) {
				if mr.Err != nil {
					failures++
					return
				}
				c.mesh = mr.Value
				chunks = append(chunks, c)
			})
			if err != nil {
				log.Warn("mesh request rejected", "chunk", c.coord, "error", err)
				failures++
			}
		})
		if err != nil {
			log.Warn("map request rejected", "chunk", c.coord, "error", err)
			expected--
		}
	}

	loop := host.NewLoop(d, cfg.TickRate, log)
	loop.OnTick = func(int) bool { return done() < expected }
	if err := loop.Run(context.Background()); err != nil {
		return err
	}
	log.Info("stream drained", "ticks", loop.Ticks(), "chunks", len(chunks), "failed", failures)

	if err := export(sink, chunks, cfg.Workers); err != nil {
		return err
	}
	if failures > 0 || expected < cfg.Chunks {
		return fmt.Errorf("%d of %d chunks failed", cfg.Chunks-len(chunks), cfg.Chunks)
	}
	return nil
}

// export writes the collected chunks with at most workers concurrent
// writers.
func export(sink texture.Sink, chunks []*chunk, workers int) error {
	var g errgroup.Group
	g.SetLimit(max(workers, 1))

	var mu sync.Mutex
	written := 0
	for _, c := range chunks {
		g.Go(func() error {
			if err := sink.DrawMesh(c.mesh, c.color); err != nil {
				return fmt.Errorf("export chunk %v: %w", c.coord, err)
			}
			mu.Lock()
			written++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("export (%d written): %w", written, err)
	}
	return nil
}
