package main

import (
	"fmt"
	"log/slog"

	"mapgen/internal/config"
	"mapgen/internal/dispatch"
	"mapgen/internal/meshing"
	"mapgen/internal/preview"
	"mapgen/internal/texture"
)

func runPreview(d *dispatch.Dispatcher, cfg *config.Config, modeName string, sweep int, log *slog.Logger) error {
	mode, err := preview.ParseDrawMode(modeName)
	if err != nil {
		return err
	}
	sink, err := texture.NewFileSink(cfg.OutputDir, "preview-")
	if err != nil {
		return err
	}

	p := preview.New(d, meshing.NewGridBuilder(), sink, mode, log)
	settings := d.Settings()

	if sweep <= 0 {
		if err := p.Draw(settings.Snapshot()); err != nil {
			return fmt.Errorf("draw %s: %w", mode, err)
		}
		log.Info("preview written", "mode", mode, "dir", cfg.OutputDir)
		return nil
	}

	p.Bind(settings)
	p.SetAutoUpdate(true)
	for octaves := 1; octaves <= sweep; octaves++ {
		settings.SetOctaves(octaves)
	}
	log.Info("octave sweep written", "mode", mode, "steps", sweep, "dir", cfg.OutputDir)
	return nil
}
