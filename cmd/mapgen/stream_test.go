package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"mapgen/internal/config"
)

func TestRunStreamExportsEveryChunk(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.Chunks = 3
	cfg.Workers = 2
	cfg.TickRate = 0

	params := config.DefaultParameters()
	params.SimplificationLevel = 2
	d, err := newDispatcher(cfg, params, log)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if err := runStream(d, cfg, log); err != nil {
		t.Fatal(err)
	}
	objs, _ := filepath.Glob(filepath.Join(cfg.OutputDir, "chunk-mesh-*.obj"))
	if len(objs) != cfg.Chunks {
		t.Errorf("got %d obj files, want %d", len(objs), cfg.Chunks)
	}
	if n := d.PendingMapResults() + d.PendingMeshResults(); n != 0 {
		t.Errorf("%d results left undrained", n)
	}
}

func TestRunPreviewSweep(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()

	d, err := newDispatcher(cfg, config.DefaultParameters(), log)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if err := runPreview(d, cfg, "noise", 3, log); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d files, want 3 noise textures", len(entries))
	}
	if got := d.Settings().Octaves(); got != 3 {
		t.Errorf("octaves after sweep = %d, want 3", got)
	}
}

func TestLoadParametersDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	p, err := loadParameters(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if p.Octaves != config.DefaultParameters().Octaves {
		t.Errorf("octaves = %d, want default", p.Octaves)
	}
}
