package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mapgen/internal/config"
	"mapgen/internal/dispatch"
	"mapgen/internal/meshing"
	"mapgen/internal/noise"

	getter "github.com/hashicorp/go-getter"
	"github.com/xlab/closer"
)

const usage = `usage: mapgen [flags] <command>

commands:
  preview   generate one chunk synchronously and write it in the chosen draw mode
  stream    request a grid of chunks through the worker pool and export them

flags:
`

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "JSON config file")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "generation worker goroutines")
	flag.IntVar(&cfg.QueueSize, "queue", cfg.QueueSize, "pending job capacity")
	flag.StringVar(&cfg.Backpressure, "backpressure", cfg.Backpressure, "saturated pool policy: block or reject")
	flag.StringVar(&cfg.Noise, "noise", cfg.Noise, "noise backend: value, perlin or simplex")
	flag.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "result drain ticks per second")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory")
	flag.StringVar(&cfg.ParamsFile, "params", cfg.ParamsFile, "JSON generation parameters")
	flag.StringVar(&cfg.ParamsURL, "params-url", cfg.ParamsURL, "fetch parameters from this URL (go-getter syntax)")
	flag.IntVar(&cfg.Chunks, "chunks", cfg.Chunks, "chunks requested by stream")
	mode := flag.String("mode", "color", "preview draw mode: noise, color or mesh")
	sweep := flag.Int("sweep-octaves", 0, "preview: redraw for octaves 1..n with auto update")
	seed := flag.Int64("seed", 0, "override the parameter seed when non-zero")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	params, err := loadParameters(cfg, log)
	if err != nil {
		log.Error("load parameters", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		params.Seed = *seed
	}

	d, err := newDispatcher(cfg, params, log)
	if err != nil {
		log.Error("create dispatcher", "error", err)
		os.Exit(1)
	}
	closer.Bind(d.Close)

	switch cmd := flag.Arg(0); cmd {
	case "preview":
		err = runPreview(d, cfg, *mode, *sweep, log)
	case "stream":
		err = runStream(d, cfg, log)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		log.Error(flag.Arg(0)+" failed", "error", err)
		closer.Exit(1)
	}
	closer.Close()
}

// loadParameters resolves the generation parameters: a remote preset is
// downloaded first, then the local file is read; with neither the defaults
// are used.
func loadParameters(cfg *config.Config, log *slog.Logger) (config.Parameters, error) {
	path := cfg.ParamsFile
	if cfg.ParamsURL != "" {
		if path == "" {
			path = filepath.Join(cfg.OutputDir, "params.json")
		}
		log.Info("fetching parameters", "url", cfg.ParamsURL, "dst", path)
		if err := getter.GetFile(path, cfg.ParamsURL); err != nil {
			return config.Parameters{}, fmt.Errorf("fetch %s: %w", cfg.ParamsURL, err)
		}
	}
	if path == "" {
		return config.DefaultParameters(), nil
	}
	return config.LoadParameters(path)
}

func newDispatcher(cfg *config.Config, params config.Parameters, log *slog.Logger) (*dispatch.Dispatcher, error) {
	sampler, err := noise.New(cfg.Noise)
	if err != nil {
		return nil, err
	}
	policy, err := dispatch.ParseBackpressure(cfg.Backpressure)
	if err != nil {
		return nil, err
	}
	opts := dispatch.Options{
		Workers:      cfg.Workers,
		QueueSize:    cfg.QueueSize,
		Backpressure: policy,
	}
	log.Info("starting dispatcher",
		"workers", opts.Workers,
		"queue", opts.QueueSize,
		"backpressure", cfg.Backpressure,
		"noise", sampler.Name(),
		"seed", params.Seed,
	)
	return dispatch.New(config.NewSettings(params), sampler, meshing.NewGridBuilder(), opts, log), nil
}
