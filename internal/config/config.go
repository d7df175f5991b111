package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Backpressure policies for a saturated worker pool.
const (
	BackpressureBlock  = "block"
	BackpressureReject = "reject"
)

// Config holds the process configuration for the generation service.
type Config struct {
	Workers      int    `json:"workers"`
	QueueSize    int    `json:"queue_size"`
	Backpressure string `json:"backpressure"` // "block" or "reject"
	Noise        string `json:"noise"`        // "value", "perlin" or "simplex"
	TickRate     int    `json:"tick_rate"`    // drain ticks per second
	OutputDir    string `json:"output_dir"`
	ParamsFile   string `json:"params_file"`
	ParamsURL    string `json:"params_url"` // fetched with go-getter into ParamsFile's directory
	Chunks       int    `json:"chunks"`     // chunks requested by the stream command
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers:      max(runtime.NumCPU()/2, 1),
		QueueSize:    64,
		Backpressure: BackpressureBlock,
		Noise:        "perlin",
		TickRate:     60,
		OutputDir:    "out",
		Chunks:       9,
	}
}

// Load reads a JSON config file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadParameters reads a JSON parameter preset. Missing fields keep their
// DefaultParameters values; the result is validated.
func LoadParameters(path string) (Parameters, error) {
	p := DefaultParameters()
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("read parameters %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Parameters{}, fmt.Errorf("parse parameters %s: %w", path, err)
	}
	p.Validate()
	return p, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["queue"] {
		cfg.QueueSize = fromFile.QueueSize
	}
	if !explicitFlags["backpressure"] {
		cfg.Backpressure = fromFile.Backpressure
	}
	if !explicitFlags["noise"] {
		cfg.Noise = fromFile.Noise
	}
	if !explicitFlags["tick-rate"] {
		cfg.TickRate = fromFile.TickRate
	}
	if !explicitFlags["out"] {
		cfg.OutputDir = fromFile.OutputDir
	}
	if !explicitFlags["params"] {
		cfg.ParamsFile = fromFile.ParamsFile
	}
	if !explicitFlags["params-url"] {
		cfg.ParamsURL = fromFile.ParamsURL
	}
	if !explicitFlags["chunks"] {
		cfg.Chunks = fromFile.Chunks
	}
}
