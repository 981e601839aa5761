package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly optional fields.
type FileConfig struct {
	Seed           int64    `toml:"seed"`
	Iterations     int      `toml:"iterations"`
	InitialSamples int      `toml:"initial_samples"`
	NoiseVariance  *float64 `toml:"noise_variance"`
	Xi             *float64 `toml:"xi"`

	GridPerDim       int `toml:"grid_per_dim"`
	GlobalCandidates int `toml:"global_candidates"`
	Starts           int `toml:"starts"`

	OutputPath string `toml:"output_path"`
	Quiet      *bool  `toml:"quiet"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig

	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}

	return fc, nil
}

// DefaultConfigPath returns the default configuration file path,
// ~/.camelback/config.toml, when the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".camelback", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config
// struct. It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt64("seed", fc.Seed, &cfg.Seed)
	s.setInt("iterations", fc.Iterations, &cfg.Iterations)
	s.setInt("initial-samples", fc.InitialSamples, &cfg.InitialSamples)

	s.setFloat("noise-variance", fc.NoiseVariance, &cfg.NoiseVariance)
	s.setFloat("xi", fc.Xi, &cfg.Xi)

	s.setInt("grid", fc.GridPerDim, &cfg.GridPerDim)
	s.setInt("global-candidates", fc.GlobalCandidates, &cfg.GlobalCandidates)
	s.setInt("starts", fc.Starts, &cfg.Starts)

	s.setString("out", fc.OutputPath, &cfg.OutputPath)
	s.setBool("quiet", fc.Quiet, &cfg.Quiet)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
