package cliconfig

import "fmt"

// DefaultOutputPath is where the comparison plot is written when no
// path is configured.
const DefaultOutputPath = "camelback.png"

// Config holds CLI configuration for the camelback experiment.
type Config struct {
	Seed           int64
	Iterations     int
	InitialSamples int

	NoiseVariance float64
	Xi            float64

	GridPerDim       int
	GlobalCandidates int
	Starts           int

	OutputPath string
	Quiet      bool
}

// DefaultConfig returns a Config with the reference study's defaults.
func DefaultConfig() Config {
	return Config{
		Seed:             42,
		Iterations:       50,
		InitialSamples:   9,
		NoiseVariance:    1.0,
		Xi:               0.01,
		GridPerDim:       41,
		GlobalCandidates: 200,
		Starts:           5,
		OutputPath:       DefaultOutputPath,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be positive")
	}

	if c.InitialSamples < 1 {
		return fmt.Errorf("initial-samples must be positive")
	}

	if c.NoiseVariance < 0 {
		return fmt.Errorf("noise-variance must not be negative")
	}

	if c.GridPerDim < 2 {
		return fmt.Errorf("grid must be at least 2")
	}

	if c.GlobalCandidates < 1 {
		return fmt.Errorf("global-candidates must be positive")
	}

	if c.Starts < 1 {
		return fmt.Errorf("starts must be positive")
	}

	if c.OutputPath == "" {
		return fmt.Errorf("out is required")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't
// been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt64 sets an int64 value if non-zero and flag not changed.
func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if non-negative and flag not changed.
// Zero is meaningful here (a noiseless model), so only negative values
// are ignored.
func (s *configSetter) setFloat(flag string, value *float64, dst *float64) {
	if value == nil || *value < 0 || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
