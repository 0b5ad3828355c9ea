package config

import "fmt"

// Config holds all configuration parameters for lufs-normalizer
type Config struct {
	// Input/output files
	InputFile  string
	OutputFile string

	// Loudness normalization settings
	TargetLoudness  float64 // LUFS
	TruePeakCeiling float64 // dBTP

	// Convergence settings
	Tolerance   float64 // LU
	MaxAttempts int

	// Verbose enables informational decoder output
	Verbose bool
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		TargetLoudness:  -14.0,
		TruePeakCeiling: -1.0,
		Tolerance:       0.5,
		MaxAttempts:     1,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("no input file specified")
	}

	// Common loudness targets:
	// Spotify / YouTube: -14 LUFS
	// Apple Podcasts: -16 LUFS
	// EBU R128 (broadcast): -23 LUFS
	if c.TargetLoudness > -6.0 {
		return fmt.Errorf("target loudness %.1f LUFS is too high (risk of severe clipping)", c.TargetLoudness)
	}

	if c.TargetLoudness < -30.0 {
		return fmt.Errorf("target loudness %.1f LUFS is too low (audio will be very quiet)", c.TargetLoudness)
	}

	if c.TruePeakCeiling > 0.0 || c.TruePeakCeiling < -10.0 {
		return fmt.Errorf("true peak ceiling must be between -10.0 and 0.0 dBTP")
	}

	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive")
	}

	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1")
	}

	return nil
}
