// Package core provides configuration profiles and validation for trishare.
package core

import (
	"errors"
	"fmt"
	"time"

	trishare "github.com/BackendStack21/trishare-go"
)

// Profile names a preset sharing + temporal configuration.
type Profile string

const (
	// ProfileStandard is the library default: sequential splitting and
	// 100ms paced iterations.
	ProfileStandard Profile = "standard"
	// ProfileImaging suits multi-megabyte payloads such as medical images.
	ProfileImaging Profile = "imaging"
	// ProfileFast disables pacing; intended for tests and benchmarks.
	ProfileFast Profile = "fast"
)

// StandardConfig is the configuration for ProfileStandard.
var StandardConfig = trishare.DefaultConfig()

// ImagingConfig is the configuration for ProfileImaging.
var ImagingConfig = trishare.Config{
	Sharing: trishare.SharingConfig{
		Parallel:          true,
		ParallelThreshold: 64 * 1024,
		BlockSize:         16 * 1024,
	},
	Temporal: trishare.TemporalConfig{
		MinIterationTime:  50 * time.Millisecond,
		EnforceTiming:     true,
		MemorySize:        8 * 1024 * 1024,
		VerificationSteps: trishare.CycleLength,
	},
	ShareCount: trishare.ShareCount,
}

// FastConfig is the configuration for ProfileFast.
var FastConfig = trishare.Config{
	Sharing: trishare.SharingConfig{
		Parallel:          true,
		ParallelThreshold: 1024,
		BlockSize:         1024,
	},
	Temporal: trishare.TemporalConfig{
		MinIterationTime:  time.Millisecond,
		EnforceTiming:     false,
		MemorySize:        1024,
		VerificationSteps: trishare.CycleLength,
	},
	ShareCount: trishare.ShareCount,
}

// Profiles lists the known profile names.
func Profiles() []Profile {
	return []Profile{ProfileStandard, ProfileImaging, ProfileFast}
}

// GetProfile returns the configuration for the named profile. The empty
// name selects ProfileStandard.
func GetProfile(p Profile) (trishare.Config, error) {
	switch p {
	case ProfileStandard, "":
		return StandardConfig, nil
	case ProfileImaging:
		return ImagingConfig, nil
	case ProfileFast:
		return FastConfig, nil
	default:
		return trishare.Config{}, trishare.InvalidInput("unknown profile: %s", p)
	}
}

// ValidateSharingConfig checks a sharing configuration for consistency.
func ValidateSharingConfig(cfg trishare.SharingConfig) error {
	if cfg.BlockSize <= 0 {
		return errors.New("block size must be positive")
	}
	if cfg.ParallelThreshold < 0 {
		return errors.New("parallel threshold cannot be negative")
	}
	return nil
}

// ValidateTemporalConfig checks a temporal configuration for consistency.
func ValidateTemporalConfig(cfg trishare.TemporalConfig) error {
	if cfg.MinIterationTime < 0 {
		return errors.New("minimum iteration time cannot be negative")
	}
	if cfg.MemorySize < 0 {
		return errors.New("memory size cannot be negative")
	}
	if cfg.VerificationSteps < 0 {
		return errors.New("verification steps cannot be negative")
	}
	return nil
}

// ValidateConfig validates every section of cfg. Errors are InvalidInput.
func ValidateConfig(cfg trishare.Config) error {
	if cfg.ShareCount != trishare.ShareCount {
		return trishare.InvalidInput("share count must be %d, got %d", trishare.ShareCount, cfg.ShareCount)
	}
	if err := ValidateSharingConfig(cfg.Sharing); err != nil {
		return trishare.InvalidInput("sharing: %v", err)
	}
	if err := ValidateTemporalConfig(cfg.Temporal); err != nil {
		return trishare.InvalidInput("temporal: %v", err)
	}
	return nil
}

// Describe renders cfg on one line for logs and CLI output.
func Describe(cfg trishare.Config) string {
	return fmt.Sprintf("shares=%d parallel=%t threshold=%d block=%d min_iter=%v enforce=%t",
		cfg.ShareCount, cfg.Sharing.Parallel, cfg.Sharing.ParallelThreshold, cfg.Sharing.BlockSize,
		cfg.Temporal.MinIterationTime, cfg.Temporal.EnforceTiming)
}
