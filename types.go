// Package trishare implements three-way XOR secret splitting and a
// wall-clock paced temporal delay function over XOR shares.
//
// WARNING: XOR 3-of-3 splitting is not a threshold scheme and the temporal
// delay function is not a cryptographically sound VDF. The delay comes from
// pacing, not from sequential computation. DO NOT rely on it for time-lock
// guarantees.
package trishare

import "time"

const (
	// ShareCount is the number of shares produced by a split.
	ShareCount = 3
	// Alignment is the block alignment of every padded buffer and share.
	Alignment = 16
	// CycleLength is the number of iterations that complete a delay cycle.
	CycleLength = 4
	// HashSize is the size in bytes of every content and state digest.
	HashSize = 32

	// DefaultBlockSize is the block size of the parallel split path.
	DefaultBlockSize = 64 * 1024
)

// =============================================================================
// Secret Sharing Types
// =============================================================================

// SharingConfig controls how a secret is split into shares.
type SharingConfig struct {
	Parallel          bool `yaml:"parallel"`           // Enable block-parallel dispatch
	ParallelThreshold int  `yaml:"parallel_threshold"` // Minimum padded size (bytes) for parallel dispatch
	BlockSize         int  `yaml:"block_size"`         // Block size (bytes) of the parallel path
}

// DefaultSharingConfig returns the base sharing configuration. Parallel
// dispatch is off.
func DefaultSharingConfig() SharingConfig {
	return SharingConfig{
		Parallel:          false,
		ParallelThreshold: DefaultBlockSize,
		BlockSize:         DefaultBlockSize,
	}
}

// =============================================================================
// Temporal Delay Types
// =============================================================================

// TemporalConfig controls the pacing of the temporal delay function.
// MemorySize and VerificationSteps are informational and do not change
// behavior.
type TemporalConfig struct {
	MinIterationTime  time.Duration `yaml:"min_iteration_time"`
	EnforceTiming     bool          `yaml:"enforce_timing"`
	MemorySize        int           `yaml:"memory_size"`
	VerificationSteps int           `yaml:"verification_steps"`
}

// DefaultTemporalConfig returns 100ms paced iterations with a 1 MiB memory hint.
func DefaultTemporalConfig() TemporalConfig {
	return TemporalConfig{
		MinIterationTime:  100 * time.Millisecond,
		EnforceTiming:     true,
		MemorySize:        1024 * 1024,
		VerificationSteps: CycleLength,
	}
}

// TemporalProof is a snapshot taken when a delay cycle completes.
type TemporalProof struct {
	InitialStateHash [HashSize]byte
	FinalStateHash   [HashSize]byte
	ComputationTime  time.Duration
	IterationCount   int
}

// =============================================================================
// Library Configuration
// =============================================================================

// Config bundles the sharing and temporal settings used together by callers
// that protect payloads end to end.
type Config struct {
	Temporal   TemporalConfig `yaml:"temporal"`
	Sharing    SharingConfig  `yaml:"sharing"`
	ShareCount int            `yaml:"share_count"`
}

// DefaultConfig returns the library defaults: three shares, no parallelism.
func DefaultConfig() Config {
	return Config{
		Temporal:   DefaultTemporalConfig(),
		Sharing:    DefaultSharingConfig(),
		ShareCount: ShareCount,
	}
}
