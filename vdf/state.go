package vdf

import (
	"time"

	trishare "github.com/BackendStack21/trishare-go"
)

// MaxIterations bounds the IterationState counter.
const MaxIterations = trishare.CycleLength

// IterationState tracks iteration progress and timing for callers that
// want a TimingViolation when they advance too fast. Unlike
// TemporalVDF.Iterate it never sleeps.
type IterationState struct {
	iteration        int
	startTime        time.Time
	lastIteration    time.Time
	minIterationTime time.Duration
	enforceTiming    bool
	opts             options
}

// NewIterationState creates a tracker whose clock starts now.
func NewIterationState(minIterationTime time.Duration, enforceTiming bool, opts ...Option) *IterationState {
	return &IterationState{
		startTime:        time.Now(),
		minIterationTime: minIterationTime,
		enforceTiming:    enforceTiming,
		opts:             buildOptions(opts),
	}
}

// NewIterationStateFromConfig creates a tracker from the timing fields of cfg.
func NewIterationStateFromConfig(cfg trishare.TemporalConfig, opts ...Option) *IterationState {
	return NewIterationState(cfg.MinIterationTime, cfg.EnforceTiming, opts...)
}

// Advance moves to the next iteration. It fails with InvalidState once
// MaxIterations is reached, and with TimingViolation when timing is
// enforced and less than the minimum has passed since the previous advance.
func (s *IterationState) Advance() error {
	if s.iteration >= MaxIterations {
		return trishare.InvalidState("maximum iterations reached")
	}

	if !s.lastIteration.IsZero() && s.enforceTiming {
		if elapsed := time.Since(s.lastIteration); elapsed < s.minIterationTime {
			s.opts.log.WithField("elapsed", elapsed).Warn("iteration advanced too early")
			return trishare.TimingViolation(s.minIterationTime, elapsed)
		}
	}

	s.opts.log.WithField("iteration", s.iteration+1).Debug("starting iteration")
	s.iteration++
	s.lastIteration = time.Now()

	s.opts.log.WithField("iteration", s.iteration).
		WithField("elapsed", s.Elapsed()).
		Info("completed iteration")
	return nil
}

// CurrentIteration returns the number of successful advances.
func (s *IterationState) CurrentIteration() int { return s.iteration }

// IsComplete reports whether the counter reached MaxIterations.
func (s *IterationState) IsComplete() bool { return s.iteration >= MaxIterations }

// Elapsed returns the wall time since the tracker was created.
func (s *IterationState) Elapsed() time.Duration { return time.Since(s.startTime) }
