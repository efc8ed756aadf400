// Package vdf implements the temporal delay function over XOR state vectors
// and a strict iteration/timing tracker.
//
// The delay function keeps three same-length vectors whose XOR is the
// padded input. Each iteration replaces every vector with the XOR of all
// three, so after the first step the vectors are identical and equal to the
// input; further steps leave the recoverable value unchanged. The delay a
// cycle takes comes from wall-clock pacing (TemporalConfig.EnforceTiming),
// not from sequential work.
package vdf

import (
	"encoding/hex"
	"time"

	"github.com/sirupsen/logrus"

	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/metrics"
	"github.com/BackendStack21/trishare-go/padding"
	"github.com/BackendStack21/trishare-go/utils"
)

// CycleLength is the number of iterations that complete a cycle.
const CycleLength = trishare.CycleLength

const stateVectors = 3

// TemporalVDF runs one delay cycle at a time. It is not safe for concurrent
// use.
type TemporalVDF struct {
	config trishare.TemporalConfig
	opts   options

	state       [][]byte
	iteration   int
	startTime   time.Time
	initialHash [trishare.HashSize]byte
}

// New creates an uninitialized delay function.
func New(cfg trishare.TemporalConfig, opts ...Option) *TemporalVDF {
	return &TemporalVDF{config: cfg, opts: buildOptions(opts)}
}

// Config returns the configuration the delay function was built with.
func (v *TemporalVDF) Config() trishare.TemporalConfig { return v.config }

// IsInitialized reports whether Initialize has succeeded at least once.
func (v *TemporalVDF) IsInitialized() bool { return len(v.state) == stateVectors }

// IsComplete reports whether the current cycle has run all iterations.
func (v *TemporalVDF) IsComplete() bool { return v.iteration == CycleLength }

// Iteration returns the number of iterations run in the current cycle.
func (v *TemporalVDF) Iteration() int { return v.iteration }

// Initialize splits input into three random state vectors aligned to 16
// bytes and starts a new cycle, discarding any previous state. Bytes past
// len(input) in the aligned vectors are random and are not part of the
// recoverable value.
func (v *TemporalVDF) Initialize(input []byte) error {
	if len(input) == 0 {
		return trishare.InvalidInput("input cannot be empty")
	}

	c, err := padding.PadToBlockSize(input, trishare.Alignment)
	if err != nil {
		return err
	}
	a, err := utils.SecureRandomBytes(len(c))
	if err != nil {
		return trishare.IOError(err)
	}
	b, err := utils.SecureRandomBytes(len(c))
	if err != nil {
		return trishare.IOError(err)
	}
	// c keeps its random tail; only the input prefix is masked.
	for i := range input {
		c[i] ^= a[i] ^ b[i]
	}

	v.state = [][]byte{a, b, c}
	v.initialHash = v.stateHash()
	v.iteration = 0
	v.startTime = time.Now()

	v.opts.log.WithFields(logrus.Fields{
		"input_len":  len(input),
		"vector_len": len(c),
	}).Debug("initialized temporal state")
	return nil
}

// Iterate runs one mixing step. With EnforceTiming set it then sleeps until
// MinIterationTime has passed since the step began; pacing never fails.
func (v *TemporalVDF) Iterate() (err error) {
	iterStart := time.Now()
	defer func() { v.opts.metrics.Observe(metrics.OpIterate, iterStart, err) }()

	if !v.IsInitialized() {
		return trishare.InvalidState("delay function not initialized")
	}
	if v.iteration >= CycleLength {
		return trishare.InvalidState("maximum iterations (%d) already reached", CycleLength)
	}

	v.opts.log.Debugf("starting iteration %d/%d", v.iteration+1, CycleLength)

	// Each vector XORed with the other two is a^b^c for every vector.
	mixed := make([]byte, len(v.state[0]))
	utils.XOR3Into(mixed, v.state[0], v.state[1], v.state[2])
	next := make([][]byte, stateVectors)
	next[0] = mixed
	for i := 1; i < stateVectors; i++ {
		next[i] = append([]byte(nil), mixed...)
	}
	v.state = next
	v.iteration++

	if v.config.EnforceTiming {
		utils.EnforceDelay(iterStart, v.config.MinIterationTime)
	}

	v.opts.metrics.IncIterations()
	v.opts.log.WithField("took", time.Since(iterStart)).
		Infof("completed iteration %d/%d", v.iteration, CycleLength)
	return nil
}

// GetOutput returns the XOR of the state vectors once the cycle is complete.
func (v *TemporalVDF) GetOutput() ([]byte, error) {
	if !v.IsComplete() {
		return nil, trishare.InvalidState("computation not complete: %d/%d iterations", v.iteration, CycleLength)
	}
	if !v.IsInitialized() {
		return nil, trishare.InvalidState("delay function not initialized")
	}

	out := make([]byte, len(v.state[0]))
	utils.XOR3Into(out, v.state[0], v.state[1], v.state[2])
	return out, nil
}

// GenerateProof snapshots the initial and final state hashes of a completed
// cycle together with its elapsed time.
func (v *TemporalVDF) GenerateProof() (proof *trishare.TemporalProof, err error) {
	start := time.Now()
	defer func() { v.opts.metrics.Observe(metrics.OpProve, start, err) }()

	if !v.IsComplete() {
		return nil, trishare.InvalidState("cannot generate proof: %d/%d iterations complete", v.iteration, CycleLength)
	}

	proof = &trishare.TemporalProof{
		InitialStateHash: v.initialHash,
		FinalStateHash:   v.stateHash(),
		ComputationTime:  time.Since(v.startTime),
		IterationCount:   v.iteration,
	}
	v.opts.log.WithFields(logrus.Fields{
		"initial_hash": shortHash(proof.InitialStateHash),
		"final_hash":   shortHash(proof.FinalStateHash),
		"elapsed":      proof.ComputationTime,
		"iterations":   proof.IterationCount,
	}).Debug("generated proof")
	return proof, nil
}

// VerifyProof checks proof against this instance's recorded initial hash and
// current state. A mismatch yields false, not an error.
func (v *TemporalVDF) VerifyProof(proof *trishare.TemporalProof) (ok bool, err error) {
	start := time.Now()
	defer func() { v.opts.metrics.Observe(metrics.OpVerifyProof, start, err) }()

	if !v.IsInitialized() {
		return false, trishare.InvalidState("delay function not initialized")
	}
	if proof == nil {
		return false, trishare.InvalidInput("proof cannot be nil")
	}

	if !utils.ConstantTimeEqual(v.initialHash[:], proof.InitialStateHash[:]) {
		v.opts.log.WithFields(logrus.Fields{
			"stored": shortHash(v.initialHash),
			"proof":  shortHash(proof.InitialStateHash),
		}).Warn("initial state hash mismatch")
		return false, nil
	}

	if proof.IterationCount != CycleLength {
		v.opts.log.WithFields(logrus.Fields{
			"expected": CycleLength,
			"actual":   proof.IterationCount,
		}).Warn("iteration count mismatch")
		return false, nil
	}

	current := v.stateHash()
	if !utils.ConstantTimeEqual(current[:], proof.FinalStateHash[:]) {
		v.opts.log.WithFields(logrus.Fields{
			"current": shortHash(current),
			"proof":   shortHash(proof.FinalStateHash),
		}).Warn("final state hash mismatch")
		return false, nil
	}
	return true, nil
}

// RunCycle initializes v with input, runs a full cycle and returns the
// output together with its proof.
func RunCycle(v *TemporalVDF, input []byte) ([]byte, *trishare.TemporalProof, error) {
	if err := v.Initialize(input); err != nil {
		return nil, nil, err
	}
	for i := 0; i < CycleLength; i++ {
		if err := v.Iterate(); err != nil {
			return nil, nil, err
		}
	}
	out, err := v.GetOutput()
	if err != nil {
		return nil, nil, err
	}
	proof, err := v.GenerateProof()
	if err != nil {
		return nil, nil, err
	}
	return out, proof, nil
}

// stateHash digests the concatenated state vectors.
func (v *TemporalVDF) stateHash() [trishare.HashSize]byte {
	return utils.Digest(v.state...)
}

func shortHash(h [trishare.HashSize]byte) string {
	return hex.EncodeToString(h[:8])
}
