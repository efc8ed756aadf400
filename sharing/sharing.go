// Package sharing implements three-party XOR secret splitting over padded
// buffers.
//
// A secret is padded (see package padding) and split into three shares
// A, B, C where A and B are uniformly random and C = padded ^ A ^ B. Any two
// shares reveal nothing about the secret; all three are required.
package sharing

import (
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/logging"
	"github.com/BackendStack21/trishare-go/metrics"
	"github.com/BackendStack21/trishare-go/padding"
	"github.com/BackendStack21/trishare-go/utils"
)

// Option configures a Splitter.
type Option func(*Splitter)

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Splitter) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records every split and reconstruct on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Splitter) { s.metrics = r }
}

// Splitter splits secrets into three shares and reconstructs them. Its
// configuration is fixed at construction; a Splitter keeps no other state
// and is safe for concurrent use.
type Splitter struct {
	config  trishare.SharingConfig
	log     logrus.FieldLogger
	metrics *metrics.Recorder
}

// New creates a splitter for cfg.
func New(cfg trishare.SharingConfig, opts ...Option) *Splitter {
	s := &Splitter{config: cfg, log: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDefault creates a splitter with trishare.DefaultSharingConfig.
func NewDefault(opts ...Option) *Splitter {
	return New(trishare.DefaultSharingConfig(), opts...)
}

// Config returns the splitter configuration.
func (s *Splitter) Config() trishare.SharingConfig { return s.config }

// Split pads secret and splits it into shares with ids 0, 1 and 2 whose XOR
// equals the padded buffer.
func (s *Splitter) Split(secret []byte) (shares []*Share, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe(metrics.OpSplit, start, err) }()

	if len(secret) == 0 {
		return nil, trishare.InvalidInput("secret cannot be empty")
	}

	padded, err := padding.Pad(secret)
	if err != nil {
		return nil, err
	}
	defer utils.Zeroize(padded)

	parallel, err := s.useParallel(len(padded))
	if err != nil {
		return nil, err
	}

	var a, b, c []byte
	if parallel {
		a, b, c, err = s.splitParallel(padded)
	} else {
		a, b, c, err = splitSequential(padded)
	}
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"secret_len": len(secret),
		"padded_len": len(padded),
		"parallel":   parallel,
	}).Debug("split secret into shares")
	s.metrics.SetShareBytes(len(padded))

	return []*Share{newShare(a, 0), newShare(b, 1), newShare(c, 2)}, nil
}

// Reconstruct verifies three shares and recovers the original secret.
// Length and alignment are checked first, then every share's hash, and only
// then are the shares combined.
func (s *Splitter) Reconstruct(shares []*Share) (secret []byte, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe(metrics.OpReconstruct, start, err) }()

	if len(shares) != trishare.ShareCount {
		return nil, trishare.InvalidInput("need exactly %d shares, got %d", trishare.ShareCount, len(shares))
	}
	for i, sh := range shares {
		if sh == nil {
			return nil, trishare.InvalidInput("share %d is nil", i)
		}
	}

	n := shares[0].Len()
	for _, sh := range shares[1:] {
		if sh.Len() != n {
			return nil, trishare.InvalidInput("share lengths must match: %d != %d", sh.Len(), n)
		}
	}
	if n%padding.Alignment != 0 {
		return nil, trishare.InvalidInput("share length must be aligned to %d bytes, got %d", padding.Alignment, n)
	}

	for _, sh := range shares {
		if !sh.Verify() {
			s.log.WithField("share", sh.ID()).Warn("share hash mismatch")
			return nil, trishare.VerificationFailed("share %d failed verification", sh.ID())
		}
	}

	parallel, err := s.useParallel(n)
	if err != nil {
		return nil, err
	}

	var combined []byte
	if parallel {
		combined, err = s.combineParallel(shares[0].data, shares[1].data, shares[2].data)
		if err != nil {
			return nil, err
		}
	} else {
		combined = make([]byte, n)
		utils.XOR3Into(combined, shares[0].data, shares[1].data, shares[2].data)
	}
	defer utils.Zeroize(combined)

	s.log.WithFields(logrus.Fields{
		"share_len": n,
		"parallel":  parallel,
	}).Debug("combined shares")

	return padding.Unpad(combined)
}

// useParallel decides the dispatch path for a buffer of n bytes.
func (s *Splitter) useParallel(n int) (bool, error) {
	if !s.config.Parallel || n < s.config.ParallelThreshold {
		return false, nil
	}
	if s.config.BlockSize <= 0 {
		return false, trishare.InvalidInput("block size must be positive, got %d", s.config.BlockSize)
	}
	return true, nil
}

func splitSequential(padded []byte) (a, b, c []byte, err error) {
	if a, err = utils.SecureRandomBytes(len(padded)); err != nil {
		return nil, nil, nil, trishare.IOError(err)
	}
	if b, err = utils.SecureRandomBytes(len(padded)); err != nil {
		return nil, nil, nil, trishare.IOError(err)
	}
	c = make([]byte, len(padded))
	utils.XOR3Into(c, padded, a, b)
	return a, b, c, nil
}

// splitParallel splits padded block by block. Each block draws its own
// random bytes and writes into its own window of the three outputs, so the
// result is the blocks concatenated in their original order.
func (s *Splitter) splitParallel(padded []byte) (a, b, c []byte, err error) {
	n := len(padded)
	a = make([]byte, n)
	b = make([]byte, n)
	c = make([]byte, n)

	err = s.forEachBlock(n, func(lo, hi int) error {
		if err := utils.FillRandom(a[lo:hi]); err != nil {
			return trishare.IOError(err)
		}
		if err := utils.FillRandom(b[lo:hi]); err != nil {
			return trishare.IOError(err)
		}
		utils.XOR3Into(c[lo:hi], padded[lo:hi], a[lo:hi], b[lo:hi])
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return a, b, c, nil
}

func (s *Splitter) combineParallel(a, b, c []byte) ([]byte, error) {
	out := make([]byte, len(a))
	err := s.forEachBlock(len(a), func(lo, hi int) error {
		utils.XOR3Into(out[lo:hi], a[lo:hi], b[lo:hi], c[lo:hi])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// forEachBlock runs fn over [0, n) in BlockSize windows, the last one
// possibly shorter, on at most GOMAXPROCS goroutines.
func (s *Splitter) forEachBlock(n int, fn func(lo, hi int) error) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	bs := s.config.BlockSize
	for lo := 0; lo < n; lo += bs {
		lo, hi := lo, n
		if n-lo > bs {
			hi = lo + bs
		}
		g.Go(func() error { return fn(lo, hi) })
		if hi == n {
			break
		}
	}
	return g.Wait()
}
