// Package protect wraps a payload in three XOR shares and runs one delay
// cycle per share before the payload can be reconstructed.
package protect

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/logging"
	"github.com/BackendStack21/trishare-go/metrics"
	"github.com/BackendStack21/trishare-go/sharing"
	"github.com/BackendStack21/trishare-go/vdf"
)

// TotalSteps is the number of Advance calls that complete a payload.
const TotalSteps = trishare.ShareCount * trishare.CycleLength

type options struct {
	log     logrus.FieldLogger
	metrics *metrics.Recorder
}

// Option configures a Payload.
type Option func(*options)

// WithLogger routes payload, splitter and delay-function logs to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics records every underlying operation on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

// Payload holds the shares of a protected payload and the delay function
// state of each one. It is not safe for concurrent use.
type Payload struct {
	opts     options
	splitter *sharing.Splitter

	shares    [][]byte
	vdfs      []*vdf.TemporalVDF
	processed []bool
	proofs    []*trishare.TemporalProof
	steps     int
}

// New splits data and prepares one delay function per share.
func New(data []byte, sharingCfg trishare.SharingConfig, temporalCfg trishare.TemporalConfig, opts ...Option) (*Payload, error) {
	o := options{log: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	splitter := sharing.New(sharingCfg, sharing.WithLogger(o.log), sharing.WithMetrics(o.metrics))
	shares, err := splitter.Split(data)
	if err != nil {
		return nil, err
	}

	p := &Payload{
		opts:      o,
		splitter:  splitter,
		shares:    make([][]byte, len(shares)),
		vdfs:      make([]*vdf.TemporalVDF, len(shares)),
		processed: make([]bool, len(shares)),
		proofs:    make([]*trishare.TemporalProof, len(shares)),
	}
	for i, s := range shares {
		p.shares[i] = s.Data()
		p.vdfs[i] = vdf.New(temporalCfg, vdf.WithLogger(o.log), vdf.WithMetrics(o.metrics))
	}

	o.log.WithFields(logrus.Fields{
		"payload_len": len(data),
		"share_len":   len(p.shares[0]),
	}).Debug("created protected payload")
	return p, nil
}

// Advance runs one delay-function iteration on the next unprocessed share.
// When that share's cycle completes its bytes are replaced by the cycle
// output and the cycle proof is checked and recorded. Advance on a
// complete payload does nothing.
func (p *Payload) Advance() error {
	idx := p.next()
	if idx < 0 {
		return nil
	}

	v := p.vdfs[idx]
	if !v.IsInitialized() {
		p.opts.log.WithField("share", idx).Debug("initializing delay function")
		if err := v.Initialize(p.shares[idx]); err != nil {
			return err
		}
	}
	if err := v.Iterate(); err != nil {
		return err
	}
	p.steps++

	if !v.IsComplete() {
		return nil
	}

	out, err := v.GetOutput()
	if err != nil {
		return err
	}
	proof, err := v.GenerateProof()
	if err != nil {
		return err
	}
	ok, err := v.VerifyProof(proof)
	if err != nil {
		return err
	}
	if !ok {
		return trishare.VerificationFailed("share %d: delay proof rejected", idx)
	}

	// Shares are 16-byte aligned, so the output carries no extra tail.
	p.shares[idx] = out[:len(p.shares[idx])]
	p.proofs[idx] = proof
	p.processed[idx] = true
	p.opts.log.WithFields(logrus.Fields{
		"share":   idx,
		"elapsed": proof.ComputationTime,
	}).Info("share processed")
	return nil
}

func (p *Payload) next() int {
	for i, done := range p.processed {
		if !done {
			return i
		}
	}
	return -1
}

// IsComplete reports whether every share has finished its cycle.
func (p *Payload) IsComplete() bool { return p.next() < 0 }

// Steps returns the number of iterations run so far.
func (p *Payload) Steps() int { return p.steps }

// Progress returns the completed fraction of TotalSteps in [0, 1].
func (p *Payload) Progress() float64 {
	return float64(p.steps) / float64(TotalSteps)
}

// ShareLen returns the length of each share in bytes.
func (p *Payload) ShareLen() int { return len(p.shares[0]) }

// Proofs returns the proof of each processed share, indexed by share id.
// Entries for unprocessed shares are nil.
func (p *Payload) Proofs() []*trishare.TemporalProof {
	out := make([]*trishare.TemporalProof, len(p.proofs))
	copy(out, p.proofs)
	return out
}

// Reconstruct rebuilds the shares from the processed bytes and recovers the
// original payload. It fails with InvalidState until IsComplete is true.
func (p *Payload) Reconstruct() ([]byte, error) {
	if !p.IsComplete() {
		return nil, trishare.InvalidState("payload not ready for reconstruction: %d/%d steps", p.steps, TotalSteps)
	}

	shares := make([]*sharing.Share, len(p.shares))
	for i, data := range p.shares {
		shares[i] = sharing.NewShare(data, uint8(i))
	}
	return p.splitter.Reconstruct(shares)
}

// Protect creates a payload from cfg and advances it to completion. A
// context deadline that expires first is reported as a Timeout error.
func Protect(ctx context.Context, data []byte, cfg trishare.Config, opts ...Option) (p *Payload, err error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()
	defer func() { o.metrics.Observe(metrics.OpProtect, start, err) }()

	p, err = New(data, cfg.Sharing, cfg.Temporal, opts...)
	if err != nil {
		return nil, err
	}
	for !p.IsComplete() {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, trishare.Timeout(time.Since(start))
			}
			return nil, err
		}
		if err := p.Advance(); err != nil {
			return nil, err
		}
	}
	return p, nil
}
