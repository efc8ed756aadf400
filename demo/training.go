package demo

import (
	"time"

	"github.com/sirupsen/logrus"

	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/logging"
	"github.com/BackendStack21/trishare-go/sharing"
	"github.com/BackendStack21/trishare-go/vdf"
)

// TrainingPhase is the stage of a training session.
type TrainingPhase int

const (
	DataPreparation TrainingPhase = iota
	FeatureExtraction
	ModelTraining
	Validation
	Complete
)

func (p TrainingPhase) String() string {
	switch p {
	case DataPreparation:
		return "DataPreparation"
	case FeatureExtraction:
		return "FeatureExtraction"
	case ModelTraining:
		return "ModelTraining"
	case Validation:
		return "Validation"
	case Complete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// PhaseFor maps progress (elapsed / planned duration) to a phase.
func PhaseFor(progress float64) TrainingPhase {
	switch {
	case progress < 0.25:
		return DataPreparation
	case progress < 0.50:
		return FeatureExtraction
	case progress < 0.75:
		return ModelTraining
	case progress < 1.0:
		return Validation
	default:
		return Complete
	}
}

// Session splits batches of images and runs a delay cycle over every share,
// tracking the phase from wall-clock progress against a planned duration.
type Session struct {
	splitter *sharing.Splitter
	vdf      *vdf.TemporalVDF
	duration time.Duration
	phase    TrainingPhase
	log      logrus.FieldLogger
}

// NewSession creates a session. A nil log discards output.
func NewSession(cfg trishare.Config, duration time.Duration, log logrus.FieldLogger) (*Session, error) {
	if duration <= 0 {
		return nil, trishare.InvalidInput("training duration must be positive, got %v", duration)
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Session{
		splitter: sharing.New(cfg.Sharing, sharing.WithLogger(log)),
		vdf:      vdf.New(cfg.Temporal, vdf.WithLogger(log)),
		duration: duration,
		phase:    DataPreparation,
		log:      log,
	}, nil
}

// Phase returns the phase reached by the last processed iteration.
func (s *Session) Phase() TrainingPhase { return s.phase }

// ProcessBatch protects every image in the batch. Progress is measured from
// the start of the batch.
func (s *Session) ProcessBatch(images [][]byte) error {
	start := time.Now()
	s.log.WithField("images", len(images)).Info("processing batch")

	for _, img := range images {
		shares, err := s.splitter.Split(img)
		if err != nil {
			return err
		}
		for _, sh := range shares {
			if err := s.vdf.Initialize(sh.Data()); err != nil {
				return err
			}
			for i := 0; i < trishare.CycleLength; i++ {
				if err := s.vdf.Iterate(); err != nil {
					return err
				}
				s.update(start)
			}
		}
	}
	return nil
}

func (s *Session) update(start time.Time) {
	progress := time.Since(start).Seconds() / s.duration.Seconds()
	s.phase = PhaseFor(progress)
	s.log.WithFields(logrus.Fields{
		"progress": progress,
		"phase":    s.phase,
	}).Debug("training progress")
}
