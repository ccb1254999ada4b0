package usecase

import (
	"time"

	"github.com/optics-lab/optics/pkg/domain/interfaces"
)

type UseCases struct {
	repo    interfaces.Repository
	tracker interfaces.TrackerClient

	now             func() time.Time
	velocitySprints int
}

type Option func(*UseCases)

// WithTracker wires the upstream tracker client used by Sync.
func WithTracker(tracker interfaces.TrackerClient) Option {
	return func(uc *UseCases) {
		uc.tracker = tracker
	}
}

// WithClock replaces the time source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithVelocitySprints overrides the trailing sprint window of the
// velocity chart.
func WithVelocitySprints(n int) Option {
	return func(uc *UseCases) {
		uc.velocitySprints = n
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
