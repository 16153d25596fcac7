package controller

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Option configures a Controller.
type Option func(*options)

type options struct {
	logger *zap.Logger
	rng    *rand.Rand
}

func defaultOptions() *options {
	return &options{
		logger: zap.NewNop(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithLogger sets the logger for move and scramble events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRand sets the random source used by Scramble. Tests pass a seeded
// source to get a repeatable sequence.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}
