package hypercube

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/hypercube/internal/config"
)

// Option configures a Puzzle.
type Option func(*settings)

type settings struct {
	cfg    *config.Config
	logger *zap.Logger
	rng    *rand.Rand
}

func defaultSettings() *settings {
	return &settings{
		cfg:    config.Default(),
		logger: zap.NewNop(),
	}
}

// WithConfig sets the geometry and animation settings. The config is
// copied; later changes to cfg are not seen.
func WithConfig(cfg *config.Config) Option {
	return func(s *settings) {
		if cfg != nil {
			c := *cfg
			s.cfg = &c
		}
	}
}

// WithLogger sets the logger for move and scramble events.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRand sets the random source for scrambles.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) {
		s.rng = r
	}
}

// WithSeed makes scrambles repeatable.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}
