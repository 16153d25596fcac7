// Package config holds the geometry and animation settings for the puzzle.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrInvalidCubeSize  = errors.New("config: cube size must be positive")
	ErrInvalidGap       = errors.New("config: cubie gap must not be negative")
	ErrInvalidHedgehog  = errors.New("config: hedgehog angle must be in [0, 45) degrees")
	ErrInvalidTurnRate  = errors.New("config: turn rate must be positive")
	ErrInvalidScramble  = errors.New("config: scramble settings out of range")
	ErrInvalidGyroSpeed = errors.New("config: gyro duration must be positive")
)

// Geometry describes the physical layout of the puzzle. The derived values
// are recomputed on every call so a settings change is picked up by the next
// unification.
type Geometry struct {
	CubeSize      float64 `yaml:"cube_size" env:"CUBE_SIZE"`
	CubieGap      float64 `yaml:"cubie_gap" env:"CUBIE_GAP"`
	HedgehogAngle float64 `yaml:"hedgehog_angle" env:"HEDGEHOG_ANGLE"` // degrees
}

// HedgehogRad returns the hedgehog tilt in radians.
func (g Geometry) HedgehogRad() float64 {
	return math.Pi / 180 * g.HedgehogAngle
}

// PivotOffset is the distance from a hyper-layer centre to a piece pivot
// along each axis.
func (g Geometry) PivotOffset() float64 {
	return g.CubeSize + g.CubieGap/2
}

// CubieCenter is the half-extent used to snap a piece centre during face
// classification.
func (g Geometry) CubieCenter() float64 {
	return g.PivotOffset()
}

// AngledCubieHeight is the height of a facelet cube tilted by the hedgehog
// angle.
func (g Geometry) AngledCubieHeight() float64 {
	a := g.HedgehogRad()
	return g.CubeSize * (math.Cos(a) + math.Sqrt2*math.Sin(a))
}

// WCenterX is the X offset of each hyper-layer centre from the origin.
// Anna sits at -WCenterX, kata at +WCenterX.
func (g Geometry) WCenterX() float64 {
	return g.CubeSize + g.CubieGap/2 + g.AngledCubieHeight()
}

// Validate checks the geometry. Hedgehog angles of 45 degrees or more would
// tilt a facelet past the diagonal and make its face ambiguous.
func (g Geometry) Validate() error {
	if !(g.CubeSize > 0) {
		return ErrInvalidCubeSize
	}
	if g.CubieGap < 0 || math.IsNaN(g.CubieGap) {
		return ErrInvalidGap
	}
	if g.HedgehogAngle < 0 || !(g.HedgehogAngle < 45) {
		return ErrInvalidHedgehog
	}
	return nil
}

// Animation controls how fast moves play and how scrambles are generated.
type Animation struct {
	TurnRate      float64 `yaml:"turn_rate" env:"TURN_RATE"` // radians per second at speed 1
	ScrambleMoves int     `yaml:"scramble_moves" env:"SCRAMBLE_MOVES"`
	ScrambleSpeed float64 `yaml:"scramble_speed" env:"SCRAMBLE_SPEED"`
	GyroChance    float64 `yaml:"gyro_chance" env:"GYRO_CHANCE"`
	GyroDuration  float64 `yaml:"gyro_duration" env:"GYRO_DURATION"` // progress units, same scale as radians
}

// Validate checks the animation settings.
func (a Animation) Validate() error {
	if !(a.TurnRate > 0) {
		return ErrInvalidTurnRate
	}
	if a.ScrambleMoves < 0 || !(a.ScrambleSpeed > 0) || a.GyroChance < 0 || a.GyroChance > 1 {
		return ErrInvalidScramble
	}
	if !(a.GyroDuration > 0) {
		return ErrInvalidGyroSpeed
	}
	return nil
}

// Storage locates the solve history database.
type Storage struct {
	DBPath string `yaml:"db_path" env:"DB_PATH"`
}

// Config is the full application configuration.
type Config struct {
	Geometry  Geometry  `yaml:"geometry" envPrefix:"GEOMETRY_"`
	Animation Animation `yaml:"animation" envPrefix:"ANIMATION_"`
	Storage   Storage   `yaml:"storage" envPrefix:"STORAGE_"`
}

// Default returns the stock settings: 2-unit cubies, a 0.2 gap and a 35
// degree hedgehog tilt.
func Default() *Config {
	return &Config{
		Geometry: Geometry{
			CubeSize:      2,
			CubieGap:      0.2,
			HedgehogAngle: 35,
		},
		Animation: Animation{
			TurnRate:      3,
			ScrambleMoves: 100,
			ScrambleSpeed: 3,
			GyroChance:    0.1,
			GyroDuration:  2,
		},
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".hypercube", "config.yaml"), nil
}

// Load reads a YAML config file over the defaults, applies HYPERCUBE_*
// environment overrides and validates the result. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays HYPERCUBE_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "HYPERCUBE_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return err
	}
	return c.Animation.Validate()
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
