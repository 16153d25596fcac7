package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDerivedValues(t *testing.T) {
	g := Default().Geometry

	assert.InDelta(t, 2.1, g.PivotOffset(), 1e-12)
	assert.InDelta(t, g.PivotOffset(), g.CubieCenter(), 1e-12)

	a := 35 * math.Pi / 180
	wantHeight := 2 * (math.Cos(a) + math.Sqrt2*math.Sin(a))
	assert.InDelta(t, wantHeight, g.AngledCubieHeight(), 1e-12)
	assert.InDelta(t, 2.1+wantHeight, g.WCenterX(), 1e-12)

	require.NoError(t, Default().Validate())
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name string
		geom Geometry
		want error
	}{
		{"zero size", Geometry{CubeSize: 0, CubieGap: 0.2, HedgehogAngle: 35}, ErrInvalidCubeSize},
		{"negative gap", Geometry{CubeSize: 2, CubieGap: -1, HedgehogAngle: 35}, ErrInvalidGap},
		{"hedgehog too steep", Geometry{CubeSize: 2, CubieGap: 0.2, HedgehogAngle: 45}, ErrInvalidHedgehog},
		{"negative hedgehog", Geometry{CubeSize: 2, CubieGap: 0.2, HedgehogAngle: -1}, ErrInvalidHedgehog},
		{"flat hedgehog", Geometry{CubeSize: 1, CubieGap: 0, HedgehogAngle: 0}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.geom.Validate(), tt.want)
			if tt.want == nil {
				assert.NoError(t, tt.geom.Validate())
			}
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("geometry:\n  cube_size: 3\n  hedgehog_angle: 20\nanimation:\n  scramble_moves: 12\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	t.Setenv("HYPERCUBE_ANIMATION_TURN_RATE", "6")
	t.Setenv("HYPERCUBE_STORAGE_DB_PATH", "/tmp/solves.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3.0, cfg.Geometry.CubeSize)
	assert.Equal(t, 0.2, cfg.Geometry.CubieGap, "unset keys keep defaults")
	assert.Equal(t, 20.0, cfg.Geometry.HedgehogAngle)
	assert.Equal(t, 12, cfg.Animation.ScrambleMoves)
	assert.Equal(t, 6.0, cfg.Animation.TurnRate)
	assert.Equal(t, "/tmp/solves.db", cfg.Storage.DBPath)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("geometry:\n  hedgehog_angle: 60\n"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidHedgehog)
}

func TestMarshalRoundTripsThroughLoad(t *testing.T) {
	cfg := Default()
	cfg.Geometry.CubieGap = 0.5
	data, err := cfg.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, loaded.Geometry.CubieGap)
}
