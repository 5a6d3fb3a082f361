package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akmonengine/tautrope"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, tautrope.DefaultConfig(), c)
}

func TestLoad_File(t *testing.T) {
	path := writeEnv(t, `
# tighter sweeps
TAUTROPE_DISTANCE_TOLERANCE=0.001
TAUTROPE_MAX_COLLISION_ITERATIONS=4
TAUTROPE_DEBUG_SWEEPS=1
TAUTROPE_DEBUG_ROPE=true
UNRELATED=whatever
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.001, c.DistanceTolerance)
	assert.Equal(t, 4, c.MaxCollisionIterations)
	assert.True(t, c.Debug.Sweeps)
	assert.True(t, c.Debug.Rope)
	assert.False(t, c.Debug.Shapes)
	assert.Equal(t, tautrope.DEFAULT_VERTEX_CROSSING_OFFSET, c.VertexCrossingOffset)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeEnv(t, "TAUTROPE_MAX_PRUNING_PASSES=3\nTAUTROPE_SMALL_NUMBER=1e-6\n")
	t.Setenv(MAX_PRUNING_PASSES, "5")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, c.MaxPruningPasses)
	assert.Equal(t, 1e-6, c.SmallNumber)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{"Not a float", "TAUTROPE_DISTANCE_TOLERANCE=abc", DISTANCE_TOLERANCE},
		{"Not an int", "TAUTROPE_MAX_REMOVE_SWEEP_ITERATIONS=1.5", MAX_REMOVE_SWEEP_ITERATIONS},
		{"Not a bool", "TAUTROPE_DEBUG_SHAPES=maybe", DEBUG_SHAPES},
		{"Invalid value", "TAUTROPE_MAX_COLLISION_ITERATIONS=0", "collision iterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeEnv(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
