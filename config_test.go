package tautrope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NoError(t, config.Validate())
	assert.Equal(t, DEFAULT_DISTANCE_TOLERANCE, config.DistanceTolerance)
	assert.Equal(t, DEFAULT_MAX_COLLISION_ITERATION, config.MaxCollisionIterations)
	assert.False(t, config.Debug.Any())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"Zero distance tolerance", func(c *Config) { c.DistanceTolerance = 0 }},
		{"Negative crossing offset", func(c *Config) { c.VertexCrossingOffset = -1 }},
		{"Zero small number", func(c *Config) { c.SmallNumber = 0 }},
		{"No collision iteration", func(c *Config) { c.MaxCollisionIterations = 0 }},
		{"No remove sweep", func(c *Config) { c.MaxRemoveSweepIterations = 0 }},
		{"No pruning pass", func(c *Config) { c.MaxPruningPasses = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			assert.Error(t, config.Validate())
		})
	}

	config := DefaultConfig()
	config.VertexCrossingOffset = 0
	assert.NoError(t, config.Validate(), "a zero crossing offset is allowed")
}

func TestDebugFlags_Any(t *testing.T) {
	assert.False(t, DebugFlags{}.Any())
	assert.True(t, DebugFlags{Sweeps: true}.Any())
	assert.True(t, DebugFlags{RemoveSweeps: true}.Any())
}
