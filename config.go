package tautrope

import "github.com/pkg/errors"

const (
	DEFAULT_DISTANCE_TOLERANCE      = 0.01
	DEFAULT_VERTEX_CROSSING_OFFSET  = 0.05
	DEFAULT_SMALL_NUMBER            = 1e-8
	DEFAULT_MAX_COLLISION_ITERATION = 32
	DEFAULT_MAX_REMOVE_SWEEP        = 16
	DEFAULT_MAX_PRUNING_PASSES      = 8
)

// DebugFlags select which primitives are forwarded to the DebugSink
type DebugFlags struct {
	Rope         bool
	TouchedEdges bool
	Shapes       bool
	Sweeps       bool
	RemoveSweeps bool
}

// Any reports whether at least one flag is set
func (d DebugFlags) Any() bool {
	return d.Rope || d.TouchedEdges || d.Shapes || d.Sweeps || d.RemoveSweeps
}

// Config holds the numeric tolerances and iteration caps of a rope.
type Config struct {
	// Distance under which two locations are the same, and the margin kept from edge ends
	DistanceTolerance float64
	// How far past a vertex a pivot is pushed when it snaps onto it
	VertexCrossingOffset float64
	// Determinant and barycentric threshold of the intersection tests
	SmallNumber float64

	MaxCollisionIterations   int
	MaxRemoveSweepIterations int
	MaxPruningPasses         int

	Debug DebugFlags
}

func DefaultConfig() Config {
	return Config{
		DistanceTolerance:        DEFAULT_DISTANCE_TOLERANCE,
		VertexCrossingOffset:     DEFAULT_VERTEX_CROSSING_OFFSET,
		SmallNumber:              DEFAULT_SMALL_NUMBER,
		MaxCollisionIterations:   DEFAULT_MAX_COLLISION_ITERATION,
		MaxRemoveSweepIterations: DEFAULT_MAX_REMOVE_SWEEP,
		MaxPruningPasses:         DEFAULT_MAX_PRUNING_PASSES,
	}
}

// Validate checks every field is usable
func (c Config) Validate() error {
	switch {
	case c.DistanceTolerance <= 0:
		return errors.Errorf("distance tolerance must be positive, got %v", c.DistanceTolerance)
	case c.VertexCrossingOffset < 0:
		return errors.Errorf("vertex crossing offset must not be negative, got %v", c.VertexCrossingOffset)
	case c.SmallNumber <= 0:
		return errors.Errorf("small number must be positive, got %v", c.SmallNumber)
	case c.MaxCollisionIterations < 1:
		return errors.Errorf("max collision iterations must be at least 1, got %d", c.MaxCollisionIterations)
	case c.MaxRemoveSweepIterations < 1:
		return errors.Errorf("max remove sweep iterations must be at least 1, got %d", c.MaxRemoveSweepIterations)
	case c.MaxPruningPasses < 1:
		return errors.Errorf("max pruning passes must be at least 1, got %d", c.MaxPruningPasses)
	}
	return nil
}
