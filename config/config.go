// Package config loads a rope configuration from a .env style file and the process environment.
//
// Every key is optional and starts from tautrope.DefaultConfig:
//
//	TAUTROPE_DISTANCE_TOLERANCE=0.01
//	TAUTROPE_VERTEX_CROSSING_OFFSET=0.05
//	TAUTROPE_SMALL_NUMBER=1e-8
//	TAUTROPE_MAX_COLLISION_ITERATIONS=32
//	TAUTROPE_MAX_REMOVE_SWEEP_ITERATIONS=16
//	TAUTROPE_MAX_PRUNING_PASSES=8
//	TAUTROPE_DEBUG_ROPE=1
//	TAUTROPE_DEBUG_TOUCHED_EDGES=1
//	TAUTROPE_DEBUG_SHAPES=1
//	TAUTROPE_DEBUG_SWEEPS=1
//	TAUTROPE_DEBUG_REMOVE_SWEEPS=1
//
// Process environment wins over the file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/akmonengine/tautrope"
)

const Prefix = "TAUTROPE_"

const (
	DISTANCE_TOLERANCE          = Prefix + "DISTANCE_TOLERANCE"
	VERTEX_CROSSING_OFFSET      = Prefix + "VERTEX_CROSSING_OFFSET"
	SMALL_NUMBER                = Prefix + "SMALL_NUMBER"
	MAX_COLLISION_ITERATIONS    = Prefix + "MAX_COLLISION_ITERATIONS"
	MAX_REMOVE_SWEEP_ITERATIONS = Prefix + "MAX_REMOVE_SWEEP_ITERATIONS"
	MAX_PRUNING_PASSES          = Prefix + "MAX_PRUNING_PASSES"
	DEBUG_ROPE                  = Prefix + "DEBUG_ROPE"
	DEBUG_TOUCHED_EDGES         = Prefix + "DEBUG_TOUCHED_EDGES"
	DEBUG_SHAPES                = Prefix + "DEBUG_SHAPES"
	DEBUG_SWEEPS                = Prefix + "DEBUG_SWEEPS"
	DEBUG_REMOVE_SWEEPS         = Prefix + "DEBUG_REMOVE_SWEEPS"
)

// Load reads path, when not empty, then applies the environment on top.
// The result is validated.
func Load(path string) (tautrope.Config, error) {
	values := map[string]string{}
	if path != "" {
		read, err := godotenv.Read(path)
		if err != nil {
			return tautrope.Config{}, errors.Wrapf(err, "config: could not read %s", path)
		}
		values = read
	}

	return parse(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	})
}

func parse(lookup func(key string) (string, bool)) (tautrope.Config, error) {
	c := tautrope.DefaultConfig()
	p := parser{lookup: lookup}

	p.floatVar(DISTANCE_TOLERANCE, &c.DistanceTolerance)
	p.floatVar(VERTEX_CROSSING_OFFSET, &c.VertexCrossingOffset)
	p.floatVar(SMALL_NUMBER, &c.SmallNumber)
	p.intVar(MAX_COLLISION_ITERATIONS, &c.MaxCollisionIterations)
	p.intVar(MAX_REMOVE_SWEEP_ITERATIONS, &c.MaxRemoveSweepIterations)
	p.intVar(MAX_PRUNING_PASSES, &c.MaxPruningPasses)
	p.boolVar(DEBUG_ROPE, &c.Debug.Rope)
	p.boolVar(DEBUG_TOUCHED_EDGES, &c.Debug.TouchedEdges)
	p.boolVar(DEBUG_SHAPES, &c.Debug.Shapes)
	p.boolVar(DEBUG_SWEEPS, &c.Debug.Sweeps)
	p.boolVar(DEBUG_REMOVE_SWEEPS, &c.Debug.RemoveSweeps)

	if p.err != nil {
		return tautrope.Config{}, p.err
	}
	if err := c.Validate(); err != nil {
		return tautrope.Config{}, errors.Wrap(err, "config")
	}
	return c, nil
}

// parser keeps the first error, later calls are no-ops
type parser struct {
	lookup func(key string) (string, bool)
	err    error
}

func (p *parser) value(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *parser) floatVar(key string, dst *float64) {
	v, ok := p.value(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.err = errors.Wrapf(err, "config: %s", key)
		return
	}
	*dst = f
}

func (p *parser) intVar(key string, dst *int) {
	v, ok := p.value(key)
	if !ok {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		p.err = errors.Wrapf(err, "config: %s", key)
		return
	}
	*dst = i
}

func (p *parser) boolVar(key string, dst *bool) {
	v, ok := p.value(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.err = errors.Wrapf(err, "config: %s", key)
		return
	}
	*dst = b
}
