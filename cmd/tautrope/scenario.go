package main

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/akmonengine/tautrope/shape"
)

// scenario scripts the anchors of one rope around a fixed set of obstacles.
// progress runs from 0 on the first tick to 1 on the last.
type scenario struct {
	description string
	maxLength   float64
	shapes      func() ([]*shape.Shape, error)
	anchors     func(progress float64) (start, end mgl64.Vec3)
}

var scenarios = map[string]scenario{
	"edge": {
		description: "both anchors drop below a lone edge, then slide off its end",
		maxLength:   1000,
		shapes: func() ([]*shape.Shape, error) {
			s, err := shape.New(
				[]mgl64.Vec3{{0, -10, 0}, {0, 10, 0}},
				[]shape.Edge{{A: 0, B: 1}},
				[]mgl64.Vec3{{0, 0, 1}},
			)
			return []*shape.Shape{s}, err
		},
		anchors: func(progress float64) (mgl64.Vec3, mgl64.Vec3) {
			z := 21 - 80*math.Min(progress*2, 1)
			y := -40 * math.Max(progress*2-1, 0)
			return mgl64.Vec3{-100, y, z}, mgl64.Vec3{100, y, z}
		},
	},
	"box": {
		description: "a rope lowered over a box wraps both top edges",
		maxLength:   1000,
		shapes: func() ([]*shape.Shape, error) {
			box, err := shape.NewBox(shape.NewTransform(), mgl64.Vec3{10, 10, 10})
			return []*shape.Shape{box}, err
		},
		anchors: func(progress float64) (mgl64.Vec3, mgl64.Vec3) {
			z := 47 - 100*progress
			return mgl64.Vec3{-100, 0, z}, mgl64.Vec3{100, 0, z}
		},
	},
	"arc": {
		description: "the end anchor swings a quarter turn around a box and back",
		maxLength:   1000,
		shapes: func() ([]*shape.Shape, error) {
			box, err := shape.NewBox(shape.NewTransform(), mgl64.Vec3{10, 10, 10})
			return []*shape.Shape{box}, err
		},
		anchors: func(progress float64) (mgl64.Vec3, mgl64.Vec3) {
			angle := math.Pi / 2 * (1 - math.Abs(2*progress-1))
			return mgl64.Vec3{0, -100, 0}, mgl64.Vec3{100 * math.Cos(angle), 100 * math.Sin(angle), 0}
		},
	},
	"pillars": {
		description: "the end anchor circles a row of rotated pillars",
		maxLength:   2000,
		shapes: func() ([]*shape.Shape, error) {
			var shapes []*shape.Shape
			for i := 0; i < 3; i++ {
				transform := shape.NewTransform()
				transform.Position = mgl64.Vec3{float64(i-1) * 40, 0, 0}
				transform.Rotation = mgl64.QuatRotate(float64(i)*math.Pi/7, mgl64.Vec3{0, 0, 1})
				pillar, err := shape.NewBox(transform, mgl64.Vec3{5, 5, 30})
				if err != nil {
					return nil, errors.Wrapf(err, "pillar %d", i)
				}
				shapes = append(shapes, pillar)
			}
			return shapes, nil
		},
		anchors: func(progress float64) (mgl64.Vec3, mgl64.Vec3) {
			angle := 2 * math.Pi * progress
			return mgl64.Vec3{-120, -3, 0}, mgl64.Vec3{150 * math.Cos(angle), 150*math.Sin(angle) + 3, 0}
		},
	},
	"pyramid": {
		description: "a rope lowered over a pyramid built from a triangle soup",
		maxLength:   1000,
		shapes: func() ([]*shape.Shape, error) {
			vertices := []mgl64.Vec3{
				{-10, -10, 0}, {10, -10, 0}, {10, 10, 0}, {-10, 10, 0},
				{0, 0, 15},
			}
			indices := []int{
				0, 1, 4,
				1, 2, 4,
				2, 3, 4,
				3, 0, 4,
				0, 2, 1,
				0, 3, 2,
			}
			pyramid, err := shape.FromTriangles(vertices, indices, shape.NewTransform())
			return []*shape.Shape{pyramid}, err
		},
		anchors: func(progress float64) (mgl64.Vec3, mgl64.Vec3) {
			z := 40 - 80*progress
			return mgl64.Vec3{-100, 3, z}, mgl64.Vec3{100, 3, z}
		},
	},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
