// Package debugdraw records what a rope reports through its debug sink and renders it to PNG.
//
//	canvas := debugdraw.NewCanvas()
//	rope.Debug = canvas
//	rope.Config.Debug = tautrope.DebugFlags{Rope: true, Shapes: true, Sweeps: true}
//	// ... update the rope
//	err := canvas.SavePNG("rope.png", debugdraw.TOP, 800, 600)
package debugdraw

import (
	"io"
	"math"
	"os"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/pkg/errors"

	"github.com/akmonengine/tautrope"
	"github.com/akmonengine/tautrope/shape"
	"github.com/akmonengine/tautrope/sweep"
)

// View selects the projection plane
type View uint8

const (
	// TOP looks down the Z axis, drawing X and Y
	TOP View = iota
	// SIDE looks along the Y axis, drawing X and Z
	SIDE
)

const margin = 20.0

var (
	background    = gg.White
	shapeColor    = gg.RGB(0.6, 0.6, 0.6)
	touchedColor  = gg.RGB(1, 0.55, 0)
	sweepColor    = gg.RGBA2(0.3, 0.6, 1, 0.5)
	removeColor   = gg.RGBA2(0.6, 0.3, 0.9, 0.5)
	hitColor      = gg.RGB(0.9, 0.1, 0.1)
	ropeColor     = gg.Black
	pivotColor    = gg.RGB(0.1, 0.5, 0.1)
	segmentRadius = 3.0
)

type segment struct {
	a, b mgl64.Vec3
}

type sweepRecord struct {
	triangle sweep.Triangle
	hit      *mgl64.Vec3
	remove   bool
}

// Canvas is a tautrope.DebugSink keeping every primitive it receives until Reset.
// It is safe for concurrent use, so one canvas may serve ropes updated in parallel.
type Canvas struct {
	mu      sync.Mutex
	ropes   [][]tautrope.Point
	touched []segment
	shapes  map[*shape.Shape]struct{}
	order   []*shape.Shape
	sweeps  []sweepRecord
}

func NewCanvas() *Canvas {
	return &Canvas{shapes: make(map[*shape.Shape]struct{})}
}

func (c *Canvas) Rope(points []tautrope.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ropes = append(c.ropes, points)
}

func (c *Canvas) TouchedEdge(s *shape.Shape, edge int) {
	a, b := s.EdgeVertices(edge)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touched = append(c.touched, segment{a, b})
}

// Shapes records each shape once, however many ticks report it
func (c *Canvas) Shapes(shapes []*shape.Shape) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shapes == nil {
		c.shapes = make(map[*shape.Shape]struct{})
	}
	for _, s := range shapes {
		if _, ok := c.shapes[s]; ok {
			continue
		}
		c.shapes[s] = struct{}{}
		c.order = append(c.order, s)
	}
}

func (c *Canvas) SegmentSweep(triangle sweep.Triangle, hit *sweep.Hit) {
	c.addSweep(triangle, hit, false)
}

func (c *Canvas) RemoveSweep(triangle sweep.Triangle, hit *sweep.Hit) {
	c.addSweep(triangle, hit, true)
}

func (c *Canvas) addSweep(triangle sweep.Triangle, hit *sweep.Hit, remove bool) {
	record := sweepRecord{triangle: triangle, remove: remove}
	if hit != nil {
		location := hit.Location
		record.hit = &location
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweeps = append(c.sweeps, record)
}

// Reset forgets everything recorded so far
func (c *Canvas) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ropes = c.ropes[:0]
	c.touched = c.touched[:0]
	c.sweeps = c.sweeps[:0]
	c.order = c.order[:0]
	clear(c.shapes)
}

// Counts returns the number of ropes, touched edges, shapes and sweeps recorded
func (c *Canvas) Counts() (ropes, touched, shapes, sweeps int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ropes), len(c.touched), len(c.order), len(c.sweeps)
}

// SavePNG renders the canvas and writes it to path
func (c *Canvas) SavePNG(path string, view View, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "debugdraw: could not create %s", path)
	}
	defer f.Close()

	if err := c.EncodePNG(f, view, width, height); err != nil {
		return errors.Wrapf(err, "debugdraw: could not render %s", path)
	}
	return nil
}

// EncodePNG renders the canvas as a PNG image of the given size.
// Shapes are drawn first, then sweeps, touched edges and, on top, the last recorded rope.
func (c *Canvas) EncodePNG(w io.Writer, view View, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf("debugdraw: invalid image size %dx%d", width, height)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(background)

	p := c.projection(view, width, height)

	dc.SetLineWidth(1)
	dc.SetColor(shapeColor.Color())
	for _, s := range c.order {
		for e := range s.Edges {
			a, b := s.EdgeVertices(e)
			p.line(dc, a, b)
		}
	}
	if err := dc.Stroke(); err != nil {
		return errors.Wrap(err, "debugdraw: drawing shapes")
	}

	for _, record := range c.sweeps {
		if record.remove {
			dc.SetColor(removeColor.Color())
		} else {
			dc.SetColor(sweepColor.Color())
		}
		tri := record.triangle
		p.line(dc, tri.From, tri.To)
		p.line(dc, tri.To, tri.Support)
		p.line(dc, tri.Support, tri.From)
		if err := dc.Stroke(); err != nil {
			return errors.Wrap(err, "debugdraw: drawing sweeps")
		}
		if record.hit != nil {
			dc.SetColor(hitColor.Color())
			x, y := p.project(*record.hit)
			dc.DrawCircle(x, y, segmentRadius)
			if err := dc.Fill(); err != nil {
				return errors.Wrap(err, "debugdraw: drawing hits")
			}
		}
	}

	dc.SetLineWidth(3)
	dc.SetColor(touchedColor.Color())
	for _, s := range c.touched {
		p.line(dc, s.a, s.b)
	}
	if err := dc.Stroke(); err != nil {
		return errors.Wrap(err, "debugdraw: drawing touched edges")
	}

	if len(c.ropes) > 0 {
		rope := c.ropes[len(c.ropes)-1]
		dc.SetLineWidth(2)
		dc.SetColor(ropeColor.Color())
		for i := 1; i < len(rope); i++ {
			p.line(dc, rope[i-1].Location, rope[i].Location)
		}
		if err := dc.Stroke(); err != nil {
			return errors.Wrap(err, "debugdraw: drawing rope")
		}

		dc.SetColor(pivotColor.Color())
		for _, point := range rope {
			if point.Attachment.IsFree() {
				continue
			}
			x, y := p.project(point.Location)
			dc.DrawCircle(x, y, segmentRadius)
		}
		if err := dc.Fill(); err != nil {
			return errors.Wrap(err, "debugdraw: drawing pivots")
		}
	}

	tautrope.Logger().Debug("debugdraw: rendered canvas",
		"ropes", len(c.ropes), "shapes", len(c.order), "sweeps", len(c.sweeps))

	return dc.EncodePNG(w)
}

// projection maps world coordinates to pixels, fitting everything recorded in the image
type projection struct {
	view    View
	scale   float64
	originX float64
	originY float64
	height  float64
}

func (c *Canvas) projection(view View, width, height int) projection {
	p := projection{view: view, scale: 1, height: float64(height)}

	var points []mgl64.Vec3
	for _, s := range c.order {
		points = append(points, s.Vertices...)
	}
	for _, rope := range c.ropes {
		for _, point := range rope {
			points = append(points, point.Location)
		}
	}
	for _, record := range c.sweeps {
		points = append(points, record.triangle.From, record.triangle.To, record.triangle.Support)
	}
	if len(points) == 0 {
		return p
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, point := range points {
		x, y := p.plane(point)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	spanX := math.Max(maxX-minX, 1e-9)
	spanY := math.Max(maxY-minY, 1e-9)
	p.scale = math.Min((float64(width)-2*margin)/spanX, (float64(height)-2*margin)/spanY)
	p.originX = minX - margin/p.scale
	p.originY = minY - margin/p.scale
	return p
}

// plane drops the axis the view looks along
func (p projection) plane(v mgl64.Vec3) (float64, float64) {
	if p.view == SIDE {
		return v.X(), v.Z()
	}
	return v.X(), v.Y()
}

// project returns pixel coordinates, Y pointing up
func (p projection) project(v mgl64.Vec3) (float64, float64) {
	x, y := p.plane(v)
	return (x - p.originX) * p.scale, p.height - (y-p.originY)*p.scale
}

func (p projection) line(dc *gg.Context, a, b mgl64.Vec3) {
	x1, y1 := p.project(a)
	x2, y2 := p.project(b)
	dc.DrawLine(x1, y1, x2, y2)
}
