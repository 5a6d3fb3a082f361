package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/tautrope"
	"github.com/akmonengine/tautrope/shape"
)

// SetupScene creates a box and a rope whose end anchor sits on the far side of it
func SetupScene() (*tautrope.Rope, *shape.Shape) {
	transform := shape.NewTransform()
	transform.Rotation = mgl64.QuatRotate(math.Pi/8, mgl64.Vec3{0, 0, 1})

	box, err := shape.NewBox(transform, mgl64.Vec3{10, 10, 10})
	if err != nil {
		panic(err)
	}

	rope := tautrope.NewRope(mgl64.Vec3{0, -100, 0}, mgl64.Vec3{100, 0, 0}, 1000, box)

	rope.Events.Subscribe(tautrope.PIVOT_ADDED, func(event tautrope.Event) {
		e := event.(tautrope.PivotAddedEvent)
		fmt.Printf("  + pivot %d at %v (%s)\n", e.Index, e.Point.Location, e.Point.Attachment)
	})
	rope.Events.Subscribe(tautrope.PIVOT_REMOVED, func(event tautrope.Event) {
		e := event.(tautrope.PivotRemovedEvent)
		fmt.Printf("  - pivot at %v (%s)\n", e.Point.Location, e.Point.Attachment)
	})
	rope.Events.Subscribe(tautrope.EDGE_ENTER, func(event tautrope.Event) {
		fmt.Printf("  > edge %d\n", event.(tautrope.EdgeEnterEvent).Edge)
	})
	rope.Events.Subscribe(tautrope.EDGE_EXIT, func(event tautrope.Event) {
		fmt.Printf("  < edge %d\n", event.(tautrope.EdgeExitEvent).Edge)
	})

	return rope, box
}

// SwingAround moves the end anchor a quarter turn around the box and back
func SwingAround() {
	fmt.Println("Rope swinging around a box")
	fmt.Println("==========================")

	rope, box := SetupScene()
	fmt.Printf("Box: %d vertices, %d edges\n", len(box.Vertices), len(box.Edges))
	fmt.Println()

	const steps = 60
	for step := 0; step <= steps; step++ {
		progress := float64(step) / steps
		angle := math.Pi / 2 * (1 - math.Abs(2*progress-1))
		end := mgl64.Vec3{100 * math.Cos(angle), 100 * math.Sin(angle), 0}

		fmt.Printf("--- STEP %d (%.1f°) ---\n", step, mgl64.RadToDeg(angle))
		rope.Update(rope.Start, end, 1000)

		fmt.Printf("  points=%d length=%.3f\n", len(rope.Points()), rope.Length())
	}

	fmt.Println()
	if p := rope.Penetrations(); len(p) > 0 {
		fmt.Printf("%d segments still cut the box\n", len(p))
	}
	fmt.Println("Done!")
}

func main() {
	SwingAround()
}
