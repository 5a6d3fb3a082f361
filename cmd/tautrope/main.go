package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"

	"github.com/akmonengine/tautrope"
	"github.com/akmonengine/tautrope/config"
	"github.com/akmonengine/tautrope/debugdraw"
)

func failWith(err error) {
	fmt.Fprintln(os.Stderr, chalk.Red.Color("=== ❌ "+err.Error()))
	os.Exit(1)
}

func main() {
	app := makeapp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		failWith(err)
	}
}

func makeapp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "tautrope"
	app.Usage = "Run scripted taut rope scenarios"
	app.Description = "Drives a rope around static obstacles and reports how it wrapped"

	app.Commands = []cli.Command{
		{
			Name:    "run",
			Aliases: []string{"r"},
			Usage:   "Run a scenario",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "scenario", Value: "box", Usage: "Scenario to run, see the list command"},
				cli.IntFlag{Name: "ticks", Value: 90, Usage: "Number of updates"},
				cli.IntFlag{Name: "workers", Value: tautrope.DEFAULT_WORKERS, Usage: "Goroutines updating ropes"},
				cli.StringFlag{Name: "index", Value: "grid", Usage: "Shape index, grid or rtree"},
				cli.StringFlag{Name: "config", Value: "", Usage: ".env file with TAUTROPE_ settings"},
				cli.StringFlag{Name: "png", Value: "", Usage: "Render the debug primitives to this file"},
				cli.StringFlag{Name: "view", Value: "top", Usage: "PNG projection, top or side"},
				cli.IntFlag{Name: "width", Value: 800, Usage: "PNG width"},
				cli.IntFlag{Name: "height", Value: 600, Usage: "PNG height"},
				cli.BoolFlag{Name: "dump", Usage: "Dump the final rope points"},
				cli.BoolFlag{Name: "verbose", Usage: "Enable debug logging"},
			},
			Action: func(c *cli.Context) error {
				return runAction(out, c)
			},
		},
		{
			Name:    "list",
			Aliases: []string{"l"},
			Usage:   "List the scenarios",
			Action: func(c *cli.Context) error {
				for _, name := range scenarioNames() {
					fmt.Fprintf(out, "%s\t%s\n", chalk.Bold.TextStyle(name), scenarios[name].description)
				}
				return nil
			},
		},
	}

	return app
}

func runAction(out io.Writer, c *cli.Context) error {
	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	tautrope.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	defer tautrope.SetLogger(nil)

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	view := debugdraw.TOP
	switch c.String("view") {
	case "top":
	case "side":
		view = debugdraw.SIDE
	default:
		return fmt.Errorf("unknown view %q, expected top or side", c.String("view"))
	}

	sim := simulation{
		scenario: c.String("scenario"),
		ticks:    c.Int("ticks"),
		workers:  c.Int("workers"),
		index:    c.String("index"),
		config:   cfg,
	}
	png := c.String("png")
	if png != "" {
		sim.canvas = debugdraw.NewCanvas()
		if !sim.config.Debug.Any() {
			sim.config.Debug = tautrope.DebugFlags{Rope: true, TouchedEdges: true, Shapes: true}
		}
	}

	o, err := sim.run()
	if err != nil {
		return err
	}

	report(out, sim, o)

	if c.Bool("dump") {
		spew.Fdump(out, o.rope.RopePoints())
	}

	if png != "" {
		if err := sim.canvas.SavePNG(png, view, c.Int("width"), c.Int("height")); err != nil {
			return err
		}
		fmt.Fprintln(out, chalk.Blue.Color("rendered "+png))
	}
	return nil
}

func report(out io.Writer, sim simulation, o outcome) {
	fmt.Fprintf(out, "%s %s (%d ticks)\n", chalk.Bold.TextStyle("scenario"), sim.scenario, sim.ticks)
	fmt.Fprintf(out, "  points    %d (max %d)\n", len(o.rope.Points()), o.maxPoints)
	fmt.Fprintf(out, "  length    %.3f\n", o.rope.Length())

	for _, p := range o.rope.RopePoints() {
		fmt.Fprintf(out, "    %8.3f %8.3f %8.3f  %s\n", p.Location.X(), p.Location.Y(), p.Location.Z(), p.Attachment)
	}

	for t := tautrope.PIVOT_ADDED; t <= tautrope.EDGE_EXIT; t++ {
		if n := o.events[t]; n > 0 {
			line := fmt.Sprintf("  %-16s %d", t, n)
			if t == tautrope.ITERATION_CAP {
				line = chalk.Yellow.Color(line)
			}
			fmt.Fprintln(out, line)
		}
	}

	if len(o.penetrations) == 0 {
		fmt.Fprintln(out, chalk.Green.Color("  no penetration"))
		return
	}
	for _, p := range o.penetrations {
		fmt.Fprintln(out, chalk.Red.Color(fmt.Sprintf("  segment %d cuts shape %d by %.3f", p.Segment, p.Shape, p.Depth)))
	}
}
