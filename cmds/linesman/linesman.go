// Command linesman measures how far a GPS track deviates from a straight
// reference line.
//
//	linesman [flags] <track-file> [MAX|AVG|SQ-AVG]
//
// The track file is GPX (optionally gzipped) or a Google encoded polyline
// (*.polyline, *.txt). Without --line, the line from the first to the last
// track point is used.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/burrscurr/linesman/config"
	"github.com/burrscurr/linesman/geo"
	"github.com/burrscurr/linesman/geom"
	"github.com/burrscurr/linesman/measure"
	"github.com/burrscurr/linesman/report"
	"github.com/burrscurr/linesman/track"
)

// Set with -ldflags "-X main.version=..." when building a release.
var version = "devel"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type flags struct {
	line     *string
	geometry *string
	resample *bool
	workers  *int
	kml      *string
	csv      *string
	polyline *bool
	config   *string
	version  *bool
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *flags) {
	fs := flag.NewFlagSet("linesman", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &flags{
		line: fs.String("line", "",
			"Two points defining the reference line in format 'lat,lon;lat,lon'. "+
				"Default: line defined by first and last point of the track."),
		geometry: fs.String("geometry", geom.Planar.String(),
			"How the reference line is interpreted: planar or geodesic."),
		resample: fs.Bool("resample", false,
			"Resample the track to evenly spaced points (not implemented)."),
		workers: fs.Int("workers", 1,
			"Number of goroutines computing deviations."),
		kml:      fs.String("kml", "", "Write a KML report to this file."),
		csv:      fs.String("csv", "", "Write the deviation of every point as CSV to this file (gzipped if it ends in .gz)."),
		polyline: fs.Bool("polyline", false, "Also print track and reference line as encoded polylines."),
		config:   fs.String("config", "", "YAML config file. Default: linesman.yaml if present."),
	}
	f.version = fs.Bool("version", false, "Print linesman version and exit.")
	fs.BoolVar(f.version, "V", false, "Shorthand for --version.")

	// glog registers -v, -logtostderr and friends on the global set.
	flag.CommandLine.VisitAll(func(gf *flag.Flag) {
		if fs.Lookup(gf.Name) == nil {
			fs.Var(gf.Value, gf.Name, gf.Usage)
		}
	})

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: linesman [flags] <track-file> [%s]\n\n",
			strings.Join(kindNames(), "|"))
		fmt.Fprintln(stderr, "Measure the deviation of a GPS track from a completely straight line.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	return fs, f
}

func kindNames() []string {
	var names []string
	for _, k := range measure.Kinds() {
		names = append(names, k.String())
	}
	return names
}

// parseArgs parses flags, which may appear before, between or after the
// positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// applyFlags overrides the config with the flags given on the command line.
func applyFlags(fs *flag.FlagSet, f *flags, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "line":
			cfg.Line = *f.line
		case "geometry":
			cfg.Geometry = *f.geometry
		case "resample":
			cfg.Resample = *f.resample
		case "workers":
			cfg.Workers = *f.workers
		case "kml":
			cfg.KML = *f.kml
		case "csv":
			cfg.CSV = *f.csv
		}
	})
}

// userMessage rewrites errors the user can fix into plain advice.
func userMessage(err error) string {
	switch {
	case errors.Is(err, geom.ErrDegenerateLine):
		return "Points defining the line must not be equal!"
	case errors.Is(err, track.ErrNoTrack):
		return "The gpx file must contain at least one track!"
	case errors.Is(err, track.ErrTooFewPoints):
		return "The track must have at least two points!"
	}
	return err.Error()
}

func run(args []string, stdout, stderr io.Writer) int {
	fs, f := newFlagSet(stderr)
	positional, err := parseArgs(fs, args)
	if err == flag.ErrHelp {
		return exitOK
	} else if err != nil {
		return exitUsage
	}
	if *f.version {
		fmt.Fprintln(stdout, version)
		return exitOK
	}
	if len(positional) < 1 || len(positional) > 2 {
		fmt.Fprintf(stderr, "expected a track file and optionally a measure, got %d arguments\n", len(positional))
		fs.Usage()
		return exitUsage
	}

	fail := func(err error) int {
		glog.V(1).Infof("Failed: %v", err)
		fmt.Fprintf(stderr, "ERROR: %s\n", userMessage(err))
		return exitError
	}

	cfg, err := config.Load(*f.config)
	if err != nil {
		return fail(err)
	}
	applyFlags(fs, f, cfg)
	if len(positional) == 2 {
		cfg.Measure = positional[1]
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitUsage
	}

	t, err := track.Load(positional[0])
	if err != nil {
		return fail(err)
	}
	for _, w := range t.Warnings {
		fmt.Fprintf(stdout, "Warning: %s\n", w)
	}

	var refline geom.Line
	if cfg.Line != "" {
		p1, p2, err := geo.ParseLatLonPair(cfg.Line)
		if err != nil {
			return fail(err)
		}
		refline, err = geo.NewLine(cfg.GeometryKind(), p1, p2)
		if err != nil {
			return fail(err)
		}
	} else if refline, err = t.DefaultLine(cfg.GeometryKind()); err != nil {
		return fail(err)
	}

	m, err := measure.New(cfg.Kind(), t.Points, refline, measure.Options{
		Resample: cfg.Resample,
		Workers:  cfg.Workers,
	})
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "%s: %s\n", m.Description(), strconv.FormatFloat(m.Calculate(), 'f', -1, 64))

	if *f.polyline {
		fmt.Fprintf(stdout, "Track: %s\n", report.EncodePolyline(m.Points()))
		fmt.Fprintf(stdout, "Line: %s\n", report.EncodeLine(m.RefLine()))
	}
	if cfg.KML != "" {
		if err := writeKML(cfg.KML, m, t.Name); err != nil {
			return fail(err)
		}
	}
	if cfg.CSV != "" {
		if err := writeCSV(cfg.CSV, m); err != nil {
			return fail(err)
		}
	}
	return exitOK
}

func writeKML(path string, m *measure.Measure, name string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err2 := f.Close(); err == nil {
			err = err2
		}
	}()
	if err = report.WriteKML(f, m, name); err == nil {
		glog.V(1).Infof("Wrote KML report to %s", path)
	}
	return err
}

func writeCSV(path string, m *measure.Measure) error {
	cw, err := report.OpenCSVFile(path)
	if err != nil {
		return err
	}
	if err := cw.WriteMeasure(m); err != nil {
		cw.Close()
		return err
	}
	if err := cw.Close(); err != nil {
		return err
	}
	glog.V(1).Infof("Wrote deviation profile to %s", path)
	return nil
}

func main() {
	code := run(os.Args[1:], os.Stdout, os.Stderr)
	glog.Flush()
	os.Exit(code)
}
