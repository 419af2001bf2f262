// Package track loads the recorded points of a GPS track.
package track

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"github.com/burrscurr/linesman/geo"
	"github.com/burrscurr/linesman/geom"
)

var (
	ErrNoTrack      = errors.New("the gpx file must contain at least one track")
	ErrTooFewPoints = errors.New("track must have at least two points")
)

// Track is an ordered sequence of lon/lat points in degrees.
type Track struct {
	Name   string
	Points []geom.Vector
	// Recoverable oddities of the input, meant to be shown to the user.
	Warnings []string
}

func (t *Track) warn(msg string) {
	glog.Warning(msg)
	t.Warnings = append(t.Warnings, msg)
}

func (t *Track) validate() error {
	if len(t.Points) < 2 {
		return fmt.Errorf("%w (found %d)", ErrTooFewPoints, len(t.Points))
	}
	return nil
}

// DefaultLine is the reference line from the first to the last point.
func (t *Track) DefaultLine(g geom.Geometry) (geom.Line, error) {
	if len(t.Points) < 2 {
		return nil, ErrTooFewPoints
	}
	return geo.NewLine(g, t.Points[0], t.Points[len(t.Points)-1])
}

// Format of a track file.
type Format int

const (
	GPX Format = iota
	Polyline
)

// FormatOf guesses the format from the file name; GPX unless the name ends
// in ".polyline" or ".txt" (optionally followed by ".gz").
func FormatOf(path string) Format {
	name := strings.TrimSuffix(strings.ToLower(path), ".gz")
	switch filepath.Ext(name) {
	case ".polyline", ".txt":
		return Polyline
	}
	return GPX
}

// Load reads the track stored in the named file.
func Load(path string) (*Track, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var t *Track
	switch FormatOf(path) {
	case Polyline:
		t, err = ReadPolyline(rc)
	default:
		t, err = ReadGPX(rc)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), ".gz")
		t.Name = strings.TrimSuffix(t.Name, filepath.Ext(t.Name))
	}
	glog.V(1).Infof("Loaded %d points from %s", len(t.Points), path)
	return t, nil
}
