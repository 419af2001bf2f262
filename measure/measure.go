// Package measure scores how closely a track follows a reference line.
package measure

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/burrscurr/linesman/geo"
	"github.com/burrscurr/linesman/geom"
	"github.com/burrscurr/linesman/stats"
)

var (
	ErrNoPoints       = errors.New("no points to measure")
	ErrNotImplemented = errors.New("not implemented")
)

// Kind selects how deviations are aggregated.
type Kind int

const (
	Max Kind = iota
	Avg
	SquareAvg
)

var kindNames = []string{"MAX", "AVG", "SQ-AVG"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func Kinds() []Kind {
	return []Kind{Max, Avg, SquareAvg}
}

// ParseKind accepts the names returned by Kind.String, case sensitive.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if s == name {
			return Kind(i), nil
		}
	}
	return Max, fmt.Errorf("unknown measure %q (choose from %s)", s, strings.Join(kindNames, ", "))
}

func (k Kind) Aggregator() Aggregator {
	switch k {
	case Avg:
		return AvgDeviation{}
	case SquareAvg:
		return SquareDeviationAvg{}
	}
	return MaxDeviation{}
}

type Options struct {
	// Resample the track to evenly spaced points before measuring. Not
	// supported yet.
	Resample bool
	// Number of goroutines computing deviations; values below 2 compute
	// them on the calling goroutine.
	Workers int
}

// Measure holds the deviation in meters of each track point from its
// projection onto the reference line.
type Measure struct {
	kind       Kind
	agg        Aggregator
	points     []geom.Vector
	refline    geom.Line
	feet       []geom.Vector
	deviations []float64
}

// New computes the deviations of points from refline. points are lon/lat
// in degrees, in track order.
func New(kind Kind, points []geom.Vector, refline geom.Line, opts Options) (*Measure, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if refline == nil {
		return nil, errors.New("no reference line")
	}
	if opts.Resample {
		return nil, fmt.Errorf("resampling: %w", ErrNotImplemented)
	}
	glog.V(1).Infof("Measuring %d points against %v (%v, %d workers)",
		len(points), refline, kind, opts.Workers)

	m := &Measure{
		kind:       kind,
		agg:        kind.Aggregator(),
		points:     append([]geom.Vector(nil), points...),
		refline:    refline,
		feet:       make([]geom.Vector, len(points)),
		deviations: make([]float64, len(points)),
	}
	if err := m.compute(opts.Workers); err != nil {
		return nil, err
	}
	if glog.V(1) {
		glog.Infof("Deviations: %v", m.Summary())
	}
	return m, nil
}

func (m *Measure) compute(workers int) error {
	n := len(m.points)
	if workers < 2 {
		return m.computeRange(0, n)
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			return m.computeRange(lo, hi)
		})
	}
	return g.Wait()
}

// Each call writes only indices [lo, hi) of feet and deviations.
func (m *Measure) computeRange(lo, hi int) error {
	for i := lo; i < hi; i++ {
		p := m.points[i]
		foot := m.refline.Project(p)
		d := geo.Distance(foot, p)
		if math.IsNaN(d) {
			return fmt.Errorf("deviation of point %d %v is not a number", i, p)
		}
		m.feet[i] = foot
		m.deviations[i] = d
		if glog.V(2) {
			glog.Infof("point %d %v: foot %v, deviation %v m", i, p, foot, d)
		}
	}
	return nil
}

// Calculate returns the aggregated score.
func (m *Measure) Calculate() float64 {
	v, err := m.agg.Aggregate(m.deviations)
	if err != nil {
		// New refuses empty tracks with ErrNoPoints.
		glog.Fatalf("Aggregating %d deviations: %v", len(m.deviations), err)
	}
	return v
}

// Summary returns statistics over all deviations.
func (m *Measure) Summary() *stats.Running1DStats {
	s, _ := summarize(m.deviations)
	return s
}

func (m *Measure) Kind() Kind {
	return m.kind
}

func (m *Measure) Description() string {
	return m.agg.Description()
}

func (m *Measure) Deviations() []float64 {
	return append([]float64(nil), m.deviations...)
}

// Feet returns the projections of the points onto the reference line.
func (m *Measure) Feet() []geom.Vector {
	return append([]geom.Vector(nil), m.feet...)
}

func (m *Measure) Points() []geom.Vector {
	return append([]geom.Vector(nil), m.points...)
}

func (m *Measure) RefLine() geom.Line {
	return m.refline
}
