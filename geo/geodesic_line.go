package geo

import (
	"fmt"
	"math"

	"github.com/golang/glog"

	"github.com/burrscurr/linesman/geom"
)

const (
	// Points closer than this to a GeodesicLine (in meters) are on it.
	ContainsTolerance = 1e-6

	// Iterative searches stop once a step is smaller than this many meters.
	convergence   = 1e-9
	maxIterations = 50

	// Mean radius of WGS84, for spherical step estimates.
	meanRadius = 6371008.8
)

// GeodesicLine is the geodesic on WGS84 through two points, extended beyond
// them in both directions. Points are geom.Vector{X: lon, Y: lat} in degrees.
type GeodesicLine struct {
	p1, p2 geom.Vector
	azi1   float64 // azimuth at p1 towards p2
	length float64 // meters from p1 to p2

	// Local frame for seeding searches; nil if p1 and azi1 can't be
	// represented by it.
	frame *ObliqueMercator
}

// p1 and p2 must be distinct, else geom.ErrDegenerateLine is returned.
func NewGeodesicLine(p1, p2 geom.Vector) (*GeodesicLine, error) {
	if p1.NearlyEqual(p2) {
		return nil, fmt.Errorf("%w: %v, %v", geom.ErrDegenerateLine, p1, p2)
	}
	s12, azi1, _ := Inverse(p1, p2)
	if s12 < ContainsTolerance {
		return nil, fmt.Errorf("%w: %v, %v", geom.ErrDegenerateLine, p1, p2)
	}
	ln := &GeodesicLine{p1: p1, p2: p2, azi1: azi1, length: s12}
	frame, err := NewObliqueMercator(WGS84, p1, azi1)
	if err != nil {
		glog.V(1).Infof("No local frame for %v: %v", ln, err)
	} else {
		ln.frame = frame
	}
	return ln, nil
}

func (ln *GeodesicLine) Geometry() geom.Geometry {
	return geom.Geodesic
}

func (ln *GeodesicLine) Endpoints() (geom.Vector, geom.Vector) {
	return ln.p1, ln.p2
}

// Length is the distance between the two defining points in meters.
func (ln *GeodesicLine) Length() float64 {
	return ln.length
}

// Azimuth of the line at its first point, in degrees.
func (ln *GeodesicLine) Azimuth() float64 {
	return ln.azi1
}

// at returns the point s meters along the line from p1, and the azimuth of
// the line there.
func (ln *GeodesicLine) at(s float64) (geom.Vector, float64) {
	return Direct(ln.p1, ln.azi1, s)
}

func (ln *GeodesicLine) Point(t float64) geom.Vector {
	p, _ := ln.at(t * ln.length)
	return p
}

// seed estimates how far along the line the foot of v is.
func (ln *GeodesicLine) seed(v geom.Vector) float64 {
	if ln.frame != nil {
		if xy, err := ln.frame.Forward(v); err == nil && !math.IsNaN(xy.X) {
			return xy.X
		}
	}
	s, azi, _ := Inverse(ln.p1, v)
	return s * cosDeg(azi-ln.azi1)
}

// foot finds the point on the line nearest to v. It returns the distance s
// of that point from p1 along the line, the point itself, the line's azimuth
// there, and the distance and azimuth from the foot to v.
func (ln *GeodesicLine) foot(v geom.Vector) (s float64, f geom.Vector, aziF, d, aziFV float64) {
	s = ln.seed(v)
	for i := 0; ; i++ {
		f, aziF = ln.at(s)
		d, aziFV, _ = Inverse(f, v)
		if d == 0 || i == maxIterations {
			if i == maxIterations {
				glog.Warningf("Projection of %v onto %v did not converge", v, ln)
			}
			return
		}
		// Along-track distance of v from f, on a sphere.
		theta := toRadians(aziFV - aziF)
		delta := d / meanRadius
		ds := meanRadius * math.Atan2(math.Sin(delta)*math.Cos(theta), math.Cos(delta))
		if glog.V(2) {
			glog.Infof("foot(%v) iteration %d: s=%v d=%v ds=%v", v, i, s, d, ds)
		}
		if math.Abs(ds) < convergence {
			return
		}
		s += ds
	}
}

// Project returns the foot of the perpendicular geodesic from v to the line.
func (ln *GeodesicLine) Project(v geom.Vector) geom.Vector {
	_, f, _, _, _ := ln.foot(v)
	return f
}

// CrossTrack returns the signed distance in meters of v from the line,
// positive to the right when facing along the line from p1 to p2.
func (ln *GeodesicLine) CrossTrack(v geom.Vector) float64 {
	_, _, aziF, d, aziFV := ln.foot(v)
	if AzimuthDifference(aziF, aziFV) < 0 {
		return -d
	}
	return d
}

func (ln *GeodesicLine) Contains(v geom.Vector) bool {
	_, _, _, d, _ := ln.foot(v)
	return d < ContainsTolerance
}

func (ln *GeodesicLine) Equal(o geom.Line) bool {
	if o == nil || o.Geometry() != geom.Geodesic {
		return false
	}
	q1, q2 := o.Endpoints()
	return ln.Contains(q1) && ln.Contains(q2)
}

// OrthogonalLine returns the geodesic through the given point and its foot on
// this line. If the point is on the line, the result leaves it at a right
// angle to the right.
func (ln *GeodesicLine) OrthogonalLine(through geom.Vector) (geom.Line, error) {
	_, f, aziF, d, _ := ln.foot(through)
	if d < ContainsTolerance {
		f, _ = Direct(through, aziF+90, ln.length)
	}
	o, err := NewGeodesicLine(through, f)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Intersection finds the crossing of both lines nearest to the receiver's
// first point. Two geodesics that are parallel where they pass the receiver
// are reported as Disjoint.
func (ln *GeodesicLine) Intersection(o geom.Line) (geom.Intersection, error) {
	other, ok := o.(*GeodesicLine)
	if !ok {
		return geom.Intersection{}, fmt.Errorf("%w: *GeodesicLine and %T", geom.ErrMixedGeometry, o)
	}
	if ln.Equal(other) {
		return geom.Intersection{Kind: geom.Coincident, Line: ln}, nil
	}

	s0, ok := ln.intersectionSeed(other)
	if !ok {
		return geom.Intersection{Kind: geom.Disjoint}, nil
	}

	// Secant search for the distance along other at which its cross-track
	// offset from ln is zero.
	h := func(s float64) float64 {
		p, _ := other.at(s)
		return ln.CrossTrack(p)
	}
	s1 := s0 + math.Max(1, other.length*1e-3)
	h0, h1 := h(s0), h(s1)
	for i := 0; i < maxIterations && h1 != 0; i++ {
		if h1 == h0 {
			return geom.Intersection{Kind: geom.Disjoint}, nil
		}
		step := h1 * (s1 - s0) / (h1 - h0)
		s0, h0 = s1, h1
		s1 -= step
		h1 = h(s1)
		if math.Abs(step) < convergence {
			break
		}
	}
	p, _ := other.at(s1)
	return geom.Intersection{Kind: geom.AtPoint, Point: p}, nil
}

// intersectionSeed estimates the distance along other to its crossing with
// ln, by intersecting straight lines in ln's local frame. It returns false
// if the lines are parallel there.
func (ln *GeodesicLine) intersectionSeed(other *GeodesicLine) (float64, bool) {
	y1, y2 := ln.CrossTrack(other.p1), ln.CrossTrack(other.p2)
	if ln.frame != nil {
		a, err1 := ln.frame.Forward(other.p1)
		b, err2 := ln.frame.Forward(other.p2)
		if err1 == nil && err2 == nil {
			// Compare the direction of other against the frame's x axis.
			d := b.Subtract(a)
			if (geom.Vector{X: 1}).ParallelTo(d.Scale(1 / d.Length())) {
				return 0, false
			}
			y1, y2 = a.Y, b.Y
		}
	}
	if math.Abs(y2-y1) < geom.Epsilon*other.length {
		return 0, false
	}
	return -y1 / (y2 - y1) * other.length, true
}

func (ln *GeodesicLine) String() string {
	return fmt.Sprintf("Geodesic(%v, %v)", ln.p1, ln.p2)
}

// NewLine returns the line through p1 and p2 in the given geometry.
func NewLine(g geom.Geometry, p1, p2 geom.Vector) (geom.Line, error) {
	var (
		ln  geom.Line
		err error
	)
	switch g {
	case geom.Planar:
		ln, err = geom.NewPlanarLine(p1, p2)
	case geom.Geodesic:
		ln, err = NewGeodesicLine(p1, p2)
	default:
		err = fmt.Errorf("unsupported geometry %v", g)
	}
	if err != nil {
		return nil, err
	}
	return ln, nil
}
