package geom

import (
	"errors"
	"fmt"
)

var (
	ErrDegenerateLine = errors.New("line cannot be defined by one point")
	ErrMixedGeometry  = errors.New("lines of different geometries cannot be combined")
)

// Geometry identifies how a Line interprets its coordinates. Lines of
// different geometries must not be mixed in one computation.
type Geometry int

const (
	Planar Geometry = iota
	Geodesic
)

func (g Geometry) String() string {
	switch g {
	case Planar:
		return "planar"
	case Geodesic:
		return "geodesic"
	}
	return fmt.Sprintf("Geometry(%d)", int(g))
}

func ParseGeometry(s string) (Geometry, error) {
	switch s {
	case "planar":
		return Planar, nil
	case "geodesic":
		return Geodesic, nil
	}
	return Planar, fmt.Errorf("unknown geometry %q (want planar or geodesic)", s)
}

// A Line is the shortest connection through two distinct points, extended
// infinitely in both directions. Implementations are immutable.
type Line interface {
	Geometry() Geometry

	// The two points the line was defined by.
	Endpoints() (p1, p2 Vector)

	// Point on the line at the given fraction of the way from p1 (t == 0) to
	// p2 (t == 1); t outside [0, 1] extrapolates.
	Point(t float64) Vector

	Contains(v Vector) bool

	// Returns the point on the line that is nearest to v.
	Project(v Vector) Vector

	// Whether all points described by o are also on this line.
	Equal(o Line) bool

	// Returns the line through the given point that is orthogonal to this one.
	OrthogonalLine(through Vector) (Line, error)

	Intersection(o Line) (Intersection, error)
}

type IntersectionKind int

const (
	// The lines share no point.
	Disjoint IntersectionKind = iota
	// The lines cross in exactly one point.
	AtPoint
	// The lines describe the same set of points.
	Coincident
)

func (k IntersectionKind) String() string {
	switch k {
	case Disjoint:
		return "disjoint"
	case AtPoint:
		return "point"
	case Coincident:
		return "coincident"
	}
	return fmt.Sprintf("IntersectionKind(%d)", int(k))
}

// Intersection is the result of intersecting two lines. Point is only set
// for AtPoint, Line only for Coincident.
type Intersection struct {
	Kind  IntersectionKind
	Point Vector
	Line  Line
}

// PlanarLine is a line in a 2-dimensional euclidean space.
type PlanarLine struct {
	p1, p2 Vector
}

// p1 and p2 must be distinct, else ErrDegenerateLine is returned.
func NewPlanarLine(p1, p2 Vector) (*PlanarLine, error) {
	if p1.NearlyEqual(p2) {
		return nil, fmt.Errorf("%w: %v, %v", ErrDegenerateLine, p1, p2)
	}
	return &PlanarLine{p1: p1, p2: p2}, nil
}

func (ln *PlanarLine) Geometry() Geometry {
	return Planar
}

func (ln *PlanarLine) Endpoints() (Vector, Vector) {
	return ln.p1, ln.p2
}

func (ln *PlanarLine) Direction() Vector {
	return ln.p2.Subtract(ln.p1)
}

func (ln *PlanarLine) Point(t float64) Vector {
	return ln.p1.Add(ln.Direction().Scale(t))
}

func (ln *PlanarLine) Contains(v Vector) bool {
	return ln.Direction().ParallelTo(v.Subtract(ln.p1))
}

// The nearest point is the foot of the perpendicular from v. The factor r
// is how far along the line from p1 (0) to p2 (1) the foot is; it may be
// negative or greater than 1.
func (ln *PlanarLine) Project(v Vector) Vector {
	d := ln.Direction()
	r := v.Subtract(ln.p1).Dot(d) / d.Dot(d)
	return ln.p1.Add(d.Scale(r))
}

// Move returns the line translated by v.
func (ln *PlanarLine) Move(v Vector) *PlanarLine {
	return &PlanarLine{p1: ln.p1.Add(v), p2: ln.p2.Add(v)}
}

func (ln *PlanarLine) Equal(o Line) bool {
	if o == nil || o.Geometry() != Planar {
		return false
	}
	return ln.Contains(o.Point(0)) && ln.Contains(o.Point(1))
}

func (ln *PlanarLine) OrthogonalLine(through Vector) (Line, error) {
	o, err := NewPlanarLine(through, through.Add(ln.Direction().Orthogonal()))
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (ln *PlanarLine) Intersection(o Line) (Intersection, error) {
	other, ok := o.(*PlanarLine)
	if !ok {
		return Intersection{}, fmt.Errorf("%w: *PlanarLine and %T", ErrMixedGeometry, o)
	}
	if ln.Equal(other) {
		return Intersection{Kind: Coincident, Line: ln}, nil
	}
	sd, od := ln.Direction(), other.Direction()
	if sd.ParallelTo(od) {
		return Intersection{Kind: Disjoint}, nil
	}

	// Solve p1 + t*sd == q1 + u*od for t. The divisor is the determinant of
	// both directions, which is non-zero as they aren't parallel.
	delta := ln.p1.Subtract(other.p1)
	t := (od.Y*delta.X - od.X*delta.Y) / (od.X*sd.Y - od.Y*sd.X)
	return Intersection{Kind: AtPoint, Point: ln.Point(t)}, nil
}

func (ln *PlanarLine) String() string {
	return fmt.Sprintf("Line(%v, %v)", ln.p1, ln.p2)
}
