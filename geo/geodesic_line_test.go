package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burrscurr/linesman/geom"
)

// Degrees; about 0.1 mm.
const coordTolerance = 1e-9

func mustGeodesic(t *testing.T, x1, y1, x2, y2 float64) *GeodesicLine {
	t.Helper()
	ln, err := NewGeodesicLine(geom.Vector{X: x1, Y: y1}, geom.Vector{X: x2, Y: y2})
	require.NoError(t, err)
	return ln
}

func assertSamePoint(t *testing.T, want, got geom.Vector) {
	t.Helper()
	assert.True(t, geom.NearlyEqual(want, got, coordTolerance), "want %v, got %v", want, got)
}

func TestNewGeodesicLineDegenerate(t *testing.T) {
	p := geom.Vector{X: 1, Y: 1}
	_, err := NewGeodesicLine(p, p)
	assert.ErrorIs(t, err, geom.ErrDegenerateLine)

	// Same point, different longitudes.
	_, err = NewGeodesicLine(geom.Vector{X: 180, Y: 10}, geom.Vector{X: -180, Y: 10})
	assert.ErrorIs(t, err, geom.ErrDegenerateLine)
}

func TestGeodesicLineBasics(t *testing.T) {
	ln := mustGeodesic(t, 1, 1, 2, 2)
	assert.Equal(t, geom.Geodesic, ln.Geometry())
	assert.InDelta(t, 156876.14940184803, ln.Length(), 1e-3)
	assert.InDelta(t, 45.17047008416547, ln.Azimuth(), 1e-6)

	p1, p2 := ln.Endpoints()
	assertSamePoint(t, p1, ln.Point(0))
	assertSamePoint(t, p2, ln.Point(1))
	assert.InDelta(t, ln.Length()/2, Distance(p1, ln.Point(0.5)), 1e-6)
	assert.InDelta(t, ln.Length()*2, Distance(p1, ln.Point(-2)), 1e-6)
}

func TestGeodesicLineContains(t *testing.T) {
	ln := mustGeodesic(t, 1, 1, 2, 2)
	assert.True(t, ln.Contains(geom.Vector{X: 1, Y: 1}))
	assert.True(t, ln.Contains(geom.Vector{X: 2, Y: 2}))
	assert.True(t, ln.Contains(ln.Point(2.5)))
	assert.True(t, ln.Contains(ln.Point(-0.3)))
	assert.False(t, ln.Contains(geom.Vector{X: 1, Y: 2}))
	// The planar midpoint is off the geodesic.
	assert.False(t, ln.Contains(geom.Vector{X: 1.5, Y: 1.5}))
}

func TestGeodesicLineProject(t *testing.T) {
	ln := mustGeodesic(t, 1, 1, 2, 2)
	tests := []struct {
		name string
		v    geom.Vector
	}{
		{"left of line", geom.Vector{X: 1, Y: 2}},
		{"right of line", geom.Vector{X: 2, Y: 1}},
		{"beyond p2", geom.Vector{X: 4, Y: 3}},
		{"before p1", geom.Vector{X: -1, Y: 0}},
		{"far away", geom.Vector{X: 20, Y: -15}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			foot := ln.Project(tc.v)
			assert.True(t, ln.Contains(foot))
			assertSamePoint(t, foot, ln.Project(foot))

			// The connection to the foot is perpendicular to the line.
			_, aziF := ln.at(ln.length * alongFraction(ln, foot))
			turn := AzimuthDifference(aziF, Azimuth(foot, tc.v))
			assert.InDelta(t, 90, abs(turn), 1e-6)

			// And no other point of the line is nearer.
			d := Distance(foot, tc.v)
			for _, eps := range []float64{-1e-3, 1e-3} {
				near := ln.Point(alongFraction(ln, foot) + eps)
				assert.Less(t, d, Distance(near, tc.v))
			}
		})
	}
}

// alongFraction returns t such that ln.Point(t) is p, for p on ln.
func alongFraction(ln *GeodesicLine, p geom.Vector) float64 {
	s, azi, _ := Inverse(ln.p1, p)
	if abs(AzimuthDifference(ln.azi1, azi)) > 90 {
		s = -s
	}
	return s / ln.length
}

func TestGeodesicLineProjectNearPlanar(t *testing.T) {
	// Close to the planar result.
	ln := mustGeodesic(t, 1, 1, 2, 2)
	v := geom.Vector{X: 1, Y: 2}
	d := Distance(v, ln.Project(v))
	assert.InEpsilon(t, 78433.68568649939, d, 1e-2)
}

func TestGeodesicLineCrossTrack(t *testing.T) {
	ln := mustGeodesic(t, 1, 1, 2, 2)
	assert.Less(t, ln.CrossTrack(geom.Vector{X: 1, Y: 2}), 0.0)
	assert.Greater(t, ln.CrossTrack(geom.Vector{X: 2, Y: 1}), 0.0)
	assert.InDelta(t, 0, ln.CrossTrack(ln.Point(0.7)), ContainsTolerance)
}

func TestGeodesicLineEqual(t *testing.T) {
	ln := mustGeodesic(t, 1, 1, 2, 2)
	assert.True(t, ln.Equal(ln))

	same, err := NewGeodesicLine(ln.Point(3), ln.Point(-0.5))
	require.NoError(t, err)
	assert.True(t, ln.Equal(same))
	assert.True(t, same.Equal(ln))

	assert.False(t, ln.Equal(mustGeodesic(t, 1, 1, 2, 2.1)))
	planar, err := geom.NewPlanarLine(geom.Vector{X: 1, Y: 1}, geom.Vector{X: 2, Y: 2})
	require.NoError(t, err)
	assert.False(t, ln.Equal(planar))
	assert.False(t, ln.Equal(nil))
}

func TestGeodesicLineOrthogonalLine(t *testing.T) {
	ln := mustGeodesic(t, 1, 1, 2, 2)

	off := geom.Vector{X: 1, Y: 2}
	o, err := ln.OrthogonalLine(off)
	require.NoError(t, err)
	assert.True(t, o.Contains(off))
	assert.True(t, o.Contains(ln.Project(off)))

	on := ln.Point(0.25)
	o, err = ln.OrthogonalLine(on)
	require.NoError(t, err)
	assert.True(t, o.Contains(on))
	res, err := ln.Intersection(o)
	require.NoError(t, err)
	require.Equal(t, geom.AtPoint, res.Kind)
	assertSamePoint(t, on, res.Point)
}

func TestGeodesicLineIntersection(t *testing.T) {
	tests := []struct {
		name      string
		l1, l2    *GeodesicLine
		want      geom.Vector
		tolerance float64
	}{
		{"meridian and equator", mustGeodesic(t, 0, -1, 0, 1), mustGeodesic(t, -1, 0, 1, 0), geom.Vector{}, coordTolerance},
		{"equator and meridian", mustGeodesic(t, -1, 0, 1, 0), mustGeodesic(t, 0, -1, 0, 1), geom.Vector{}, coordTolerance},
		{"crossing diagonals", mustGeodesic(t, 1, 1, 2, 2), mustGeodesic(t, 1, 2, 2, 1), geom.Vector{X: 1.5, Y: 1.5}, 1e-3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r1, err := tc.l1.Intersection(tc.l2)
			require.NoError(t, err)
			require.Equal(t, geom.AtPoint, r1.Kind)
			assert.True(t, tc.l1.Contains(r1.Point))
			assert.True(t, tc.l2.Contains(r1.Point))

			r2, err := tc.l2.Intersection(tc.l1)
			require.NoError(t, err)
			require.Equal(t, geom.AtPoint, r2.Kind)
			assertSamePoint(t, r1.Point, r2.Point)

			assert.True(t, geom.NearlyEqual(tc.want, r1.Point, tc.tolerance), "want %v, got %v", tc.want, r1.Point)
		})
	}
}

func TestGeodesicLineIntersectionCoincident(t *testing.T) {
	ln := mustGeodesic(t, 1, 1, 2, 2)
	same, err := NewGeodesicLine(ln.Point(-1), ln.Point(2))
	require.NoError(t, err)
	res, err := ln.Intersection(same)
	require.NoError(t, err)
	assert.Equal(t, geom.Coincident, res.Kind)
	assert.True(t, res.Line.Equal(same))
}

func TestGeodesicLineMixedGeometry(t *testing.T) {
	ln := mustGeodesic(t, 1, 1, 2, 2)
	planar, err := geom.NewPlanarLine(geom.Vector{X: 1, Y: 1}, geom.Vector{X: 2, Y: 2})
	require.NoError(t, err)
	_, err = ln.Intersection(planar)
	assert.ErrorIs(t, err, geom.ErrMixedGeometry)
	_, err = planar.Intersection(ln)
	assert.ErrorIs(t, err, geom.ErrMixedGeometry)
}

func TestNewLine(t *testing.T) {
	p1, p2 := geom.Vector{X: 1, Y: 1}, geom.Vector{X: 2, Y: 2}

	ln, err := NewLine(geom.Planar, p1, p2)
	require.NoError(t, err)
	assert.IsType(t, &geom.PlanarLine{}, ln)

	ln, err = NewLine(geom.Geodesic, p1, p2)
	require.NoError(t, err)
	assert.IsType(t, &GeodesicLine{}, ln)

	for _, g := range []geom.Geometry{geom.Planar, geom.Geodesic} {
		ln, err = NewLine(g, p1, p1)
		assert.ErrorIs(t, err, geom.ErrDegenerateLine)
		assert.Nil(t, ln)
	}
}
