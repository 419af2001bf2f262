// Package geo provides geodesic computations on the WGS84 ellipsoid for
// points given as geom.Vector{X: lon, Y: lat} in degrees, and the geodesic
// flavor of geom.Line.
package geo

import (
	"math"

	"github.com/tidwall/geodesic"
)

// An Ellipsoid is a model of the earth, defined by its equatorial radius A
// (meters) and flattening F.
type Ellipsoid struct {
	A, F float64
}

var (
	WGS84 = Ellipsoid{A: 6378137, F: 1 / 298.257223563}
	// Clarke 1866, as used by the examples in Snyder's working manual.
	Clarke1866 = Ellipsoid{A: 6378206.4, F: (6378206.4 - 6356583.8) / 6378206.4}
)

// Polar radius.
func (e Ellipsoid) B() float64 {
	return e.A * (1 - e.F)
}

// Eccentricity squared.
func (e Ellipsoid) Es() float64 {
	return e.F * (2 - e.F)
}

func (e Ellipsoid) geodesic() *geodesic.Ellipsoid {
	if e == WGS84 {
		return geodesic.WGS84
	}
	return geodesic.NewEllipsoid(e.A, e.F)
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func toDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
