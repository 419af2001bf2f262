package geo

import (
	"github.com/golang/glog"

	"github.com/burrscurr/linesman/geom"
)

// Inverse solves the inverse geodesic problem on WGS84: the length in meters
// of the shortest path from a to b, its azimuth at a and its azimuth at b.
// Azimuths are in degrees clockwise from north, in the range [-180, 180].
func Inverse(a, b geom.Vector) (s12, azi1, azi2 float64) {
	wgs84.Inverse(a.Y, a.X, b.Y, b.X, &s12, &azi1, &azi2)
	return
}

// Distance returns the geodesic distance between a and b in meters.
func Distance(a, b geom.Vector) float64 {
	var s12 float64
	wgs84.Inverse(a.Y, a.X, b.Y, b.X, &s12, nil, nil)
	return s12
}

// Azimuth returns the azimuth at a of the geodesic from a to b, in degrees.
func Azimuth(a, b geom.Vector) float64 {
	var azi1 float64
	wgs84.Inverse(a.Y, a.X, b.Y, b.X, nil, &azi1, nil)
	return azi1
}

// Direct solves the direct geodesic problem on WGS84: the point reached when
// travelling s meters from p with initial azimuth azi, and the azimuth of
// the geodesic at that point. Negative distances travel backwards.
func Direct(p geom.Vector, azi, s float64) (geom.Vector, float64) {
	var lat2, lon2, azi2 float64
	wgs84.Direct(p.Y, p.X, azi, s, &lat2, &lon2, &azi2)
	if glog.V(3) {
		glog.Infof("Direct(%v, %v, %v) -> (%v, %v) az %v", p, azi, s, lon2, lat2, azi2)
	}
	return geom.Vector{X: lon2, Y: lat2}, azi2
}

var wgs84 = WGS84.geodesic()
