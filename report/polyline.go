package report

import (
	"github.com/twpayne/go-polyline"

	"github.com/burrscurr/linesman/geom"
)

// EncodePolyline encodes lon/lat points as a Google encoded polyline.
func EncodePolyline(points []geom.Vector) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Y, p.X}
	}
	return string(polyline.EncodeCoords(coords))
}

// EncodeLine encodes the reference line of a measurement, sampled the same
// way as in KML output.
func EncodeLine(ln geom.Line) string {
	return EncodePolyline(refLinePoints(ln))
}
