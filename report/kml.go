// Package report writes the result of a measurement in formats meant for
// inspection in other tools.
package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/twpayne/go-kml"

	"github.com/burrscurr/linesman/geom"
	"github.com/burrscurr/linesman/measure"
)

// Points per reference line drawn for geodesic lines, which are curved in
// KML's plate carrée.
const geodesicSegments = 64

func coordinates(points ...geom.Vector) []kml.Coordinate {
	cs := make([]kml.Coordinate, len(points))
	for i, p := range points {
		cs[i] = kml.Coordinate{Lon: p.X, Lat: p.Y}
	}
	return cs
}

// refLinePoints samples the reference line between its defining points.
func refLinePoints(ln geom.Line) []geom.Vector {
	if ln.Geometry() == geom.Planar {
		p1, p2 := ln.Endpoints()
		return []geom.Vector{p1, p2}
	}
	points := make([]geom.Vector, geodesicSegments+1)
	for i := range points {
		points[i] = ln.Point(float64(i) / geodesicSegments)
	}
	return points
}

// summaryText describes the score and the spread of the deviations.
func summaryText(m *measure.Measure) string {
	s := m.Summary()
	return fmt.Sprintf("%s: %v; %d points, deviation %.3f m to %.3f m, mean %.3f m, standard deviation %.3f m",
		m.Description(), m.Calculate(), s.Count(), s.Min(), s.Max(), s.Mean(), s.StandardDeviation())
}

// WriteKML writes a KML document showing the track, the reference line and
// the connection of every deviating point with its foot on the line.
func WriteKML(w io.Writer, m *measure.Measure, name string) error {
	points := m.Points()
	feet := m.Feet()
	deviations := m.Deviations()

	trackStyle := kml.SharedStyle("track",
		kml.LineStyle(kml.Color(color.RGBA{R: 0, G: 0, B: 255, A: 255}), kml.Width(3)),
	)
	reflineStyle := kml.SharedStyle("refline",
		kml.LineStyle(kml.Color(color.RGBA{R: 0, G: 192, B: 0, A: 255}), kml.Width(2)),
	)
	deviationStyle := kml.SharedStyle("deviation",
		kml.LineStyle(kml.Color(color.RGBA{R: 255, G: 0, B: 0, A: 192}), kml.Width(1)),
	)

	var deviationMarks []kml.Element
	for i, d := range deviations {
		if d <= 0 {
			continue
		}
		deviationMarks = append(deviationMarks, kml.Placemark(
			kml.Name(fmt.Sprintf("#%d", i)),
			kml.Description(fmt.Sprintf("%.3f m", d)),
			kml.StyleURL(deviationStyle.URL()),
			kml.LineString(kml.Coordinates(coordinates(points[i], feet[i])...)),
		))
	}

	doc := kml.KML(
		kml.Document(
			append([]kml.Element{
				kml.Name(name),
				kml.Description(summaryText(m)),
				trackStyle,
				reflineStyle,
				deviationStyle,
				kml.Placemark(
					kml.Name("Track"),
					kml.StyleURL(trackStyle.URL()),
					kml.LineString(
						kml.Coordinates(coordinates(points...)...),
						kml.Tessellate(true),
					),
				),
				kml.Placemark(
					kml.Name("Reference line"),
					kml.StyleURL(reflineStyle.URL()),
					kml.LineString(
						kml.Coordinates(coordinates(refLinePoints(m.RefLine())...)...),
					),
				),
			},
				kml.Folder(append([]kml.Element{kml.Name("Deviations")}, deviationMarks...)...),
			)...,
		),
	)
	return doc.WriteIndent(w, "", "  ")
}
