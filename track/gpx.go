package track

import (
	"io"

	"github.com/twpayne/go-gpx"

	"github.com/burrscurr/linesman/geom"
)

const multipleTracksWarning = "gpx file has multiple tracks, defaulting to first one."

// ReadGPX returns the points of the first track in a GPX document, with the
// segments of that track joined in order.
func ReadGPX(r io.Reader) (*Track, error) {
	doc, err := gpx.Read(r)
	if err != nil {
		return nil, err
	}
	if len(doc.Trk) == 0 {
		return nil, ErrNoTrack
	}
	t := &Track{}
	if len(doc.Trk) > 1 {
		t.warn(multipleTracksWarning)
	}
	trk := doc.Trk[0]
	t.Name = trk.Name
	for _, seg := range trk.TrkSeg {
		for _, pt := range seg.TrkPt {
			t.Points = append(t.Points, geom.Vector{X: pt.Lon, Y: pt.Lat})
		}
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}
