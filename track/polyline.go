package track

import (
	"bytes"
	"fmt"
	"io"

	"github.com/twpayne/go-polyline"

	"github.com/burrscurr/linesman/geom"
)

// ReadPolyline decodes a track stored as a Google encoded polyline, with
// five decimal digits of precision. Surrounding whitespace is ignored.
func ReadPolyline(r io.Reader) (*Track, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	coords, rest, err := polyline.DecodeCoords(bytes.TrimSpace(buf))
	if err != nil {
		return nil, fmt.Errorf("decoding polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decoding polyline: %d trailing bytes", len(rest))
	}
	t := &Track{Points: make([]geom.Vector, 0, len(coords))}
	for _, c := range coords {
		// Encoded polylines store latitude first.
		t.Points = append(t.Points, geom.Vector{X: c[1], Y: c[0]})
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}
