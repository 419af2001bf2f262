package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/burrscurr/linesman/geom"
)

var ErrFormat = errors.New("malformed coordinate text")

// CoordinateError reports a longitude or latitude that could not be parsed
// or is out of range. Field is "lon" or "lat".
type CoordinateError struct {
	Field string
	Value string
	Err   error
}

func (e *CoordinateError) Error() string {
	if errors.Is(e.Err, strconv.ErrSyntax) || errors.Is(e.Err, strconv.ErrRange) {
		return fmt.Sprintf("%s '%s' is no valid floating point number", e.Field, e.Value)
	}
	return fmt.Sprintf("%s '%s': %v", e.Field, e.Value, e.Err)
}

func (e *CoordinateError) Unwrap() error {
	return e.Err
}

func ParseLatitude(s string) (float64, error) {
	return parseDegrees("lat", s, 90)
}

func ParseLongitude(s string) (float64, error) {
	return parseDegrees("lon", s, 180)
}

func parseDegrees(field, s string, limit float64) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &CoordinateError{Field: field, Value: s, Err: err}
	}
	if !(-limit <= v && v <= limit) {
		return 0, &CoordinateError{
			Field: field, Value: s,
			Err: fmt.Errorf("value out of range [-%v, %v]", limit, limit),
		}
	}
	return v, nil
}

// ParseLonLat parses a point written as "lon,lat" in degrees.
func ParseLonLat(s string) (geom.Vector, error) {
	lon, lat, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Vector{}, fmt.Errorf("%w: format must be 'lon,lat' (missing ',')", ErrFormat)
	}
	x, err := ParseLongitude(lon)
	if err != nil {
		return geom.Vector{}, err
	}
	y, err := ParseLatitude(lat)
	if err != nil {
		return geom.Vector{}, err
	}
	return geom.Vector{X: x, Y: y}, nil
}

// ParseLonLatPair parses two points written as "lon,lat;lon,lat".
func ParseLonLatPair(s string) (p1, p2 geom.Vector, err error) {
	start, end, ok := strings.Cut(s, ";")
	if !ok {
		err = fmt.Errorf("%w: format for line must be 'start;end' (missing ';')", ErrFormat)
		return
	}
	if p1, err = ParseLonLat(start); err != nil {
		return
	}
	p2, err = ParseLonLat(end)
	return
}

// ParseLatLon parses a point written as "lat,lon" in degrees, the order
// used by most map applications.
func ParseLatLon(s string) (geom.Vector, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Vector{}, fmt.Errorf("%w: format must be 'lat,lon' (missing ',')", ErrFormat)
	}
	y, err := ParseLatitude(lat)
	if err != nil {
		return geom.Vector{}, err
	}
	x, err := ParseLongitude(lon)
	if err != nil {
		return geom.Vector{}, err
	}
	return geom.Vector{X: x, Y: y}, nil
}

// ParseLatLonPair parses two points written as "lat,lon;lat,lon".
func ParseLatLonPair(s string) (p1, p2 geom.Vector, err error) {
	start, end, ok := strings.Cut(s, ";")
	if !ok {
		err = fmt.Errorf("%w: format for line must be 'lat,lon;lat,lon' (missing ';')", ErrFormat)
		return
	}
	if p1, err = ParseLatLon(start); err != nil {
		return
	}
	p2, err = ParseLatLon(end)
	return
}

// FormatLonLat is the inverse of ParseLonLat.
func FormatLonLat(p geom.Vector) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
}
