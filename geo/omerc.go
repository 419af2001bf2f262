package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/burrscurr/linesman/geom"
)

var ErrProjection = errors.New("point cannot be projected")

const (
	omercTolerance = 1e-7
	omercEpsilon   = 1e-10
)

// ObliqueMercator is the Hotine oblique Mercator projection (Snyder, Map
// projections: A working manual, p. 69ff.) with a scale factor of 1 on the
// central line and no rectification. The central line passes through the
// origin with the given azimuth; the origin maps to (0, 0).
//
// Forward returns X as the distance along the central line in the direction
// of the azimuth and Y as the signed distance perpendicular to it (positive
// on the right), in meters.
type ObliqueMercator struct {
	a, e float64
	// The central line was set up with the opposite azimuth.
	flip bool

	// Constants of the aposphere, named after Snyder's formulas.
	bigA, bigB, bigE float64
	arb              float64 // A / B
	lam0             float64
	singam, cosgam   float64
	u0               float64
	vPoleN, vPoleS   float64
}

// tsfn is Snyder's t, eq. 15-9.
func tsfn(phi, sinphi, e float64) float64 {
	return math.Tan(0.5*(math.Pi/2-phi)) / math.Pow((1-e*sinphi)/(1+e*sinphi), 0.5*e)
}

// The origin must not be a pole and the azimuth must not point north or
// south, else the central line is a meridian which this form of the
// projection cannot represent.
func NewObliqueMercator(el Ellipsoid, origin geom.Vector, azimuth float64) (*ObliqueMercator, error) {
	// The projection is only oriented along azimuths in (-90, 90].
	azimuth = NormalizeAzimuth(azimuth)
	flip := false
	if azimuth > 90 {
		azimuth -= 180
		flip = true
	} else if azimuth <= -90 {
		azimuth += 180
		flip = true
	}

	phi0 := toRadians(origin.Y)
	lamc := toRadians(origin.X)
	alphaC := toRadians(azimuth)

	if math.Abs(math.Abs(phi0)-math.Pi/2) <= omercTolerance {
		return nil, fmt.Errorf("%w: origin %v is a pole", ErrProjection, origin)
	}
	if math.Abs(alphaC) <= omercTolerance {
		return nil, fmt.Errorf("%w: azimuth %v is a meridian", ErrProjection, azimuth)
	}

	es := el.Es()
	e := math.Sqrt(es)
	oneEs := 1 - es
	com := math.Sqrt(oneEs)

	sp, cp := math.Sincos(phi0)
	con := 1 - es*sp*sp
	b := math.Sqrt(1 + es*cp*cp*cp*cp/oneEs)
	a := b * com / con
	d := b * com / (cp * math.Sqrt(con))

	f := d*d - 1
	if f <= 0 {
		f = 0
	} else {
		f = math.Sqrt(f)
	}
	if phi0 < 0 {
		f = -f
	}
	f += d

	gamma0 := math.Asin(math.Sin(alphaC) / d)
	if math.IsNaN(gamma0) {
		return nil, fmt.Errorf("%w: azimuth %v at latitude %v", ErrProjection, azimuth, origin.Y)
	}

	om := &ObliqueMercator{
		a:    el.A,
		e:    e,
		flip: flip,
		bigA: a,
		bigB: b,
		bigE: f * math.Pow(tsfn(phi0, sp, e), b),
		arb:  a / b,
	}
	om.lam0 = lamc - math.Asin(0.5*(f-1/f)*math.Tan(gamma0))/b
	om.singam, om.cosgam = math.Sincos(gamma0)
	om.u0 = math.Abs(om.arb * math.Atan(math.Sqrt(math.Max(d*d-1, 0))/math.Cos(alphaC)))
	if phi0 < 0 {
		om.u0 = -om.u0
	}
	om.vPoleN = om.arb * math.Log(math.Tan(0.5*(math.Pi/2-gamma0)))
	om.vPoleS = om.arb * math.Log(math.Tan(0.5*(math.Pi/2+gamma0)))
	return om, nil
}

// Forward projects a lon/lat point. It fails with ErrProjection for the two
// points 90 degrees from the central line where the projection diverges.
func (om *ObliqueMercator) Forward(p geom.Vector) (geom.Vector, error) {
	phi := toRadians(p.Y)
	lam := toRadians(p.X) - om.lam0

	var u, v float64
	if math.Abs(math.Abs(phi)-math.Pi/2) > omercEpsilon {
		w := om.bigE / math.Pow(tsfn(phi, math.Sin(phi), om.e), om.bigB)
		s := 0.5 * (w - 1/w)
		t := 0.5 * (w + 1/w)
		vv := math.Sin(om.bigB * lam)
		uu := (s*om.singam - vv*om.cosgam) / t
		if math.Abs(math.Abs(uu)-1) < omercEpsilon {
			return geom.Vector{}, fmt.Errorf("%w: %v is a pole of the projection", ErrProjection, p)
		}
		v = 0.5 * om.arb * math.Log((1-uu)/(1+uu))
		c := math.Cos(om.bigB * lam)
		if math.Abs(c) < omercTolerance {
			u = om.bigA * lam
		} else {
			u = om.arb * math.Atan2(s*om.cosgam+vv*om.singam, c)
		}
	} else {
		if phi > 0 {
			v = om.vPoleN
		} else {
			v = om.vPoleS
		}
		u = om.arb * phi
	}
	u -= om.u0
	if om.flip {
		u, v = -u, -v
	}
	return geom.Vector{X: u * om.a, Y: v * om.a}, nil
}
