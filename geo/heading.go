package geo

import "math"

// NormalizeAzimuth maps an azimuth in degrees into the range (-180, 180].
func NormalizeAzimuth(azi float64) float64 {
	azi = math.Mod(azi, 360)
	if azi <= -180 {
		azi += 360
	} else if azi > 180 {
		azi -= 360
	}
	return azi
}

// AzimuthDifference returns the angle to turn from azimuth a to azimuth b,
// in (-180, 180]. Positive values turn clockwise.
func AzimuthDifference(a, b float64) float64 {
	return NormalizeAzimuth(b - a)
}

func sinDeg(d float64) float64 {
	return math.Sin(toRadians(d))
}

func cosDeg(d float64) float64 {
	return math.Cos(toRadians(d))
}
