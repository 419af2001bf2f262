package geom

import (
	"fmt"
	"math"
)

// Floating point operations are prone to rounding error. Coordinates that
// differ by less than Epsilon are considered equal.
const Epsilon = 1e-11

// A Vector is a point or a direction with two coordinates. For geographic
// points, X is the longitude and Y the latitude, both in degrees.
type Vector struct {
	X, Y float64
}

// NearlyEqual reports whether both coordinates of a and b differ by less
// than epsilon.
func NearlyEqual(a, b Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func (v Vector) NearlyEqual(o Vector) bool {
	return NearlyEqual(v, o, Epsilon)
}

func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

func (v Vector) Subtract(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector) Negate() Vector {
	return Vector{-v.X, -v.Y}
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Orthogonal returns v rotated by 90 degrees clockwise.
func (v Vector) Orthogonal() Vector {
	return Vector{v.Y, -v.X}
}

// ParallelTo uses the determinant of v and o. The zero vector is parallel to
// every vector.
func (v Vector) ParallelTo(o Vector) bool {
	return math.Abs(v.X*o.Y-v.Y*o.X) < Epsilon
}

func (v Vector) String() string {
	return fmt.Sprintf("(%v, %v)", v.X, v.Y)
}
