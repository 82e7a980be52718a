package units

import (
	"fmt"
	"math"
)

// Axis is a rotation axis
type Axis string

const (
	X Axis = "x"
	Y Axis = "y"
	Z Axis = "z"
)

// Valid reports whether a is x, y or z
func (a Axis) Valid() bool {
	return a == X || a == Y || a == Z
}

// Matrix is a row-major 3x3 rotation matrix
type Matrix [3][3]float64

// Identity is the rotation matrix of a zero-degree rotation
var Identity = Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// RotationMatrix builds the matrix of a rotation of angle degrees about axis
func RotationMatrix(axis Axis, angle float64) (Matrix, error) {
	rad := angle * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)

	switch axis {
	case X:
		return Matrix{{1, 0, 0}, {0, c, -s}, {0, s, c}}, nil
	case Y:
		return Matrix{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}, nil
	case Z:
		return Matrix{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}, nil
	}
	return Matrix{}, fmt.Errorf("unknown rotation axis %q", axis)
}

// AxisAngle recovers the axis and angle (degrees) of a single-axis rotation.
// The axis with the largest rotation vector component wins, so a general
// rotation is approximated by its dominant axis.
func AxisAngle(m Matrix) (Axis, float64) {
	trace := m[0][0] + m[1][1] + m[2][2]
	cosTheta := math.Max(-1, math.Min(1, (trace-1)/2))
	theta := math.Acos(cosTheta)
	if theta < 1e-12 {
		return X, 0
	}

	// rotation vector direction from the antisymmetric part
	v := [3]float64{
		m[2][1] - m[1][2],
		m[0][2] - m[2][0],
		m[1][0] - m[0][1],
	}

	// near 180 degrees the antisymmetric part vanishes; use the diagonal
	if math.Abs(math.Pi-theta) < 1e-6 {
		v = [3]float64{m[0][0] + 1, m[1][1] + 1, m[2][2] + 1}
	}

	idx := 0
	for i := 1; i < 3; i++ {
		if math.Abs(v[i]) > math.Abs(v[idx]) {
			idx = i
		}
	}

	sign := 1.0
	if v[idx] < 0 && math.Abs(math.Pi-theta) >= 1e-6 {
		sign = -1
	}

	axes := [3]Axis{X, Y, Z}
	return axes[idx], sign * theta * 180 / math.Pi
}

// AngleAbout returns the signed angle (degrees) of a rotation about a known axis, in [-180, 180]
func AngleAbout(m Matrix, axis Axis) float64 {
	var s, c float64
	switch axis {
	case X:
		s, c = m[2][1], m[1][1]
	case Y:
		s, c = m[0][2], m[0][0]
	default:
		s, c = m[1][0], m[0][0]
	}
	return math.Atan2(s, c) * 180 / math.Pi
}

// WrapAngle folds degrees into [-180, 180)
func WrapAngle(deg float64) float64 {
	d := math.Mod(deg+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}
