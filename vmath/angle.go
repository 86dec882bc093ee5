package vmath

import "math"

// FullTurn is one complete revolution in radians
const FullTurn = 2 * math.Pi

// NormalizeSigned maps any angle to (-π, π], the shortest signed rotation to zero
func NormalizeSigned(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	a := math.Mod(angle, FullTurn)
	if a > math.Pi {
		a -= FullTurn
	} else if a <= -math.Pi {
		a += FullTurn
	}
	return a
}

// AngularDistance returns the unsigned shortest distance between two angles, in [0, π]
func AngularDistance(a, b float64) float64 {
	return math.Abs(NormalizeSigned(a - b))
}

// WrapTurn wraps angle to [0, 2π)
func WrapTurn(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	a := math.Mod(angle, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	// Mod of a tiny negative value can round up to exactly FullTurn
	if a >= FullTurn {
		a = 0
	}
	return a
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Polar projects a point at angle and radius from center
// Screen convention: +Y points down, so angle π/2 is straight below center
func Polar(cx, cy, angle, radius float64) (x, y float64) {
	return cx + math.Cos(angle)*radius, cy + math.Sin(angle)*radius
}
