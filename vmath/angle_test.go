package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestNormalizeSigned(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"small positive", 0.5, 0.5},
		{"small negative", -0.5, -0.5},
		{"pi stays pi", math.Pi, math.Pi},
		{"negative pi maps to pi", -math.Pi, math.Pi},
		{"full turn", FullTurn, 0},
		{"just over half turn", math.Pi + 0.1, -math.Pi + 0.1},
		{"many turns", 10*FullTurn + 0.25, 0.25},
		{"many negative turns", -7*FullTurn - 0.25, -0.25},
		{"NaN collapses", math.NaN(), 0},
		{"Inf collapses", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSigned(tt.in)
			if math.Abs(got-tt.want) > eps {
				t.Errorf("NormalizeSigned(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got > math.Pi+eps || got <= -math.Pi-eps {
				t.Errorf("NormalizeSigned(%v) = %v outside (-π, π]", tt.in, got)
			}
		})
	}
}

func TestAngularDistanceSymmetric(t *testing.T) {
	pairs := [][2]float64{
		{0, 0.1},
		{0.1, FullTurn - 0.1},
		{-3, 3},
		{100, -100},
		{math.Pi / 2, 3 * math.Pi / 2},
	}

	for _, p := range pairs {
		ab := AngularDistance(p[0], p[1])
		ba := AngularDistance(p[1], p[0])
		if math.Abs(ab-ba) > eps {
			t.Errorf("AngularDistance not symmetric for %v: %v vs %v", p, ab, ba)
		}
		if ab < 0 || ab > math.Pi+eps {
			t.Errorf("AngularDistance(%v) = %v outside [0, π]", p, ab)
		}
	}
}

func TestAngularDistanceAcrossWrap(t *testing.T) {
	// 0.1 and 2π-0.1 are 0.2 apart going through zero
	got := AngularDistance(0.1, FullTurn-0.1)
	if math.Abs(got-0.2) > eps {
		t.Errorf("Expected 0.2 across wrap, got %v", got)
	}
}

func TestWrapTurn(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{FullTurn, 0},
		{FullTurn + 1, 1},
		{-1, FullTurn - 1},
		{-FullTurn, 0},
		{-1e-18, 0},
	}

	for _, tt := range tests {
		got := WrapTurn(tt.in)
		if math.Abs(got-tt.want) > eps {
			t.Errorf("WrapTurn(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= FullTurn {
			t.Errorf("WrapTurn(%v) = %v outside [0, 2π)", tt.in, got)
		}
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 2, 17.1887, 90, 180, 360, -45} {
		if got := RadToDeg(DegToRad(deg)); math.Abs(got-deg) > eps {
			t.Errorf("round trip of %v degrees gave %v", deg, got)
		}
	}
	if math.Abs(DegToRad(180)-math.Pi) > eps {
		t.Error("180 degrees should be π radians")
	}
}

func TestPolarStraightDown(t *testing.T) {
	x, y := Polar(100, 50, math.Pi/2, 10)
	if math.Abs(x-100) > eps || math.Abs(y-60) > eps {
		t.Errorf("Polar at π/2 expected (100, 60), got (%v, %v)", x, y)
	}
}
