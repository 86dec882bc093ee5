package engine

import (
	"math"
	"testing"
)

func TestNeedleTransformsReturnCopies(t *testing.T) {
	n := Needle{ID: 1, Angle: 1, Radius: 330}

	moved := n.WithRadius(200)
	if n.Radius != 330 || moved.Radius != 200 {
		t.Errorf("WithRadius mutated original or failed: orig=%v moved=%v", n.Radius, moved.Radius)
	}

	rot := n.Rotated(0.5)
	if n.Angle != 1 || math.Abs(rot.Angle-1.5) > 1e-12 {
		t.Errorf("Rotated mutated original or failed: orig=%v rot=%v", n.Angle, rot.Angle)
	}
}

func TestNeedleRotatedWraps(t *testing.T) {
	n := Needle{Angle: 6}.Rotated(1)
	if n.Angle < 0 || n.Angle >= 2*math.Pi {
		t.Errorf("Angle %v outside [0, 2π)", n.Angle)
	}
	if math.Abs(n.Angle-(7-2*math.Pi)) > 1e-12 {
		t.Errorf("Expected %v, got %v", 7-2*math.Pi, n.Angle)
	}
}

func TestNeedleLodgedPinsRadius(t *testing.T) {
	n := Needle{ID: 3, Angle: 2, Radius: 151.7}.Lodged(150)
	if !n.Placed {
		t.Error("Lodged needle must be placed")
	}
	if n.Radius != 150 {
		t.Errorf("Placed needle radius must equal disk radius, got %v", n.Radius)
	}
}

func TestNeedleProjection(t *testing.T) {
	n := Needle{Angle: math.Pi / 2, Radius: 150}

	tx, ty := n.TipPosition(400, 300)
	if math.Abs(tx-400) > 1e-9 || math.Abs(ty-450) > 1e-9 {
		t.Errorf("Tip expected (400, 450), got (%v, %v)", tx, ty)
	}

	lx, ly := n.TailPosition(400, 300, 80)
	if math.Abs(lx-400) > 1e-9 || math.Abs(ly-530) > 1e-9 {
		t.Errorf("Tail expected (400, 530), got (%v, %v)", lx, ly)
	}
}
