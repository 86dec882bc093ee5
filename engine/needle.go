package engine

import (
	"github.com/lixenwraith/needle-insert/vmath"
)

// Needle is a projectile aimed at, or lodged in, the disk
// Values are copied; the Session is the only owner that mutates its collections
type Needle struct {
	ID     int     // Ordinal in firing order within the level, 1-based
	Angle  float64 // Radians from disk center, screen convention (π/2 = below)
	Radius float64 // Distance of the needle tip from disk center
	Placed bool    // True once lodged; Radius is then pinned to the disk radius
}

// WithRadius returns a copy moved to radius r
func (n Needle) WithRadius(r float64) Needle {
	n.Radius = r
	return n
}

// Rotated returns a copy advanced by delta radians, wrapped to [0, 2π)
func (n Needle) Rotated(delta float64) Needle {
	n.Angle = vmath.WrapTurn(n.Angle + delta)
	return n
}

// Lodged returns the placed form of the needle pinned to the disk rim
func (n Needle) Lodged(diskRadius float64) Needle {
	n.Radius = diskRadius
	n.Placed = true
	return n
}

// TipPosition projects the needle tip for rendering
func (n Needle) TipPosition(cx, cy float64) (x, y float64) {
	return vmath.Polar(cx, cy, n.Angle, n.Radius)
}

// TailPosition projects the needle tail for rendering, length units beyond the tip
func (n Needle) TailPosition(cx, cy, length float64) (x, y float64) {
	return vmath.Polar(cx, cy, n.Angle, n.Radius+length)
}
