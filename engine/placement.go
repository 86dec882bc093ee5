package engine

import (
	"github.com/lixenwraith/needle-insert/vmath"
)

// CanPlace reports whether a needle at candidate keeps more than margin radians
// from every needle in placed; a distance equal to margin is a collision
func CanPlace(candidate float64, placed []Needle, margin float64) bool {
	for _, n := range placed {
		if vmath.AngularDistance(candidate, n.Angle) <= margin {
			return false
		}
	}
	return true
}

// PlacedSet is the ordered collection of needles lodged in the current level
type PlacedSet struct {
	needles []Needle
}

// NewPlacedSet creates an empty set with room for capacity needles
func NewPlacedSet(capacity int) *PlacedSet {
	if capacity < 0 {
		capacity = 0
	}
	return &PlacedSet{needles: make([]Needle, 0, capacity)}
}

// Add appends a lodged needle, callers validate with CanPlace first
func (s *PlacedSet) Add(n Needle) {
	s.needles = append(s.needles, n)
}

// Rotate advances every lodged needle by delta, rigidly with the disk
func (s *PlacedSet) Rotate(delta float64) {
	if delta == 0 {
		return
	}
	for i := range s.needles {
		s.needles[i] = s.needles[i].Rotated(delta)
	}
}

// Clear drops all needles, keeping the backing array
func (s *PlacedSet) Clear() {
	s.needles = s.needles[:0]
}

// Len returns the number of lodged needles
func (s *PlacedSet) Len() int {
	return len(s.needles)
}

// View exposes the needles without copying, valid until the next mutation
func (s *PlacedSet) View() []Needle {
	return s.needles
}

// Needles returns a copy safe to hand across goroutines
func (s *PlacedSet) Needles() []Needle {
	out := make([]Needle, len(s.needles))
	copy(out, s.needles)
	return out
}

// Valid reports whether every pair is further apart than margin
func (s *PlacedSet) Valid(margin float64) bool {
	for i := 1; i < len(s.needles); i++ {
		if !CanPlace(s.needles[i].Angle, s.needles[:i], margin) {
			return false
		}
	}
	return true
}
