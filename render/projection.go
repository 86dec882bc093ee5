package render

import (
	"math"

	"github.com/lixenwraith/needle-insert/vmath"
)

// CellAspect is the height-to-width ratio of a terminal cell
const CellAspect = 2.0

// Projection maps world units around the disk center to terminal cells
// World distances are scaled uniformly; columns are stretched by CellAspect so the disk stays round
type Projection struct {
	CenterCol, CenterRow float64
	Scale                float64 // Rows per world unit
}

// NewProjection fits extent world units around the center into the given cell area
func NewProjection(centerCol, centerRow, extent float64, cols, rows int) Projection {
	if extent <= 0 {
		extent = 1
	}
	halfRows := float64(rows)/2 - 1
	halfCols := (float64(cols)/2 - 1) / CellAspect
	scale := math.Max(math.Min(halfRows, halfCols), 1) / extent

	return Projection{CenterCol: centerCol, CenterRow: centerRow, Scale: scale}
}

// Cell returns the terminal cell at angle and radius from the center
func (p Projection) Cell(angle, radius float64) (col, row int) {
	x, y := vmath.Polar(0, 0, angle, radius*p.Scale)
	return int(math.Round(p.CenterCol + x*CellAspect)), int(math.Round(p.CenterRow + y))
}

// Ray returns distinct cells along a radial segment from r0 to r1, inner end first
func (p Projection) Ray(angle, r0, r1 float64) [][2]int {
	length := math.Abs(r1-r0) * p.Scale * CellAspect
	n := int(math.Ceil(length*2)) + 1

	cells := make([][2]int, 0, n)
	for i := 0; i <= n; i++ {
		r := r0 + (r1-r0)*float64(i)/float64(n)
		col, row := p.Cell(angle, r)
		if k := len(cells); k > 0 && cells[k-1] == [2]int{col, row} {
			continue
		}
		cells = append(cells, [2]int{col, row})
	}
	return cells
}

// InDisk reports whether a cell lies inside the projected disk of the given world radius
func (p Projection) InDisk(col, row int, radius float64) bool {
	dx := (float64(col) - p.CenterCol) / CellAspect
	dy := float64(row) - p.CenterRow
	r := radius * p.Scale
	return dx*dx+dy*dy <= r*r
}
