// Package render draws session snapshots to a tcell screen
package render

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/needle-insert/engine"
	"github.com/lixenwraith/needle-insert/status"
)

const (
	hudRows        = 2 // Status bar and needle queue
	maxQueueGlyphs = 40
)

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen  tcell.Screen
	palette Palette
	metrics *status.Registry

	showMetrics bool
}

// NewTerminalRenderer creates a renderer; metrics may be nil
func NewTerminalRenderer(screen tcell.Screen, color bool, metrics *status.Registry) *TerminalRenderer {
	return &TerminalRenderer{
		screen:  screen,
		palette: NewPalette(color),
		metrics: metrics,
	}
}

// SetShowMetrics toggles the metric side panel
func (r *TerminalRenderer) SetShowMetrics(show bool) {
	r.showMetrics = show
}

// ShowMetrics reports whether the metric panel is drawn
func (r *TerminalRenderer) ShowMetrics() bool {
	return r.showMetrics
}

// Projection returns the cell mapping used for a snapshot on a screen of the given size
// The play field sits below the HUD; extent covers the whole waiting needle
func (r *TerminalRenderer) Projection(snap engine.Snapshot, cols, rows int) Projection {
	extent := snap.LaunchRadius + snap.NeedleLength
	fieldRows := rows - hudRows
	return NewProjection(snap.CenterX, snap.CenterY+float64(hudRows)/2, extent, cols, fieldRows)
}

// RenderFrame renders the entire game frame
func (r *TerminalRenderer) RenderFrame(snap engine.Snapshot) {
	cols, rows := r.screen.Size()
	r.screen.Fill(' ', r.palette.Base)

	if snap.State != engine.StateReady {
		proj := r.Projection(snap, cols, rows)
		r.drawDisk(proj, snap, cols, rows)
		r.drawNeedles(proj, snap)
		r.drawPending(proj, snap)
	}

	r.drawStatusBar(snap)
	r.drawQueue(snap, cols)

	switch snap.State {
	case engine.StatePaused:
		r.drawOverlay(cols, rows, "PAUSED", "p to resume, r to restart")
	case engine.StateGameOver:
		r.drawOverlay(cols, rows, "GAME OVER",
			fmt.Sprintf("level %d, score %d, r to restart", snap.Level.Number, snap.Score))
	case engine.StateReady:
		r.drawOverlay(cols, rows, "NEEDLE INSERT", "starting")
	}

	if r.showMetrics && r.metrics != nil {
		r.drawMetrics(cols, rows)
	}

	r.screen.Show()
}

// drawDisk fills the projected disk and labels it with the level number
func (r *TerminalRenderer) drawDisk(proj Projection, snap engine.Snapshot, cols, rows int) {
	radius := snap.DiskRadius * proj.Scale
	top := max(int(proj.CenterRow-radius)-1, hudRows)
	bottom := min(int(proj.CenterRow+radius)+1, rows-1)
	left := max(int(proj.CenterCol-radius*CellAspect)-1, 0)
	right := min(int(proj.CenterCol+radius*CellAspect)+1, cols-1)

	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			if proj.InDisk(col, row, snap.DiskRadius) {
				r.screen.SetContent(col, row, '█', nil, r.palette.Disk)
			}
		}
	}

	label := fmt.Sprintf("%d", snap.Level.Number)
	r.drawText(int(math.Round(proj.CenterCol))-len(label)/2, int(math.Round(proj.CenterRow)), label, r.palette.Label)
}

// drawNeedles draws every lodged needle as a ray from the rim outward with a head at the tail
func (r *TerminalRenderer) drawNeedles(proj Projection, snap engine.Snapshot) {
	for _, n := range snap.Needles {
		r.drawRay(proj, n.Angle, n.Radius, n.Radius+snap.NeedleLength, r.palette.Needle, r.palette.Head)
	}
}

func (r *TerminalRenderer) drawPending(proj Projection, snap engine.Snapshot) {
	switch {
	case snap.HasPending:
		p := snap.Pending
		r.drawRay(proj, p.Angle, p.Radius, p.Radius+snap.NeedleLength, r.palette.Pending, r.palette.Pending)
	case snap.State == engine.StateGameOver && snap.LastOutcome == engine.LaunchCollided:
		// Mark the rim cell the failed needle struck
		col, row := proj.Cell(snap.Pending.Angle, snap.DiskRadius)
		r.setCell(col, row, '✕', r.palette.Collided)
	}
}

func (r *TerminalRenderer) drawRay(proj Projection, angle, r0, r1 float64, body, head tcell.Style) {
	cells := proj.Ray(angle, r0, r1)
	for i, c := range cells {
		if i == len(cells)-1 {
			r.setCell(c[0], c[1], '●', head)
		} else {
			r.setCell(c[0], c[1], '·', body)
		}
	}
}

// drawStatusBar draws level, score, progress, best score and the state badge on the first row
func (r *TerminalRenderer) drawStatusBar(snap engine.Snapshot) {
	stateStyle := r.palette.Playing
	switch snap.State {
	case engine.StatePaused:
		stateStyle = r.palette.Paused
	case engine.StateGameOver:
		stateStyle = r.palette.Over
	}

	badge := fmt.Sprintf(" %s ", snap.State)
	x := r.drawText(0, 0, badge, stateStyle)

	info := fmt.Sprintf(" Level %d (%s)  Score %d  Needles %d/%d  Best %d  Time %s",
		snap.Level.Number, snap.Level.Kind, snap.Score, snap.Placed, snap.Required,
		snap.BestScore, formatPlayTime(snap.PlayTime))
	r.drawText(x, 0, info, r.palette.Status)
}

// drawQueue shows the needles still to be fired this level on the second row
func (r *TerminalRenderer) drawQueue(snap engine.Snapshot, cols int) {
	x := r.drawText(0, 1, " Queue ", r.palette.Status)
	shown := min(snap.Required, maxQueueGlyphs, max(cols-x-4, 0))

	for i := 0; i < shown; i++ {
		style := r.palette.Empty
		if i < snap.Remaining {
			style = r.palette.Queued
		}
		r.setCell(x+i, 1, '▮', style)
	}
	if snap.Required > shown && shown > 0 {
		r.drawText(x+shown, 1, fmt.Sprintf(" +%d", snap.Required-shown), r.palette.Status)
	}
}

// drawOverlay draws a centered two-line panel
func (r *TerminalRenderer) drawOverlay(cols, rows int, title, hint string) {
	width := max(len([]rune(title)), len([]rune(hint))) + 4
	left := (cols - width) / 2
	top := rows/2 - 1

	for row := top - 1; row <= top+2; row++ {
		for col := left; col < left+width; col++ {
			r.setCell(col, row, ' ', r.palette.Overlay)
		}
	}
	r.drawText(left+(width-len([]rune(title)))/2, top, title, r.palette.Overlay)
	r.drawText(left+(width-len([]rune(hint)))/2, top+1, hint, r.palette.Overlay)
}

// drawMetrics lists registry metrics along the right edge below the HUD
func (r *TerminalRenderer) drawMetrics(cols, rows int) {
	for i, line := range r.metrics.Lines() {
		row := hudRows + i
		if row >= rows {
			return
		}
		r.drawText(cols-len(line)-1, row, line, r.palette.Metrics)
	}
}

// drawText writes s at (x, y) clipped to the screen and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.setCell(x, y, ch, style)
		x++
	}
	return x
}

func (r *TerminalRenderer) setCell(x, y int, ch rune, style tcell.Style) {
	cols, rows := r.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func formatPlayTime(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
