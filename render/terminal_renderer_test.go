package render

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/needle-insert/engine"
	"github.com/lixenwraith/needle-insert/status"
)

const (
	testCols = 80
	testRows = 24
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(testCols, testRows)
	t.Cleanup(screen.Fini)
	return screen
}

func newPlayingSession(t *testing.T, metrics *status.Registry) *engine.Session {
	t.Helper()
	s, err := engine.NewSession(engine.Options{Metrics: metrics})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.Init(testCols, testRows)
	return s
}

// screenText returns the visible runes of one row
func screenText(screen tcell.SimulationScreen, row int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[row*w+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func screenContains(screen tcell.SimulationScreen, s string) bool {
	_, _, h := screen.GetContents()
	for row := 0; row < h; row++ {
		if strings.Contains(screenText(screen, row), s) {
			return true
		}
	}
	return false
}

func countRune(screen tcell.SimulationScreen, r rune) int {
	cells, _, _ := screen.GetContents()
	n := 0
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] == r {
			n++
		}
	}
	return n
}

func TestRenderPlayingFrame(t *testing.T) {
	screen := newSimScreen(t)
	session := newPlayingSession(t, nil)
	r := NewTerminalRenderer(screen, true, nil)

	r.RenderFrame(session.Snapshot())

	bar := screenText(screen, 0)
	if !strings.Contains(bar, "Playing") || !strings.Contains(bar, "Level 1") || !strings.Contains(bar, "Needles 0/8") {
		t.Errorf("Unexpected status bar: %q", bar)
	}
	if got := strings.Count(screenText(screen, 1), "▮"); got != 8 {
		t.Errorf("Queue shows %d needles, want 8", got)
	}
	if countRune(screen, '█') == 0 {
		t.Error("Disk not drawn")
	}
	if countRune(screen, '●') != 1 {
		t.Error("Expected exactly one needle head for the pending needle")
	}
}

func TestRenderLodgedNeedle(t *testing.T) {
	screen := newSimScreen(t)
	session := newPlayingSession(t, nil)
	r := NewTerminalRenderer(screen, true, nil)

	session.Fire()
	for session.Launching() {
		session.StepLaunch()
	}
	for i := 0; i < 45; i++ {
		session.Tick()
	}

	r.RenderFrame(session.Snapshot())
	if got := countRune(screen, '●'); got != 2 {
		t.Errorf("Expected lodged and pending needle heads, got %d", got)
	}
	if !strings.Contains(screenText(screen, 0), "Needles 1/8") {
		t.Errorf("Status bar not updated: %q", screenText(screen, 0))
	}
}

func TestRenderOverlays(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*engine.Session)
		want  string
	}{
		{"paused", func(s *engine.Session) { s.Pause() }, "PAUSED"},
		{"game over", func(s *engine.Session) {
			for i := 0; i < 2; i++ {
				s.Fire()
				for s.Launching() {
					s.StepLaunch()
				}
			}
		}, "GAME OVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newSimScreen(t)
			session := newPlayingSession(t, nil)
			tt.setup(session)

			NewTerminalRenderer(screen, false, nil).RenderFrame(session.Snapshot())
			if !screenContains(screen, tt.want) {
				t.Errorf("Overlay %q not drawn", tt.want)
			}
		})
	}
}

func TestRenderCollisionMarker(t *testing.T) {
	screen := newSimScreen(t)
	session := newPlayingSession(t, nil)
	for i := 0; i < 2; i++ {
		session.Fire()
		for session.Launching() {
			session.StepLaunch()
		}
	}

	NewTerminalRenderer(screen, true, nil).RenderFrame(session.Snapshot())
	if countRune(screen, '✕') != 1 {
		t.Error("Expected collision marker")
	}
}

func TestRenderMetricsPanel(t *testing.T) {
	screen := newSimScreen(t)
	metrics := status.NewRegistry()
	session := newPlayingSession(t, metrics)
	session.Tick()

	r := NewTerminalRenderer(screen, true, metrics)
	r.RenderFrame(session.Snapshot())
	if screenContains(screen, "engine.ticks=") {
		t.Error("Metrics drawn while hidden")
	}

	r.SetShowMetrics(true)
	r.RenderFrame(session.Snapshot())
	if !screenContains(screen, "engine.ticks=1") {
		t.Error("Metrics panel missing tick count")
	}
}

func TestRenderTinyScreen(t *testing.T) {
	screen := newSimScreen(t)
	screen.SetSize(3, 2)
	session := newPlayingSession(t, nil)

	defer func() {
		if rec := recover(); rec != nil {
			t.Errorf("Render panicked on tiny screen: %v", rec)
		}
	}()
	NewTerminalRenderer(screen, true, nil).RenderFrame(session.Snapshot())
}

func TestProjection(t *testing.T) {
	p := NewProjection(40, 12, 100, 80, 24)

	// Straight below the center stays in the center column
	col, row := p.Cell(math.Pi/2, 100)
	if col != 40 || row <= 12 {
		t.Errorf("Cell(π/2) = (%d, %d), want column 40 below row 12", col, row)
	}

	// Columns are stretched so a horizontal radius spans twice the cells
	col, row = p.Cell(0, 50)
	wantCol := 40 + int(math.Round(50*p.Scale*CellAspect))
	if col != wantCol || row != 12 {
		t.Errorf("Cell(0) = (%d, %d), want (%d, 12)", col, row, wantCol)
	}

	ray := p.Ray(math.Pi/2, 10, 100)
	if len(ray) < 2 {
		t.Fatalf("Ray too short: %v", ray)
	}
	for i := 1; i < len(ray); i++ {
		if ray[i] == ray[i-1] {
			t.Errorf("Ray repeats cell %v", ray[i])
		}
		if ray[i][1] < ray[i-1][1] {
			t.Errorf("Downward ray moved up at %d", i)
		}
	}

	if !p.InDisk(40, 12, 10) || p.InDisk(0, 0, 10) {
		t.Error("InDisk misclassified center or corner")
	}
}
