package render

import "github.com/gdamore/tcell/v2"

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbDisk       = tcell.NewRGBColor(65, 72, 104)   // Slate
	RgbDiskLabel  = tcell.NewRGBColor(192, 202, 245) // Pale lavender
	RgbNeedle     = tcell.NewRGBColor(200, 200, 200) // Light gray
	RgbNeedleHead = tcell.NewRGBColor(255, 255, 255) // White
	RgbPending    = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbCollided   = tcell.NewRGBColor(255, 0, 0)     // Error Red

	RgbStatusText  = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbStatusBar   = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatePlay   = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbStatePause  = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStateOver   = tcell.NewRGBColor(200, 50, 50)   // Red
	RgbQueueFilled = tcell.NewRGBColor(255, 165, 0)   // Same as pending needle
	RgbQueueEmpty  = tcell.NewRGBColor(80, 80, 80)    // Dark gray
	RgbMetrics     = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbOverlayBg   = tcell.NewRGBColor(40, 42, 60)    // Raised panel
)

// Palette resolves the styles used for one frame
// Monochrome keeps only attributes so the game stays readable without color support
type Palette struct {
	Base     tcell.Style
	Disk     tcell.Style
	Label    tcell.Style
	Needle   tcell.Style
	Head     tcell.Style
	Pending  tcell.Style
	Collided tcell.Style
	Status   tcell.Style
	Playing  tcell.Style
	Paused   tcell.Style
	Over     tcell.Style
	Queued   tcell.Style
	Empty    tcell.Style
	Metrics  tcell.Style
	Overlay  tcell.Style
}

// NewPalette returns the truecolor palette, or a monochrome one when color is false
func NewPalette(color bool) Palette {
	if !color {
		base := tcell.StyleDefault
		return Palette{
			Base:     base,
			Disk:     base.Dim(true),
			Label:    base.Bold(true),
			Needle:   base,
			Head:     base.Bold(true),
			Pending:  base.Bold(true),
			Collided: base.Reverse(true),
			Status:   base.Reverse(true),
			Playing:  base.Reverse(true).Bold(true),
			Paused:   base.Reverse(true).Bold(true),
			Over:     base.Reverse(true).Bold(true),
			Queued:   base.Bold(true),
			Empty:    base.Dim(true),
			Metrics:  base.Dim(true),
			Overlay:  base.Reverse(true),
		}
	}

	base := tcell.StyleDefault.Background(RgbBackground)
	return Palette{
		Base:     base,
		Disk:     base.Foreground(RgbDisk),
		Label:    base.Foreground(RgbDiskLabel).Background(RgbDisk).Bold(true),
		Needle:   base.Foreground(RgbNeedle),
		Head:     base.Foreground(RgbNeedleHead),
		Pending:  base.Foreground(RgbPending).Bold(true),
		Collided: base.Foreground(RgbCollided).Bold(true),
		Status:   base.Foreground(RgbStatusBar),
		Playing:  tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbStatePlay),
		Paused:   tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbStatePause),
		Over:     tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbStateOver),
		Queued:   base.Foreground(RgbQueueFilled),
		Empty:    base.Foreground(RgbQueueEmpty),
		Metrics:  base.Foreground(RgbMetrics),
		Overlay:  tcell.StyleDefault.Foreground(RgbStatusBar).Background(RgbOverlayBg).Bold(true),
	}
}
