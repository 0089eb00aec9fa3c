package compose

import "github.com/conflictwatch/overlay/internal/recency"

// Stroke pass colors. The accents are fixed per side; the core stroke takes
// the segment's recency color.
const (
	glowColor    = "#1a1a2e"
	sideAAccent  = "#4dabf7"
	sideBAccent  = "#ff8787"
	accentOffset = 3.0
	glowWidth    = 9.0
	accentWidth  = 1.5
	coreWidth    = 4.0
)

// StrokePass is one render-time pass over a frontline geometry. OffsetPx is
// a screen-pixel offset perpendicular to the path, applied by the renderer,
// never baked into the geometry.
type StrokePass struct {
	Name     string
	WidthPx  float64
	OffsetPx float64
	Color    string
	Alpha    float64
}

// StrokePasses returns the four passes that draw one frontline segment:
// outer glow, side-A accent, recency-colored core, side-B accent. The two
// accent offsets are equal and opposite so the visual boundary stays
// centered on the true coordinate path.
func StrokePasses(tok recency.Token) [4]StrokePass {
	return [4]StrokePass{
		{Name: "glow", WidthPx: glowWidth, OffsetPx: 0, Color: glowColor, Alpha: 0.45},
		{Name: "accent-a", WidthPx: accentWidth, OffsetPx: -accentOffset, Color: sideAAccent, Alpha: 0.9},
		{Name: "core", WidthPx: coreWidth, OffsetPx: 0, Color: tok.Hex(), Alpha: 1.0},
		{Name: "accent-b", WidthPx: accentWidth, OffsetPx: accentOffset, Color: sideBAccent, Alpha: 0.9},
	}
}
