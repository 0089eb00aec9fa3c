// Package interaction holds the battle-site selection state machine: at
// most one site expanded at a time.
package interaction

import "github.com/conflictwatch/overlay/pkg/core"

// ProjectFunc maps a geographic coordinate to screen space. Supplied by the
// host map so popup anchors track view changes.
type ProjectFunc func(lon, lat float64) (x, y float64)

// Selection tracks which single battle site is expanded. Zero value is the
// idle state. Transitions happen only through Click and Close.
type Selection struct {
	selected *core.BattleSite
}

// Click applies a user click on a site. Clicking the selected site again
// closes it; clicking a different site swaps the selection atomically, the
// old popup is never transiently closed as a separate step.
func (s *Selection) Click(site *core.BattleSite) {
	if s.selected != nil && s.selected.ID == site.ID {
		s.selected = nil
		return
	}
	s.selected = site
}

// Close clears the selection. Safe to call when idle.
func (s *Selection) Close() {
	s.selected = nil
}

// Selected returns the expanded site, or nil when idle.
func (s *Selection) Selected() *core.BattleSite {
	return s.selected
}

// Anchor re-projects the popup anchor from the selected site's coordinate.
// Called on every view change so the popup follows the map rather than
// sitting at a fixed screen position. Returns false when idle.
func (s *Selection) Anchor(project ProjectFunc) (x, y float64, ok bool) {
	if s.selected == nil || project == nil {
		return 0, 0, false
	}
	x, y = project(s.selected.Lon, s.selected.Lat)
	return x, y, true
}

// ConsumeClick reports whether a click at the given screen point lands
// inside the popup rect and must therefore not propagate to the map.
func (s *Selection) ConsumeClick(x, y, popupX, popupY, popupW, popupH float64) bool {
	if s.selected == nil {
		return false
	}
	return x >= popupX && x < popupX+popupW && y >= popupY && y < popupY+popupH
}
