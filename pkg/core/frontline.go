package core

import "time"

// FrontlineSegment is one stretch of the frontline with a per-segment
// confirmation timestamp. Points are ordered along the geographic flow of
// the line and must never be reordered; a valid segment has at least two.
type FrontlineSegment struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	AsOf   time.Time       `json:"asOf"`
	Status FrontlineStatus `json:"status"`
	Points []Position      `json:"points"`
}

// Unit is a troop marker placed on the map.
type Unit struct {
	ID      string   `json:"id"`
	Side    Side     `json:"side"`
	Type    UnitType `json:"unitType"`
	Echelon Echelon  `json:"unitSize"`
	Name    string   `json:"name"`
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	Sector  string   `json:"sector"`
}
