// Package core holds the conflict snapshot records consumed by the overlay
// engine. All types here are externally supplied, immutable snapshots: the
// engine reads them and produces derived view state, it never creates,
// mutates or destroys them.
package core

// Position is a geographic coordinate in EPSG:4326 (degrees).
type Position struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Side identifies one of the two belligerents.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// FrontlineStatus describes the current activity level of a frontline segment.
type FrontlineStatus string

const (
	StatusStable    FrontlineStatus = "stable"
	StatusContested FrontlineStatus = "contested"
	StatusActive    FrontlineStatus = "active"
)

// UnitType is the role channel of a unit symbol.
type UnitType string

const (
	UnitInfantry   UnitType = "infantry"
	UnitMechanized UnitType = "mechanized"
	UnitArmor      UnitType = "armor"
	UnitArtillery  UnitType = "artillery"
	UnitMarine     UnitType = "marine"
)

// Echelon is the unit size channel of a unit symbol.
type Echelon string

const (
	EchelonBattalion Echelon = "battalion"
	EchelonRegiment  Echelon = "regiment"
	EchelonBrigade   Echelon = "brigade"
	EchelonDivision  Echelon = "division"
	EchelonCorps     Echelon = "corps"
)
