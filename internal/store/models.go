// Package store persists per-conflict fact tables. The overlay core treats
// conflict data as externally supplied; this is the supplying side, loading
// one conflict's entity set as an immutable bundle.
package store

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatabaseModels is the list of structs representing tables in the schema.
var DatabaseModels = []interface{}{
	&Conflict{},
	&FrontlineSegmentRow{},
	&UnitRow{},
	&BattleSiteRow{},
	&SiteRow{},
}

// Conflict is one armed conflict with attached fact tables.
type Conflict struct {
	gorm.Model
	ConflictID string `json:"conflictId" gorm:"uniqueIndex;size:64"`
	Name       string `json:"name" gorm:"size:255"`
}

func (*Conflict) TableName() string {
	return "conflicts"
}

// FrontlineSegmentRow stores one frontline segment; the ordered point
// array is kept as JSON because point order is load-bearing and the row is
// only ever read back whole.
type FrontlineSegmentRow struct {
	gorm.Model
	ConflictID string         `json:"conflictId" gorm:"index;size:64"`
	SegmentID  string         `json:"segmentId" gorm:"size:64"`
	Label      string         `json:"label" gorm:"size:255"`
	AsOf       time.Time      `json:"asOf"`
	Status     string         `json:"status" gorm:"size:16"`
	Points     datatypes.JSON `json:"points"`
}

func (*FrontlineSegmentRow) TableName() string {
	return "frontline_segments"
}

// UnitRow stores one troop marker.
type UnitRow struct {
	gorm.Model
	ConflictID string  `json:"conflictId" gorm:"index;size:64"`
	UnitID     string  `json:"unitId" gorm:"size:64"`
	Side       string  `json:"side" gorm:"size:4"`
	UnitType   string  `json:"unitType" gorm:"size:16"`
	Echelon    string  `json:"unitSize" gorm:"size:16"`
	Name       string  `json:"name" gorm:"size:255"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Sector     string  `json:"sector" gorm:"size:64"`
}

func (*UnitRow) TableName() string {
	return "units"
}

// BattleSiteRow stores one battle site; the two per-side fact blocks live
// in a JSON column.
type BattleSiteRow struct {
	gorm.Model
	ConflictID   string         `json:"conflictId" gorm:"index;size:64"`
	SiteID       string         `json:"siteId" gorm:"size:64"`
	Name         string         `json:"name" gorm:"size:255"`
	Lat          float64        `json:"lat"`
	Lon          float64        `json:"lon"`
	Date         time.Time      `json:"date"`
	Result       string         `json:"result" gorm:"size:255"`
	Note         string         `json:"note"`
	SideFacts    datatypes.JSON `json:"sideFacts"`
	Significance string         `json:"significance" gorm:"size:255"`
}

func (*BattleSiteRow) TableName() string {
	return "battle_sites"
}

// SiteRow stores the flat point markers that differ only in icon set and
// label policy: infrastructure, naval positions, nuclear plants, cities,
// capitals. Kind discriminates.
type SiteRow struct {
	gorm.Model
	ConflictID string  `json:"conflictId" gorm:"index;size:64"`
	SiteID     string  `json:"siteId" gorm:"size:64"`
	Kind       string  `json:"kind" gorm:"index;size:16"`
	Side       string  `json:"side" gorm:"size:4"`
	Country    string  `json:"country" gorm:"size:64"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Type       string  `json:"type" gorm:"size:64"`
	Name       string  `json:"name" gorm:"size:255"`
	Note       string  `json:"note"`
}

func (*SiteRow) TableName() string {
	return "sites"
}

// SiteRow kinds.
const (
	KindInfrastructure = "infra"
	KindNaval          = "naval"
	KindNuclear        = "nuclear"
	KindCity           = "city"
	KindCapital        = "capital"
)
