// Package demo carries a small synthetic conflict so the commands run
// without an upstream data feed. Coordinates are fictional.
package demo

import (
	"time"

	"github.com/conflictwatch/overlay/pkg/core"
)

// ConflictID is the id of the bundled demo conflict.
const ConflictID = "demo-east"

// Bundle builds the demo conflict entity set relative to now, so the
// recency buckets stay meaningful no matter when it runs.
func Bundle(now time.Time) *core.ConflictBundle {
	return &core.ConflictBundle{
		ConflictID: ConflictID,
		Name:       "Demo Eastern Front",
		Frontline: []core.FrontlineSegment{
			{
				ID:     "fl-north",
				Label:  "Northern axis",
				AsOf:   now.AddDate(0, 0, -3),
				Status: core.StatusActive,
				Points: []core.Position{
					{Lon: 30.2, Lat: 50.9}, {Lon: 30.8, Lat: 50.6},
					{Lon: 31.4, Lat: 50.3}, {Lon: 32.0, Lat: 50.1},
				},
			},
			{
				ID:     "fl-center",
				Label:  "Central salient",
				AsOf:   now.AddDate(0, 0, -21),
				Status: core.StatusContested,
				Points: []core.Position{
					{Lon: 32.0, Lat: 50.1}, {Lon: 32.5, Lat: 49.5}, {Lon: 32.9, Lat: 48.9},
				},
			},
			{
				ID:     "fl-south",
				Label:  "Southern line",
				AsOf:   now.AddDate(0, 0, -75),
				Status: core.StatusStable,
				Points: []core.Position{
					{Lon: 32.9, Lat: 48.9}, {Lon: 33.6, Lat: 48.2}, {Lon: 34.4, Lat: 47.8},
				},
			},
		},
		Units: []core.Unit{
			{ID: "u-1", Side: core.SideA, Type: core.UnitMechanized, Echelon: core.EchelonBrigade,
				Name: "14th Mechanized Brigade", Lat: 50.7, Lon: 30.6, Sector: "north"},
			{ID: "u-2", Side: core.SideA, Type: core.UnitArtillery, Echelon: core.EchelonRegiment,
				Name: "27th Artillery Regiment", Lat: 49.6, Lon: 32.3, Sector: "center"},
			{ID: "u-3", Side: core.SideB, Type: core.UnitArmor, Echelon: core.EchelonDivision,
				Name: "4th Guards Tank Division", Lat: 50.0, Lon: 32.4, Sector: "center"},
			{ID: "u-4", Side: core.SideB, Type: core.UnitInfantry, Echelon: core.EchelonBattalion,
				Name: "detached rifle battalion", Lat: 48.0, Lon: 34.0, Sector: "south"},
		},
		Battles: []core.BattleSite{
			{
				ID: "b-1", Name: "Battle of the River Crossing",
				Lat: 50.2, Lon: 31.9, Date: now.AddDate(0, -1, 0),
				Result: "A: bridgehead held", Note: "Pontoon crossings contested for nine days.",
				SideA:        core.BattleSideFacts{Commander: "Gen. Kovar", Troops: "12,000", Equipment: "2 mech brigades", Casualties: "~900"},
				SideB:        core.BattleSideFacts{Commander: "Gen. Orlov", Troops: "15,000", Equipment: "1 tank division", Casualties: "~1,400"},
				Significance: "Opened the northern axis",
			},
		},
		Infrastructure: []core.InfrastructureItem{
			{ID: "i-1", Side: core.SideA, Lat: 50.45, Lon: 30.52, Type: "rail", Name: "Central rail hub", Note: "primary resupply"},
			{ID: "i-2", Side: core.SideB, Lat: 48.52, Lon: 34.61, Type: "airfield", Name: "Southern airfield"},
		},
		Naval: []core.NavalPosition{
			{ID: "n-1", Side: core.SideB, Lat: 44.6, Lon: 33.5, Type: "fleet", Name: "Southern Fleet elements"},
		},
		NuclearPlants: []core.NuclearPlant{
			{ID: "np-1", Country: "A", Lat: 47.5, Lon: 34.6, Name: "South NPP", Note: "6 reactors"},
		},
		Cities: []core.CityMarker{
			{ID: "c-1", Country: "A", Lat: 50.45, Lon: 30.52, Name: "Riverside"},
			{ID: "c-2", Country: "A", Lat: 49.99, Lon: 36.23, Name: "Eastgate"},
		},
		Capitals: []core.CapitalMarker{
			{ID: "cap-1", Country: "A", Lat: 50.45, Lon: 30.52, Name: "Capital A"},
			{ID: "cap-2", Country: "B", Lat: 55.75, Lon: 37.62, Name: "Capital B"},
		},
	}
}
