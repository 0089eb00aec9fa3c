package symbol

import "github.com/conflictwatch/overlay/pkg/core"

// Unit glyphs encode three independent channels at once: affiliation
// (color pair by side), role (interior icon), and echelon size (pip glyph
// above the frame). NATO-style pips: battalion II, regiment III, brigade X,
// division XX, corps XXX.

var echelonPips = map[core.Echelon]string{
	core.EchelonBattalion: "II",
	core.EchelonRegiment:  "III",
	core.EchelonBrigade:   "X",
	core.EchelonDivision:  "XX",
	core.EchelonCorps:     "XXX",
}

var roleIcons = map[core.UnitType]string{
	core.UnitInfantry:   "infantry",
	core.UnitMechanized: "mechanized",
	core.UnitArmor:      "armor",
	core.UnitArtillery:  "artillery",
	core.UnitMarine:     "marine",
}

// Pips returns the echelon pip glyph for a unit size.
func Pips(e core.Echelon) string {
	return echelonPips[e]
}

// Unit maps a troop marker to its glyph. Input is never mutated; all parts
// come from the precomputed tables.
func Unit(u core.Unit) Glyph {
	return Glyph{
		Shape:  ShapeRect,
		Scheme: SchemeFor(u.Side),
		Icon:   roleIcons[u.Type],
		Pips:   echelonPips[u.Echelon],
		Label:  u.Name,
		Lat:    u.Lat,
		Lon:    u.Lon,
	}
}
