// Package symbol maps conflict records to glyph descriptors. Every mapper
// is pure and allocation-light: color schemes, role icons and echelon pips
// live in package-level lookup tables built once, so the mappers are safe
// to call every frame.
package symbol

import "github.com/conflictwatch/overlay/pkg/core"

// Shape is the outline a glyph renderer draws.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
	ShapeDiamond
	ShapeStar
	ShapeTriangle
)

// ColorScheme is the two-color affiliation channel of a glyph.
type ColorScheme struct {
	Fill   string
	Border string
}

// Glyph is a fully resolved visual descriptor for one marker. It carries
// everything a renderer needs and nothing about how to draw it.
type Glyph struct {
	Shape    Shape
	Scheme   ColorScheme
	Icon     string // interior icon key, "" for plain markers
	Pips     string // echelon pips above a unit glyph, "" otherwise
	Label    string
	Lat, Lon float64
}

var sideSchemes = map[core.Side]ColorScheme{
	core.SideA: {Fill: "#1864ab", Border: "#a5d8ff"},
	core.SideB: {Fill: "#c92a2a", Border: "#ffc9c9"},
}

// neutral is used for markers with no side (nuclear plants, cities).
var neutralScheme = ColorScheme{Fill: "#495057", Border: "#dee2e6"}

// SchemeFor returns the affiliation color pair for a side.
func SchemeFor(side core.Side) ColorScheme {
	if s, ok := sideSchemes[side]; ok {
		return s
	}
	return neutralScheme
}

// Capital maps a capital marker. Capitals render at every zoom.
func Capital(c core.CapitalMarker) Glyph {
	return Glyph{
		Shape:  ShapeStar,
		Scheme: neutralScheme,
		Label:  c.Name,
		Lat:    c.Lat,
		Lon:    c.Lon,
	}
}

// City maps a populated-place marker.
func City(c core.CityMarker) Glyph {
	return Glyph{
		Shape:  ShapeCircle,
		Scheme: neutralScheme,
		Label:  c.Name,
		Lat:    c.Lat,
		Lon:    c.Lon,
	}
}

// Infrastructure maps an installation marker; the record's Type selects the
// interior icon.
func Infrastructure(i core.InfrastructureItem) Glyph {
	return Glyph{
		Shape:  ShapeDiamond,
		Scheme: SchemeFor(i.Side),
		Icon:   i.Type,
		Label:  i.Name,
		Lat:    i.Lat,
		Lon:    i.Lon,
	}
}

// Naval maps a fleet marker.
func Naval(n core.NavalPosition) Glyph {
	return Glyph{
		Shape:  ShapeTriangle,
		Scheme: SchemeFor(n.Side),
		Icon:   "anchor",
		Label:  n.Name,
		Lat:    n.Lat,
		Lon:    n.Lon,
	}
}

// Battle maps a battle site marker.
func Battle(b core.BattleSite) Glyph {
	return Glyph{
		Shape:  ShapeStar,
		Scheme: ColorScheme{Fill: "#f59f00", Border: "#fff3bf"},
		Icon:   "battle",
		Label:  b.Name,
		Lat:    b.Lat,
		Lon:    b.Lon,
	}
}

// NuclearPlant maps a nuclear power plant marker.
func NuclearPlant(p core.NuclearPlant) Glyph {
	return Glyph{
		Shape:  ShapeCircle,
		Scheme: ColorScheme{Fill: "#2b8a3e", Border: "#d3f9d8"},
		Icon:   "radiation",
		Label:  p.Name,
		Lat:    p.Lat,
		Lon:    p.Lon,
	}
}
